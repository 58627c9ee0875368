// Package service exposes the Caddie core over Connect RPC.
package service

import (
	"errors"
	"net/http"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/caddie/internal/location"
	"github.com/mmynk/caddie/internal/models"
	"github.com/mmynk/caddie/internal/recorder"
	"github.com/mmynk/caddie/internal/repository"
	"github.com/mmynk/caddie/internal/shell"
)

// ServiceName is the fully-qualified Connect service name.
const ServiceName = "caddie.v1.CaddieService"

// Procedure paths.
const (
	ListClubsProcedure         = "/" + ServiceName + "/ListClubs"
	CreateClubProcedure        = "/" + ServiceName + "/CreateClub"
	GetClubStatsProcedure      = "/" + ServiceName + "/GetClubStats"
	DeleteShotProcedure        = "/" + ServiceName + "/DeleteShot"
	ListCoursesProcedure       = "/" + ServiceName + "/ListCourses"
	AddCourseProcedure         = "/" + ServiceName + "/AddCourse"
	UpdateLocationProcedure    = "/" + ServiceName + "/UpdateLocation"
	ClearLocationProcedure     = "/" + ServiceName + "/ClearLocation"
	StartRecordingProcedure    = "/" + ServiceName + "/StartRecording"
	SetDistanceModeProcedure   = "/" + ServiceName + "/SetDistanceMode"
	SetManualDistanceProcedure = "/" + ServiceName + "/SetManualDistance"
	DropPinProcedure           = "/" + ServiceName + "/DropPin"
	UpdateRecordingProcedure   = "/" + ServiceName + "/UpdateRecording"
	SaveShotProcedure          = "/" + ServiceName + "/SaveShot"
	CancelRecordingProcedure   = "/" + ServiceName + "/CancelRecording"
	OpenSheetProcedure         = "/" + ServiceName + "/OpenSheet"
)

// CaddieService implements the Connect CaddieService.
type CaddieService struct {
	repo     *repository.Repository
	tracker  *location.Tracker
	sessions *recorder.Registry
	now      func() time.Time
}

// Option configures a CaddieService.
type Option func(*serviceOptions)

type serviceOptions struct {
	now         func() time.Time
	maxSessions int
}

// WithClock overrides the time source used to date saved shots.
func WithClock(now func() time.Time) Option {
	return func(o *serviceOptions) { o.now = now }
}

// WithMaxSessions caps the number of open recording sessions.
func WithMaxSessions(n int) Option {
	return func(o *serviceOptions) { o.maxSessions = n }
}

// NewCaddieService creates a CaddieService over repo. Recording sessions read
// pins from tracker.
func NewCaddieService(repo *repository.Repository, tracker *location.Tracker, opts ...Option) *CaddieService {
	o := serviceOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &CaddieService{
		repo:     repo,
		tracker:  tracker,
		sessions: recorder.NewRegistry(tracker, o.maxSessions),
		now:      o.now,
	}
}

// NewHandler builds the HTTP handler serving every CaddieService procedure.
// It returns the path prefix to mount it under, like generated Connect code.
func NewHandler(svc *CaddieService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(ListClubsProcedure, connect.NewUnaryHandler(ListClubsProcedure, svc.ListClubs, opts...))
	mux.Handle(CreateClubProcedure, connect.NewUnaryHandler(CreateClubProcedure, svc.CreateClub, opts...))
	mux.Handle(GetClubStatsProcedure, connect.NewUnaryHandler(GetClubStatsProcedure, svc.GetClubStats, opts...))
	mux.Handle(DeleteShotProcedure, connect.NewUnaryHandler(DeleteShotProcedure, svc.DeleteShot, opts...))
	mux.Handle(ListCoursesProcedure, connect.NewUnaryHandler(ListCoursesProcedure, svc.ListCourses, opts...))
	mux.Handle(AddCourseProcedure, connect.NewUnaryHandler(AddCourseProcedure, svc.AddCourse, opts...))
	mux.Handle(UpdateLocationProcedure, connect.NewUnaryHandler(UpdateLocationProcedure, svc.UpdateLocation, opts...))
	mux.Handle(ClearLocationProcedure, connect.NewUnaryHandler(ClearLocationProcedure, svc.ClearLocation, opts...))
	mux.Handle(StartRecordingProcedure, connect.NewUnaryHandler(StartRecordingProcedure, svc.StartRecording, opts...))
	mux.Handle(SetDistanceModeProcedure, connect.NewUnaryHandler(SetDistanceModeProcedure, svc.SetDistanceMode, opts...))
	mux.Handle(SetManualDistanceProcedure, connect.NewUnaryHandler(SetManualDistanceProcedure, svc.SetManualDistance, opts...))
	mux.Handle(DropPinProcedure, connect.NewUnaryHandler(DropPinProcedure, svc.DropPin, opts...))
	mux.Handle(UpdateRecordingProcedure, connect.NewUnaryHandler(UpdateRecordingProcedure, svc.UpdateRecording, opts...))
	mux.Handle(SaveShotProcedure, connect.NewUnaryHandler(SaveShotProcedure, svc.SaveShot, opts...))
	mux.Handle(CancelRecordingProcedure, connect.NewUnaryHandler(CancelRecordingProcedure, svc.CancelRecording, opts...))
	mux.Handle(OpenSheetProcedure, connect.NewUnaryHandler(OpenSheetProcedure, svc.OpenSheet, opts...))

	return "/" + ServiceName + "/", mux
}

// toConnectError maps domain errors to Connect codes.
func toConnectError(err error) *connect.Error {
	switch {
	case errors.Is(err, models.ErrEmptyName),
		errors.Is(err, models.ErrInvalidYardage),
		errors.Is(err, models.ErrNonPositiveDistance),
		errors.Is(err, models.ErrHoleOutOfRange),
		errors.Is(err, models.ErrShotNumberOutOfRange),
		errors.Is(err, models.ErrUnknownSource):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, repository.ErrClubNotFound),
		errors.Is(err, recorder.ErrSessionNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, shell.ErrStale):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
