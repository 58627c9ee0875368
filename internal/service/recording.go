package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/caddie/internal/distance"
	"github.com/mmynk/caddie/internal/models"
	"github.com/mmynk/caddie/internal/recorder"
)

// UpdateLocation feeds a device fix into the tracker.
func (s *CaddieService) UpdateLocation(ctx context.Context, req *connect.Request[UpdateLocationRequest]) (*connect.Response[UpdateLocationResponse], error) {
	accepted := s.tracker.Update(models.Coordinate{
		Latitude:  req.Msg.Latitude,
		Longitude: req.Msg.Longitude,
	})
	return connect.NewResponse(&UpdateLocationResponse{Accepted: accepted}), nil
}

// ClearLocation forgets the current fix, as when location permission is
// revoked. Pins already dropped are kept.
func (s *CaddieService) ClearLocation(ctx context.Context, req *connect.Request[ClearLocationRequest]) (*connect.Response[ClearLocationResponse], error) {
	s.tracker.Clear()
	slog.Info("Location cleared")
	return connect.NewResponse(&ClearLocationResponse{}), nil
}

// StartRecording opens a recording session. The first club in the bag is
// preselected.
func (s *CaddieService) StartRecording(ctx context.Context, req *connect.Request[StartRecordingRequest]) (*connect.Response[RecordingResponse], error) {
	session := s.sessions.Start()

	resp, err := s.editRecording(session.ID, func(session *recorder.Session) error {
		if clubs := s.repo.Clubs(); len(clubs) > 0 {
			session.ClubID = clubs[0].ID
		}
		return nil
	})
	if err != nil {
		slog.Warn("StartRecording failed", "session_id", session.ID, "error", err)
		return nil, err
	}

	slog.Info("Recording started", "session_id", session.ID, "club_id", resp.Msg.Recording.ClubID, "open_sessions", s.sessions.Len())
	return resp, nil
}

// SetDistanceMode switches between manual and GPS input.
func (s *CaddieService) SetDistanceMode(ctx context.Context, req *connect.Request[SetDistanceModeRequest]) (*connect.Response[RecordingResponse], error) {
	mode := distance.ParseMode(req.Msg.Mode)
	if mode == distance.ModeNone {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown distance mode %q", req.Msg.Mode))
	}

	return s.editRecording(req.Msg.SessionID, func(session *recorder.Session) error {
		session.Engine.SetMode(mode)
		return nil
	})
}

// SetManualDistance records typed distance text. Text that does not parse is
// kept as zero and will not save.
func (s *CaddieService) SetManualDistance(ctx context.Context, req *connect.Request[SetManualDistanceRequest]) (*connect.Response[RecordingResponse], error) {
	return s.editRecording(req.Msg.SessionID, func(session *recorder.Session) error {
		if !session.Engine.SetManual(req.Msg.Text) {
			return connect.NewError(connect.CodeFailedPrecondition, errors.New("manual distance requires manual mode"))
		}
		return nil
	})
}

// DropPin captures the start or end pin from the current location. Without a
// fix, or an end pin without a start pin, nothing happens and dropped=false.
func (s *CaddieService) DropPin(ctx context.Context, req *connect.Request[DropPinRequest]) (*connect.Response[DropPinResponse], error) {
	var (
		dropped bool
		rec     Recording
	)

	err := s.sessions.With(req.Msg.SessionID, func(session *recorder.Session) error {
		switch req.Msg.Pin {
		case PinStart:
			dropped = session.Engine.DropStartPin()
		case PinEnd:
			dropped = session.Engine.DropEndPin()
		default:
			return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown pin %q", req.Msg.Pin))
		}
		rec = toRecording(session)
		return nil
	})
	if err != nil {
		return nil, asConnectError(err)
	}

	slog.Debug("DropPin", "session_id", req.Msg.SessionID, "pin", req.Msg.Pin, "dropped", dropped)
	return connect.NewResponse(&DropPinResponse{Dropped: dropped, Recording: rec}), nil
}

// UpdateRecording changes the club and shot context of a session. Every set
// field is validated before any is applied, so a rejected update leaves the
// session as it was.
func (s *CaddieService) UpdateRecording(ctx context.Context, req *connect.Request[UpdateRecordingRequest]) (*connect.Response[RecordingResponse], error) {
	msg := req.Msg
	return s.editRecording(msg.SessionID, func(session *recorder.Session) error {
		if msg.ClubID != nil {
			if _, ok := s.repo.Club(*msg.ClubID); !ok {
				return connect.NewError(connect.CodeNotFound, fmt.Errorf("club not found: %s", *msg.ClubID))
			}
		}
		if msg.Hole != nil && (*msg.Hole < 1 || *msg.Hole > models.MaxHole) {
			return toConnectError(models.ErrHoleOutOfRange)
		}
		if msg.ShotNumber != nil && (*msg.ShotNumber < 1 || *msg.ShotNumber > models.MaxShotNumber) {
			return toConnectError(models.ErrShotNumberOutOfRange)
		}

		if msg.ClubID != nil {
			session.ClubID = *msg.ClubID
		}
		if msg.Course != nil {
			session.Course = *msg.Course
		}
		if msg.FrontNine != nil {
			session.SetNine(*msg.FrontNine)
		}
		if msg.Hole != nil {
			session.Hole = *msg.Hole
			session.FrontNine = *msg.Hole <= 9
		}
		if msg.ShotNumber != nil {
			session.ShotNumber = *msg.ShotNumber
		}
		return nil
	})
}

// SaveShot appends the session's shot to its club and closes the session.
// Without a positive distance the save is a no-op: saved=false and the
// session stays open.
func (s *CaddieService) SaveShot(ctx context.Context, req *connect.Request[SaveShotRequest]) (*connect.Response[SaveShotResponse], error) {
	var resp SaveShotResponse

	err := s.sessions.With(req.Msg.SessionID, func(session *recorder.Session) error {
		if session.ClubID == "" {
			return connect.NewError(connect.CodeFailedPrecondition, errors.New("no club selected"))
		}

		shot, err := session.Build(s.now())
		if errors.Is(err, recorder.ErrNoDistance) {
			slog.Info("SaveShot ignored without distance", "session_id", session.ID)
			return nil
		}
		if err != nil {
			return err
		}

		club, err := s.repo.AppendShot(ctx, session.ClubID, shot)
		if err != nil {
			return err
		}

		wire := toClub(club)
		resp.Saved = true
		resp.Club = &wire
		return nil
	})
	if err != nil {
		slog.Warn("SaveShot failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, asConnectError(err)
	}

	if resp.Saved {
		s.sessions.Discard(req.Msg.SessionID)
	}
	return connect.NewResponse(&resp), nil
}

// CancelRecording discards a session and its pending edits.
func (s *CaddieService) CancelRecording(ctx context.Context, req *connect.Request[CancelRecordingRequest]) (*connect.Response[CancelRecordingResponse], error) {
	discarded := s.sessions.Discard(req.Msg.SessionID)
	slog.Info("Recording cancelled", "session_id", req.Msg.SessionID, "discarded", discarded)
	return connect.NewResponse(&CancelRecordingResponse{Discarded: discarded}), nil
}

// editRecording applies fn to a session and returns its new state.
func (s *CaddieService) editRecording(id string, fn func(*recorder.Session) error) (*connect.Response[RecordingResponse], error) {
	var rec Recording
	err := s.sessions.With(id, func(session *recorder.Session) error {
		if err := fn(session); err != nil {
			return err
		}
		rec = toRecording(session)
		return nil
	})
	if err != nil {
		return nil, asConnectError(err)
	}
	return connect.NewResponse(&RecordingResponse{Recording: rec}), nil
}

// asConnectError passes Connect errors through and maps everything else.
func asConnectError(err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}
	return toConnectError(err)
}
