package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/caddie/internal/location"
	"github.com/mmynk/caddie/internal/persistence"
	"github.com/mmynk/caddie/internal/repository"
	"github.com/mmynk/caddie/internal/shell"
	"github.com/mmynk/caddie/internal/storage/sqlite"
)

func setupServer(t *testing.T, opts ...Option) string {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "caddie.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	repo := repository.Open(context.Background(), persistence.NewAdapter(store, nil))
	svc := NewCaddieService(repo, location.NewTracker(), opts...)

	path, handler := NewHandler(svc)
	mux := http.NewServeMux()
	mux.Handle(path, handler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server.URL
}

func call[Req, Res any](t *testing.T, baseURL, procedure string, req *Req) (*Res, error) {
	t.Helper()
	client := connect.NewClient[Req, Res](http.DefaultClient, baseURL+procedure, connect.WithCodec(JSONCodec{}))
	resp, err := client.CallUnary(context.Background(), connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func mustCall[Req, Res any](t *testing.T, baseURL, procedure string, req *Req) *Res {
	t.Helper()
	res, err := call[Req, Res](t, baseURL, procedure, req)
	if err != nil {
		t.Fatalf("%s failed: %v", procedure, err)
	}
	return res
}

func createClub(t *testing.T, url, name string) Club {
	t.Helper()
	resp := mustCall[CreateClubRequest, CreateClubResponse](t, url, CreateClubProcedure, &CreateClubRequest{Name: name})
	return resp.Club
}

func startRecording(t *testing.T, url string) Recording {
	t.Helper()
	resp := mustCall[StartRecordingRequest, RecordingResponse](t, url, StartRecordingProcedure, &StartRecordingRequest{})
	return resp.Recording
}

func recordManual(t *testing.T, url, clubID, text string) *SaveShotResponse {
	t.Helper()
	rec := startRecording(t, url)
	mustCall[UpdateRecordingRequest, RecordingResponse](t, url, UpdateRecordingProcedure, &UpdateRecordingRequest{SessionID: rec.SessionID, ClubID: &clubID})
	mustCall[SetDistanceModeRequest, RecordingResponse](t, url, SetDistanceModeProcedure, &SetDistanceModeRequest{SessionID: rec.SessionID, Mode: "manual"})
	mustCall[SetManualDistanceRequest, RecordingResponse](t, url, SetManualDistanceProcedure, &SetManualDistanceRequest{SessionID: rec.SessionID, Text: text})
	return mustCall[SaveShotRequest, SaveShotResponse](t, url, SaveShotProcedure, &SaveShotRequest{SessionID: rec.SessionID})
}

func TestCreateClub(t *testing.T) {
	url := setupServer(t)

	t.Run("creates club", func(t *testing.T) {
		club := createClub(t, url, "Driver")
		if club.ID == "" || club.Name != "Driver" {
			t.Errorf("unexpected club: %+v", club)
		}
		if club.ShotCount != 0 || club.AverageYardage != 0 {
			t.Errorf("new club should have no stats, got %+v", club)
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := call[CreateClubRequest, CreateClubResponse](t, url, CreateClubProcedure, &CreateClubRequest{Name: "   "})
		if connect.CodeOf(err) != connect.CodeInvalidArgument {
			t.Errorf("expected InvalidArgument, got %v", err)
		}
	})

	t.Run("lists clubs", func(t *testing.T) {
		resp := mustCall[ListClubsRequest, ListClubsResponse](t, url, ListClubsProcedure, &ListClubsRequest{})
		if len(resp.Clubs) != 1 {
			t.Errorf("expected 1 club, got %d", len(resp.Clubs))
		}
	})
}

func TestManualShots(t *testing.T) {
	url := setupServer(t)
	club := createClub(t, url, "Driver")

	for _, text := range []string{"270", "280"} {
		resp := recordManual(t, url, club.ID, text)
		if !resp.Saved {
			t.Fatalf("expected shot %s to save", text)
		}
	}

	stats := mustCall[GetClubStatsRequest, GetClubStatsResponse](t, url, GetClubStatsProcedure, &GetClubStatsRequest{ClubID: club.ID})
	if stats.AverageYardage != 275 {
		t.Errorf("expected average 275, got %d", stats.AverageYardage)
	}
	if stats.ShotCount != 2 || stats.LongestYards != 280 || stats.ShortestYards != 270 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	t.Run("unparseable text does not save", func(t *testing.T) {
		resp := recordManual(t, url, club.ID, "abc")
		if resp.Saved {
			t.Error("expected saved=false for unparseable distance")
		}
	})
}

func TestGPSShot(t *testing.T) {
	url := setupServer(t)
	club := createClub(t, url, "7 Iron")
	rec := startRecording(t, url)

	if rec.ClubID != club.ID {
		t.Errorf("expected first club preselected, got %q", rec.ClubID)
	}

	mustCall[SetDistanceModeRequest, RecordingResponse](t, url, SetDistanceModeProcedure, &SetDistanceModeRequest{SessionID: rec.SessionID, Mode: "gps"})

	t.Run("no fix drops nothing", func(t *testing.T) {
		resp := mustCall[DropPinRequest, DropPinResponse](t, url, DropPinProcedure, &DropPinRequest{SessionID: rec.SessionID, Pin: PinStart})
		if resp.Dropped {
			t.Error("expected no pin without a location fix")
		}
	})

	mustCall[UpdateLocationRequest, UpdateLocationResponse](t, url, UpdateLocationProcedure, &UpdateLocationRequest{Latitude: 37.0, Longitude: -122.0})

	t.Run("end pin without start pin does not save", func(t *testing.T) {
		drop := mustCall[DropPinRequest, DropPinResponse](t, url, DropPinProcedure, &DropPinRequest{SessionID: rec.SessionID, Pin: PinEnd})
		if drop.Dropped {
			t.Error("expected end pin to be ignored without a start pin")
		}
		save := mustCall[SaveShotRequest, SaveShotResponse](t, url, SaveShotProcedure, &SaveShotRequest{SessionID: rec.SessionID})
		if save.Saved {
			t.Error("expected saved=false without a distance")
		}
	})

	start := mustCall[DropPinRequest, DropPinResponse](t, url, DropPinProcedure, &DropPinRequest{SessionID: rec.SessionID, Pin: PinStart})
	if !start.Dropped {
		t.Fatal("expected start pin")
	}

	mustCall[UpdateLocationRequest, UpdateLocationResponse](t, url, UpdateLocationProcedure, &UpdateLocationRequest{Latitude: 37.001, Longitude: -122.0})

	end := mustCall[DropPinRequest, DropPinResponse](t, url, DropPinProcedure, &DropPinRequest{SessionID: rec.SessionID, Pin: PinEnd})
	if !end.Dropped || !end.Recording.HasDistance {
		t.Fatalf("expected end pin and distance, got %+v", end.Recording)
	}
	if d := end.Recording.DistanceYards; d < 115 || d > 128 {
		t.Errorf("expected ~121 yards, got %f", d)
	}

	save := mustCall[SaveShotRequest, SaveShotResponse](t, url, SaveShotProcedure, &SaveShotRequest{SessionID: rec.SessionID})
	if !save.Saved || save.Club == nil {
		t.Fatal("expected shot to save")
	}
	shot := save.Club.Shots[0]
	if shot.Source != "gps" || shot.Start == nil || shot.Start.Latitude != 37.0 {
		t.Errorf("unexpected shot: %+v", shot)
	}

	t.Run("session closed after save", func(t *testing.T) {
		_, err := call[SaveShotRequest, SaveShotResponse](t, url, SaveShotProcedure, &SaveShotRequest{SessionID: rec.SessionID})
		if connect.CodeOf(err) != connect.CodeNotFound {
			t.Errorf("expected NotFound, got %v", err)
		}
	})
}

func TestDeleteShot(t *testing.T) {
	url := setupServer(t)
	club := createClub(t, url, "Wedge")
	saved := recordManual(t, url, club.ID, "100")
	shot := saved.Club.Shots[0]

	resp := mustCall[DeleteShotRequest, DeleteShotResponse](t, url, DeleteShotProcedure, &DeleteShotRequest{ClubID: club.ID, Shot: shot})
	if !resp.Deleted || resp.Club.ShotCount != 0 {
		t.Errorf("expected shot deleted, got %+v", resp)
	}

	t.Run("deleting again is a no-op", func(t *testing.T) {
		resp := mustCall[DeleteShotRequest, DeleteShotResponse](t, url, DeleteShotProcedure, &DeleteShotRequest{ClubID: club.ID, Shot: shot})
		if resp.Deleted {
			t.Error("expected deleted=false")
		}
	})

	t.Run("stale shot detail", func(t *testing.T) {
		_, err := call[OpenSheetRequest, OpenSheetResponse](t, url, OpenSheetProcedure, &OpenSheetRequest{
			Kind:   string(shell.KindShotDetail),
			ClubID: club.ID,
			Shot:   &shot,
		})
		if connect.CodeOf(err) != connect.CodeFailedPrecondition {
			t.Errorf("expected FailedPrecondition, got %v", err)
		}
	})
}

func TestCourses(t *testing.T) {
	url := setupServer(t)

	tests := []struct {
		name      string
		course    string
		wantAdded bool
		wantLen   int
	}{
		{"adds course", "Pebble Beach", true, 1},
		{"ignores duplicate", "Pebble Beach", false, 1},
		{"ignores empty", "  ", false, 1},
		{"adds second", "Augusta", true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := mustCall[AddCourseRequest, AddCourseResponse](t, url, AddCourseProcedure, &AddCourseRequest{Name: tt.course})
			if resp.Added != tt.wantAdded || len(resp.Courses) != tt.wantLen {
				t.Errorf("got added=%v courses=%v", resp.Added, resp.Courses)
			}
		})
	}

	list := mustCall[ListCoursesRequest, ListCoursesResponse](t, url, ListCoursesProcedure, &ListCoursesRequest{})
	if len(list.Courses) != 2 {
		t.Errorf("expected 2 courses, got %v", list.Courses)
	}
}

func TestOpenSheet(t *testing.T) {
	url := setupServer(t)
	club := createClub(t, url, "Driver")

	t.Run("shot list", func(t *testing.T) {
		resp := mustCall[OpenSheetRequest, OpenSheetResponse](t, url, OpenSheetProcedure, &OpenSheetRequest{Kind: string(shell.KindShotList), ClubID: club.ID})
		if resp.Club == nil || resp.Club.ID != club.ID {
			t.Errorf("expected club in view, got %+v", resp)
		}
	})

	t.Run("record shot lists pickers", func(t *testing.T) {
		resp := mustCall[OpenSheetRequest, OpenSheetResponse](t, url, OpenSheetProcedure, &OpenSheetRequest{Kind: string(shell.KindRecordShot)})
		if len(resp.Clubs) != 1 {
			t.Errorf("expected 1 club, got %d", len(resp.Clubs))
		}
	})

	t.Run("unknown club is stale", func(t *testing.T) {
		_, err := call[OpenSheetRequest, OpenSheetResponse](t, url, OpenSheetProcedure, &OpenSheetRequest{Kind: string(shell.KindShotList), ClubID: "missing"})
		if connect.CodeOf(err) != connect.CodeFailedPrecondition {
			t.Errorf("expected FailedPrecondition, got %v", err)
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := call[OpenSheetRequest, OpenSheetResponse](t, url, OpenSheetProcedure, &OpenSheetRequest{Kind: "settings"})
		if connect.CodeOf(err) != connect.CodeInvalidArgument {
			t.Errorf("expected InvalidArgument, got %v", err)
		}
	})
}

func TestRecordingErrors(t *testing.T) {
	url := setupServer(t)

	t.Run("unknown session", func(t *testing.T) {
		_, err := call[DropPinRequest, DropPinResponse](t, url, DropPinProcedure, &DropPinRequest{SessionID: "nope", Pin: PinStart})
		if connect.CodeOf(err) != connect.CodeNotFound {
			t.Errorf("expected NotFound, got %v", err)
		}
	})

	rec := startRecording(t, url)

	t.Run("save without club", func(t *testing.T) {
		_, err := call[SaveShotRequest, SaveShotResponse](t, url, SaveShotProcedure, &SaveShotRequest{SessionID: rec.SessionID})
		if connect.CodeOf(err) != connect.CodeFailedPrecondition {
			t.Errorf("expected FailedPrecondition, got %v", err)
		}
	})

	t.Run("hole out of range", func(t *testing.T) {
		hole := 19
		_, err := call[UpdateRecordingRequest, RecordingResponse](t, url, UpdateRecordingProcedure, &UpdateRecordingRequest{SessionID: rec.SessionID, Hole: &hole})
		if connect.CodeOf(err) != connect.CodeInvalidArgument {
			t.Errorf("expected InvalidArgument, got %v", err)
		}
	})

	t.Run("back nine moves hole", func(t *testing.T) {
		front := false
		resp := mustCall[UpdateRecordingRequest, RecordingResponse](t, url, UpdateRecordingProcedure, &UpdateRecordingRequest{SessionID: rec.SessionID, FrontNine: &front})
		if resp.Recording.Hole != 10 || resp.Recording.Holes[0] != 10 {
			t.Errorf("expected hole 10 on back nine, got %+v", resp.Recording)
		}
	})

	t.Run("manual text outside manual mode", func(t *testing.T) {
		_, err := call[SetManualDistanceRequest, RecordingResponse](t, url, SetManualDistanceProcedure, &SetManualDistanceRequest{SessionID: rec.SessionID, Text: "150"})
		if connect.CodeOf(err) != connect.CodeFailedPrecondition {
			t.Errorf("expected FailedPrecondition, got %v", err)
		}
	})

	t.Run("cancel", func(t *testing.T) {
		resp := mustCall[CancelRecordingRequest, CancelRecordingResponse](t, url, CancelRecordingProcedure, &CancelRecordingRequest{SessionID: rec.SessionID})
		if !resp.Discarded {
			t.Error("expected session discarded")
		}
	})
}

func TestUpdateRecordingRejectsWithoutChanges(t *testing.T) {
	url := setupServer(t)
	first := createClub(t, url, "Driver")
	second := createClub(t, url, "Putter")
	rec := startRecording(t, url)

	tests := []struct {
		name string
		req  UpdateRecordingRequest
		code connect.Code
	}{
		{"hole out of range", UpdateRecordingRequest{Hole: intPtr(25)}, connect.CodeInvalidArgument},
		{"shot number out of range", UpdateRecordingRequest{ShotNumber: intPtr(11)}, connect.CodeInvalidArgument},
		{"unknown club", UpdateRecordingRequest{ClubID: strPtr("missing"), Hole: intPtr(12)}, connect.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.SessionID = rec.SessionID
			if req.ClubID == nil {
				req.ClubID = &second.ID
			}
			req.Course = strPtr("Pebble Beach")
			req.FrontNine = boolPtr(false)

			_, err := call[UpdateRecordingRequest, RecordingResponse](t, url, UpdateRecordingProcedure, &req)
			if connect.CodeOf(err) != tt.code {
				t.Fatalf("expected %v, got %v", tt.code, err)
			}

			got := mustCall[UpdateRecordingRequest, RecordingResponse](t, url, UpdateRecordingProcedure, &UpdateRecordingRequest{SessionID: rec.SessionID}).Recording
			if got.ClubID != first.ID || got.Course != "" || !got.FrontNine || got.Hole != 1 || got.ShotNumber != 1 {
				t.Errorf("rejected update changed the session: %+v", got)
			}
		})
	}
}

func TestSaveShotUsesClock(t *testing.T) {
	clock := func() time.Time { return time.Date(2025, 6, 1, 9, 15, 0, 0, time.UTC) }
	url := setupServer(t, WithClock(clock))
	club := createClub(t, url, "Driver")

	resp := recordManual(t, url, club.ID, "240")
	if got := resp.Club.Shots[0].Date; got != "6/1/25, 9:15 AM" {
		t.Errorf("shot date = %q, want 6/1/25, 9:15 AM", got)
	}
}

func TestListClubsSummaries(t *testing.T) {
	url := setupServer(t)
	club := createClub(t, url, "Driver")
	createClub(t, url, "Putter")
	for _, text := range []string{"230", "260"} {
		recordManual(t, url, club.ID, text)
	}

	resp := mustCall[ListClubsRequest, ListClubsResponse](t, url, ListClubsProcedure, &ListClubsRequest{})
	if len(resp.Clubs) != 2 {
		t.Fatalf("expected 2 clubs, got %d", len(resp.Clubs))
	}
	driver := resp.Clubs[0]
	if driver.LongestYards != 260 || driver.ShortestYards != 230 || driver.AverageYardage != 245 {
		t.Errorf("unexpected driver summary: %+v", driver)
	}
	if putter := resp.Clubs[1]; putter.ShotCount != 0 || putter.LongestYards != 0 {
		t.Errorf("unexpected putter summary: %+v", putter)
	}
}

func TestAbandonedSessionsEvicted(t *testing.T) {
	url := setupServer(t, WithMaxSessions(2))
	oldest := startRecording(t, url)
	startRecording(t, url)
	startRecording(t, url)

	resp := mustCall[CancelRecordingRequest, CancelRecordingResponse](t, url, CancelRecordingProcedure, &CancelRecordingRequest{SessionID: oldest.SessionID})
	if resp.Discarded {
		t.Error("expected oldest session to have been evicted")
	}
}

func TestClearLocation(t *testing.T) {
	url := setupServer(t)
	rec := startRecording(t, url)
	mustCall[SetDistanceModeRequest, RecordingResponse](t, url, SetDistanceModeProcedure, &SetDistanceModeRequest{SessionID: rec.SessionID, Mode: "gps"})
	mustCall[UpdateLocationRequest, UpdateLocationResponse](t, url, UpdateLocationProcedure, &UpdateLocationRequest{Latitude: 37.0, Longitude: -122.0})
	mustCall[ClearLocationRequest, ClearLocationResponse](t, url, ClearLocationProcedure, &ClearLocationRequest{})

	resp := mustCall[DropPinRequest, DropPinResponse](t, url, DropPinProcedure, &DropPinRequest{SessionID: rec.SessionID, Pin: PinStart})
	if resp.Dropped {
		t.Error("expected no pin after the fix was cleared")
	}
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }
