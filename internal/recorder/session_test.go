package recorder

import (
	"errors"
	"testing"
	"time"

	"github.com/mmynk/caddie/internal/distance"
	"github.com/mmynk/caddie/internal/location"
	"github.com/mmynk/caddie/internal/models"
)

var recordedAt = time.Date(2025, 6, 1, 9, 15, 0, 0, time.UTC)

func TestBuildManual(t *testing.T) {
	s := NewSession("s1", location.NewTracker())
	s.Engine.SetMode(distance.ModeManual)
	s.Engine.SetManual("230")
	s.Course = " Pebble Beach "
	s.Hole = 4
	s.ShotNumber = 2

	shot, err := s.Build(recordedAt)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	want := models.Shot{
		Distance:   230,
		Source:     models.SourceManual,
		Date:       "6/1/25, 9:15 AM",
		Course:     "Pebble Beach",
		Hole:       4,
		ShotNumber: 2,
	}
	if !shot.Equal(want) {
		t.Errorf("Build() = %+v, want %+v", shot, want)
	}
}

func TestBuildGPS(t *testing.T) {
	tracker := location.NewTracker()
	s := NewSession("s1", tracker)
	s.Engine.SetMode(distance.ModeGPS)

	tracker.Update(models.Coordinate{Latitude: 36.5680, Longitude: -121.9500})
	s.Engine.DropStartPin()
	tracker.Update(models.Coordinate{Latitude: 36.5701, Longitude: -121.9500})
	s.Engine.DropEndPin()

	shot, err := s.Build(recordedAt)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if shot.Source != models.SourceGPS {
		t.Errorf("Source = %q, want gps", shot.Source)
	}
	if shot.Start == nil || shot.Start.Latitude != 36.5680 {
		t.Errorf("Start = %v, want start pin", shot.Start)
	}
	if shot.Distance < 250 || shot.Distance > 260 {
		t.Errorf("Distance = %v yards, want ~255", shot.Distance)
	}
}

func TestBuildWithoutDistance(t *testing.T) {
	tracker := location.NewTracker()
	s := NewSession("s1", tracker)
	s.Engine.SetMode(distance.ModeGPS)
	tracker.Update(models.Coordinate{Latitude: 1, Longitude: 1})

	// End pin with no start pin computes nothing.
	s.Engine.DropEndPin()

	if _, err := s.Build(recordedAt); !errors.Is(err, ErrNoDistance) {
		t.Fatalf("expected ErrNoDistance, got %v", err)
	}
}

func TestBuildRejectsBadContext(t *testing.T) {
	s := NewSession("s1", nil)
	s.Engine.SetMode(distance.ModeManual)
	s.Engine.SetManual("100")
	s.ShotNumber = 12

	if _, err := s.Build(recordedAt); !errors.Is(err, models.ErrShotNumberOutOfRange) {
		t.Fatalf("expected ErrShotNumberOutOfRange, got %v", err)
	}
}

func TestSetNine(t *testing.T) {
	s := NewSession("s1", nil)
	s.Hole = 7

	s.SetNine(false)
	if s.Hole != 10 {
		t.Errorf("Hole = %d after switching to back nine, want 10", s.Hole)
	}
	s.Hole = 14
	s.SetNine(false)
	if s.Hole != 14 {
		t.Errorf("Hole = %d, want 14 kept", s.Hole)
	}
	s.SetNine(true)
	if s.Hole != 1 {
		t.Errorf("Hole = %d after switching to front nine, want 1", s.Hole)
	}
}

func TestHoles(t *testing.T) {
	front, back := Holes(true), Holes(false)
	if len(front) != 9 || front[0] != 1 || front[8] != 9 {
		t.Errorf("front nine = %v", front)
	}
	if len(back) != 9 || back[0] != 10 || back[8] != 18 {
		t.Errorf("back nine = %v", back)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(location.NewTracker(), 0)

	s := r.Start()
	if s.ID == "" {
		t.Fatal("expected session ID")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}

	err := r.With(s.ID, func(s *Session) error {
		s.Course = "Muni"
		return nil
	})
	if err != nil {
		t.Fatalf("With failed: %v", err)
	}
	r.With(s.ID, func(s *Session) error {
		if s.Course != "Muni" {
			t.Errorf("edit lost: Course = %q", s.Course)
		}
		return nil
	})

	if err := r.With("missing", func(*Session) error { return nil }); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}

	if !r.Discard(s.ID) {
		t.Error("expected Discard to report existing session")
	}
	if r.Discard(s.ID) {
		t.Error("expected second Discard to report false")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestRegistryEvictsOldest(t *testing.T) {
	r := NewRegistry(location.NewTracker(), 2)

	first := r.Start()
	second := r.Start()
	if !r.Discard(second.ID) {
		t.Fatal("expected Discard to report existing session")
	}
	third := r.Start()
	fourth := r.Start()

	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
	if err := r.With(first.ID, func(*Session) error { return nil }); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected oldest session evicted, got %v", err)
	}
	for _, s := range []*Session{third, fourth} {
		if err := r.With(s.ID, func(*Session) error { return nil }); err != nil {
			t.Errorf("session %s: %v", s.ID, err)
		}
	}
}
