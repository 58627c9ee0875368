// Package recorder holds the state of an in-progress "record shot" form.
//
// A Session collects the distance inputs and the shot context until the user
// saves or cancels. Nothing is committed until the shot is appended through
// the repository, so cancelling only drops the session.
package recorder

import (
	"errors"
	"strings"
	"time"

	"github.com/mmynk/caddie/internal/distance"
	"github.com/mmynk/caddie/internal/location"
	"github.com/mmynk/caddie/internal/models"
)

// ErrNoDistance is returned by Build when no positive distance has been captured.
var ErrNoDistance = errors.New("no distance captured")

// Session is the pending state of one shot recording.
type Session struct {
	ID     string
	Engine *distance.Engine

	ClubID     string
	Course     string
	FrontNine  bool
	Hole       int
	ShotNumber int
}

// NewSession creates a session with hole 1, shot 1 on the front nine.
func NewSession(id string, provider location.Provider) *Session {
	return &Session{
		ID:         id,
		Engine:     distance.NewEngine(provider),
		FrontNine:  true,
		Hole:       1,
		ShotNumber: 1,
	}
}

// SetNine switches between the front and back nine. The selected hole moves
// to the first hole of that nine when it falls outside it.
func (s *Session) SetNine(front bool) {
	s.FrontNine = front
	holes := Holes(front)
	if s.Hole < holes[0] || s.Hole > holes[len(holes)-1] {
		s.Hole = holes[0]
	}
}

// Build assembles the shot to save. The start pin is kept only for shots
// whose distance came from GPS.
func (s *Session) Build(now time.Time) (models.Shot, error) {
	yards, source, ok := s.Engine.Distance()
	if !ok {
		return models.Shot{}, ErrNoDistance
	}

	shot := models.Shot{
		Distance:   yards,
		Source:     source,
		Date:       models.FormatDate(now),
		Course:     strings.TrimSpace(s.Course),
		Hole:       s.Hole,
		ShotNumber: s.ShotNumber,
	}
	if source == models.SourceGPS {
		shot.Start = s.Engine.StartPin()
	}

	if err := shot.Validate(); err != nil {
		return models.Shot{}, err
	}
	return shot, nil
}

// Holes returns the hole numbers of the front (1-9) or back (10-18) nine.
func Holes(front bool) []int {
	first := 1
	if !front {
		first = 10
	}
	holes := make([]int, 9)
	for i := range holes {
		holes[i] = first + i
	}
	return holes
}
