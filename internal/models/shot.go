package models

import "time"

// DateLayout is the short date/time format captured when a shot is recorded.
// It is display text, not a sortable machine timestamp.
const DateLayout = "1/2/06, 3:04 PM"

const (
	// MaxHole is the highest hole number on a full round.
	MaxHole = 18

	// MaxShotNumber is the highest shot number tracked per hole.
	MaxShotNumber = 10
)

// Source records how a shot's distance was obtained.
type Source string

const (
	SourceManual Source = "manual"
	SourceGPS    Source = "gps"
)

// Shot is a single recorded swing.
// Shots are created once and never mutated in place.
type Shot struct {
	// Distance is the carry distance in yards. Always > 0 for a recorded shot.
	Distance float64

	// Source is how Distance was obtained (manual entry or GPS pins).
	Source Source

	// Date is the formatted recording time (see DateLayout).
	Date string

	// Course is the golf course name. Empty when not recorded.
	Course string

	// Hole is the hole number (1-18). Zero when not recorded.
	Hole int

	// ShotNumber is the position within the sequence of shots on the hole (1-10).
	// Zero when not recorded.
	ShotNumber int

	// Start is the GPS start pin. Nil unless the distance came from GPS.
	Start *Coordinate
}

// FormatDate renders t the way shot dates are stored.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// WithDefaultSource fills in a missing Source. Only GPS shots carry a start
// pin, so a pinned shot without a source is GPS and anything else is manual.
func (s Shot) WithDefaultSource() Shot {
	if s.Source != "" {
		return s
	}
	if s.Start != nil {
		s.Source = SourceGPS
	} else {
		s.Source = SourceManual
	}
	return s
}

// Validate checks the shot's fields against the recording rules.
// An empty Source is allowed; AppendShot fills it in.
func (s Shot) Validate() error {
	if s.Distance <= 0 {
		return ErrNonPositiveDistance
	}
	switch s.Source {
	case "", SourceManual, SourceGPS:
	default:
		return ErrUnknownSource
	}
	if s.Hole != 0 && (s.Hole < 1 || s.Hole > MaxHole) {
		return ErrHoleOutOfRange
	}
	if s.ShotNumber != 0 && (s.ShotNumber < 1 || s.ShotNumber > MaxShotNumber) {
		return ErrShotNumberOutOfRange
	}
	return nil
}

// Equal reports whether two shots match on every field.
// Start pins are compared by value, not by pointer.
func (s Shot) Equal(other Shot) bool {
	if s.Distance != other.Distance ||
		s.Source != other.Source ||
		s.Date != other.Date ||
		s.Course != other.Course ||
		s.Hole != other.Hole ||
		s.ShotNumber != other.ShotNumber {
		return false
	}
	if s.Start == nil || other.Start == nil {
		return s.Start == nil && other.Start == nil
	}
	return *s.Start == *other.Start
}

func (s Shot) clone() Shot {
	if s.Start != nil {
		start := *s.Start
		s.Start = &start
	}
	return s
}
