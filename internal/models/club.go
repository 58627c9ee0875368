package models

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Club is a golf club in the bag together with its shot history.
type Club struct {
	// ID is the unique identifier for the club (UUID format).
	// Assigned at creation and never reused.
	ID string

	// Name is the display name (e.g., "Driver", "7 Iron").
	Name string

	// Yardage is the optional nominal distance the player declared for the club.
	// Zero when not declared. Statistics never read it; see AverageYardage.
	Yardage int

	// Shots is the recorded history in recording order.
	Shots []Shot
}

// NewClub creates a club with a fresh ID.
// yardage may be empty; when set it must parse as a non-negative integer.
func NewClub(name, yardage string) (Club, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Club{}, ErrEmptyName
	}

	club := Club{ID: uuid.New().String(), Name: name}

	if yardage = strings.TrimSpace(yardage); yardage != "" {
		n, err := strconv.Atoi(yardage)
		if err != nil || n < 0 {
			return Club{}, ErrInvalidYardage
		}
		club.Yardage = n
	}

	return club, nil
}

// AverageYardage returns the truncated mean of the shot distances, or 0 with no shots.
func (c Club) AverageYardage() int {
	if len(c.Shots) == 0 {
		return 0
	}
	var total float64
	for _, shot := range c.Shots {
		total += shot.Distance
	}
	return int(total / float64(len(c.Shots)))
}

// AppendShot returns a copy of the club with shot appended.
// Invalid shots are rejected and the club is returned unchanged.
func (c Club) AppendShot(shot Shot) (Club, error) {
	if err := shot.Validate(); err != nil {
		return c.Clone(), err
	}
	next := c.Clone()
	next.Shots = append(next.Shots, shot.WithDefaultSource().clone())
	return next, nil
}

// DeleteShot returns a copy of the club without the first shot equal to shot.
// The boolean is false when no shot matched.
func (c Club) DeleteShot(shot Shot) (Club, bool) {
	next := c.Clone()
	for i, s := range next.Shots {
		if s.Equal(shot) {
			next.Shots = append(next.Shots[:i], next.Shots[i+1:]...)
			return next, true
		}
	}
	return next, false
}

// Clone returns a deep copy that shares no memory with c.
func (c Club) Clone() Club {
	if c.Shots == nil {
		return c
	}
	shots := make([]Shot, len(c.Shots))
	for i, s := range c.Shots {
		shots[i] = s.clone()
	}
	c.Shots = shots
	return c
}

// CloneClubs deep-copies a club collection.
func CloneClubs(clubs []Club) []Club {
	if clubs == nil {
		return nil
	}
	out := make([]Club, len(clubs))
	for i, c := range clubs {
		out[i] = c.Clone()
	}
	return out
}
