// Package shell models the modal sheets the presentation layer can show.
//
// Sheets carry club IDs rather than club values. Resolve reads the club from
// the repository when the sheet is shown, so a sheet opened before a shot was
// recorded or deleted never renders a stale copy.
package shell

import (
	"errors"
	"fmt"

	"github.com/mmynk/caddie/internal/models"
	"github.com/mmynk/caddie/internal/stats"
)

// ErrStale is returned when a sheet refers to a club or shot that no longer exists.
var ErrStale = errors.New("sheet refers to data that no longer exists")

// Kind names a sheet variant on the wire.
type Kind string

const (
	KindAddClub    Kind = "add_club"
	KindRecordShot Kind = "record_shot"
	KindShotList   Kind = "shot_list"
	KindShotDetail Kind = "shot_detail"
)

// Sheet is one of AddClub, RecordShot, ShotList or ShotDetail.
type Sheet interface {
	ID() string
	Kind() Kind
	sheet()
}

// AddClub is the "new club" form.
type AddClub struct{}

// RecordShot is the "record a shot" form.
type RecordShot struct{}

// ShotList shows the history of one club.
type ShotList struct {
	ClubID string
}

// ShotDetail shows one shot of one club. Shots are immutable values, so
// carrying the shot itself is safe; the club is still looked up by ID.
type ShotDetail struct {
	ClubID string
	Shot   models.Shot
}

func (AddClub) ID() string      { return "addClub" }
func (RecordShot) ID() string   { return "recordShot" }
func (s ShotList) ID() string   { return "shotList-" + s.ClubID }
func (s ShotDetail) ID() string { return "shotDetail-" + s.ClubID + "-" + shotKey(s.Shot) }

// shotKey covers every field Shot.Equal compares, since dates only resolve to
// the minute.
func shotKey(s models.Shot) string {
	key := fmt.Sprintf("%s/h%d/s%d/%g%s", s.Date, s.Hole, s.ShotNumber, s.Distance, s.Source)
	if s.Course != "" {
		key += "/" + s.Course
	}
	if s.Start != nil {
		key += "@" + s.Start.String()
	}
	return key
}

func (AddClub) Kind() Kind    { return KindAddClub }
func (RecordShot) Kind() Kind { return KindRecordShot }
func (ShotList) Kind() Kind   { return KindShotList }
func (ShotDetail) Kind() Kind { return KindShotDetail }

func (AddClub) sheet()    {}
func (RecordShot) sheet() {}
func (ShotList) sheet()   {}
func (ShotDetail) sheet() {}

// ClubLookup is the read side of the repository.
type ClubLookup interface {
	Club(id string) (models.Club, bool)
	Clubs() []models.Club
	Courses() []string
}

// View is the data a resolved sheet renders.
type View struct {
	SheetID string
	Kind    Kind

	// Club is set for ShotList and ShotDetail.
	Club *models.Club
	// Summary is set for ShotList.
	Summary *stats.Summary
	// Shot is set for ShotDetail.
	Shot *models.Shot
	// Clubs and Courses populate the pickers of RecordShot.
	Clubs   []models.Club
	Courses []string
}

// Resolve loads the current data for sheet.
func Resolve(sheet Sheet, lookup ClubLookup) (View, error) {
	view := View{SheetID: sheet.ID(), Kind: sheet.Kind()}

	switch s := sheet.(type) {
	case AddClub:
		return view, nil

	case RecordShot:
		view.Clubs = lookup.Clubs()
		view.Courses = lookup.Courses()
		return view, nil

	case ShotList:
		club, ok := lookup.Club(s.ClubID)
		if !ok {
			return View{}, fmt.Errorf("club %s: %w", s.ClubID, ErrStale)
		}
		summary := stats.Summarize(club)
		view.Club = &club
		view.Summary = &summary
		return view, nil

	case ShotDetail:
		club, ok := lookup.Club(s.ClubID)
		if !ok {
			return View{}, fmt.Errorf("club %s: %w", s.ClubID, ErrStale)
		}
		for i := range club.Shots {
			if club.Shots[i].Equal(s.Shot) {
				shot := club.Shots[i]
				view.Club = &club
				view.Shot = &shot
				return view, nil
			}
		}
		return View{}, fmt.Errorf("shot on club %s: %w", s.ClubID, ErrStale)

	default:
		return View{}, fmt.Errorf("unknown sheet %T", sheet)
	}
}
