package persistence

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mmynk/caddie/internal/models"
)

// errMalformed marks a blob that decoded but violates the model invariants.
var errMalformed = errors.New("malformed record")

// clubRecord is the persisted form of a club. Field names match the blobs
// written by the original mobile app so existing data still loads.
type clubRecord struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Yardage int          `json:"yardage,omitempty"`
	Shots   []shotRecord `json:"shots"`
}

type shotRecord struct {
	Distance       float64  `json:"distance"`
	Source         string   `json:"source,omitempty"`
	Date           string   `json:"date"`
	Course         string   `json:"course,omitempty"`
	Hole           int      `json:"hole,omitempty"`
	ShotNumber     int      `json:"shotNumber,omitempty"`
	StartLatitude  *float64 `json:"startLatitude,omitempty"`
	StartLongitude *float64 `json:"startLongitude,omitempty"`
}

// EncodeClubs serializes the full club collection.
func EncodeClubs(clubs []models.Club) ([]byte, error) {
	records := make([]clubRecord, len(clubs))
	for i, club := range clubs {
		records[i] = toClubRecord(club)
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode clubs: %w", err)
	}
	return data, nil
}

// DecodeClubs parses a club blob. Any structural or invariant violation fails
// the whole blob; there is no partial recovery.
func DecodeClubs(data []byte) ([]models.Club, error) {
	var records []clubRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode clubs: %w", err)
	}

	clubs := make([]models.Club, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		club, err := fromClubRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("club %d: %w", i, err)
		}
		if seen[club.ID] {
			return nil, fmt.Errorf("club %d: duplicate id %s: %w", i, club.ID, errMalformed)
		}
		seen[club.ID] = true
		clubs = append(clubs, club)
	}
	return clubs, nil
}

// EncodeCourses serializes the saved course names.
func EncodeCourses(courses []string) ([]byte, error) {
	if courses == nil {
		courses = []string{}
	}
	data, err := json.Marshal(courses)
	if err != nil {
		return nil, fmt.Errorf("failed to encode courses: %w", err)
	}
	return data, nil
}

// DecodeCourses parses a course blob.
func DecodeCourses(data []byte) ([]string, error) {
	var courses []string
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, fmt.Errorf("failed to decode courses: %w", err)
	}
	if courses == nil {
		courses = []string{}
	}
	return courses, nil
}

func toClubRecord(club models.Club) clubRecord {
	rec := clubRecord{
		ID:      club.ID,
		Name:    club.Name,
		Yardage: club.Yardage,
		Shots:   make([]shotRecord, len(club.Shots)),
	}
	for i, shot := range club.Shots {
		s := shotRecord{
			Distance:   shot.Distance,
			Source:     string(shot.Source),
			Date:       shot.Date,
			Course:     shot.Course,
			Hole:       shot.Hole,
			ShotNumber: shot.ShotNumber,
		}
		if shot.Start != nil {
			lat, lng := shot.Start.Latitude, shot.Start.Longitude
			s.StartLatitude = &lat
			s.StartLongitude = &lng
		}
		rec.Shots[i] = s
	}
	return rec
}

func fromClubRecord(rec clubRecord) (models.Club, error) {
	if rec.ID == "" {
		return models.Club{}, fmt.Errorf("missing id: %w", errMalformed)
	}
	if rec.Name == "" {
		return models.Club{}, fmt.Errorf("missing name: %w", errMalformed)
	}
	if rec.Yardage < 0 {
		return models.Club{}, fmt.Errorf("negative yardage: %w", errMalformed)
	}

	club := models.Club{ID: rec.ID, Name: rec.Name, Yardage: rec.Yardage}
	if len(rec.Shots) > 0 {
		club.Shots = make([]models.Shot, 0, len(rec.Shots))
	}

	for j, s := range rec.Shots {
		shot := models.Shot{
			Distance:   s.Distance,
			Source:     models.Source(s.Source),
			Date:       s.Date,
			Course:     s.Course,
			Hole:       s.Hole,
			ShotNumber: s.ShotNumber,
		}
		if (s.StartLatitude == nil) != (s.StartLongitude == nil) {
			return models.Club{}, fmt.Errorf("shot %d: incomplete start pin: %w", j, errMalformed)
		}
		if s.StartLatitude != nil {
			shot.Start = &models.Coordinate{Latitude: *s.StartLatitude, Longitude: *s.StartLongitude}
		}
		// Older blobs have no source.
		shot = shot.WithDefaultSource()
		if err := shot.Validate(); err != nil {
			return models.Club{}, fmt.Errorf("shot %d: %v: %w", j, err, errMalformed)
		}
		club.Shots = append(club.Shots, shot)
	}
	return club, nil
}
