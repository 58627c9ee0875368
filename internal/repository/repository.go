// Package repository owns the in-memory club and course collections and
// persists them after every mutation.
//
// All writes go through MutateClubs or MutateCourses: the transform runs on a
// copy, the full collection is written to storage, and only then does the
// in-memory state change. A failed write leaves memory and storage agreeing.
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mmynk/caddie/internal/metrics"
	"github.com/mmynk/caddie/internal/models"
)

// ErrClubNotFound is returned when an operation names an unknown club ID.
var ErrClubNotFound = errors.New("club not found")

// Persister is the persistence contract the repository writes through.
type Persister interface {
	LoadClubs(ctx context.Context) []models.Club
	SaveClubs(ctx context.Context, clubs []models.Club) error
	LoadCourses(ctx context.Context) []string
	SaveCourses(ctx context.Context, courses []string) error
}

// Option configures a Repository.
type Option func(*Repository)

// WithMetrics records repository events into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Repository) { r.metrics = m }
}

// Repository is the single owner of the club and course collections.
// Methods are safe for concurrent use.
type Repository struct {
	mu        sync.Mutex
	persister Persister
	clubs     []models.Club
	courses   []string

	metrics *metrics.Metrics
}

// Open loads both collections from p. Unreadable data yields empty
// collections, so Open itself never fails on bad data.
func Open(ctx context.Context, p Persister, opts ...Option) *Repository {
	r := &Repository{persister: p}
	for _, opt := range opts {
		opt(r)
	}

	r.clubs = p.LoadClubs(ctx)
	r.courses = p.LoadCourses(ctx)

	slog.Info("Repository loaded", "clubs", len(r.clubs), "courses", len(r.courses))
	return r
}

// Clubs returns a copy of every club in bag order.
func (r *Repository) Clubs() []models.Club {
	r.mu.Lock()
	defer r.mu.Unlock()
	return models.CloneClubs(r.clubs)
}

// Club returns a copy of the club with the given ID.
func (r *Repository) Club(id string) (models.Club, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := indexOf(r.clubs, id); i >= 0 {
		return r.clubs[i].Clone(), true
	}
	return models.Club{}, false
}

// Courses returns a copy of the saved course names.
func (r *Repository) Courses() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.courses...)
}

// MutateClubs applies fn to a copy of the club collection and persists the
// result. If fn returns an error nothing is written and the state is unchanged.
func (r *Repository) MutateClubs(ctx context.Context, fn func([]models.Club) ([]models.Club, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := fn(models.CloneClubs(r.clubs))
	if err != nil {
		return err
	}
	if err := r.persister.SaveClubs(ctx, next); err != nil {
		slog.Error("Failed to persist clubs", "error", err)
		return fmt.Errorf("failed to persist clubs: %w", err)
	}
	r.clubs = next
	return nil
}

// MutateCourses applies fn to a copy of the course list and persists the result.
func (r *Repository) MutateCourses(ctx context.Context, fn func([]string) ([]string, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := fn(append([]string(nil), r.courses...))
	if err != nil {
		return err
	}
	if err := r.persister.SaveCourses(ctx, next); err != nil {
		slog.Error("Failed to persist courses", "error", err)
		return fmt.Errorf("failed to persist courses: %w", err)
	}
	r.courses = next
	return nil
}

// CreateClub adds a new club to the end of the bag.
func (r *Repository) CreateClub(ctx context.Context, name, yardage string) (models.Club, error) {
	club, err := models.NewClub(name, yardage)
	if err != nil {
		return models.Club{}, err
	}

	err = r.MutateClubs(ctx, func(clubs []models.Club) ([]models.Club, error) {
		return append(clubs, club), nil
	})
	if err != nil {
		return models.Club{}, err
	}

	r.metrics.ClubCreated()
	slog.Info("Club created", "club_id", club.ID, "name", club.Name)
	return club.Clone(), nil
}

// AppendShot records shot against the club with the given ID.
func (r *Repository) AppendShot(ctx context.Context, clubID string, shot models.Shot) (models.Club, error) {
	shot = shot.WithDefaultSource()

	var updated models.Club
	err := r.MutateClubs(ctx, func(clubs []models.Club) ([]models.Club, error) {
		i := indexOf(clubs, clubID)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrClubNotFound, clubID)
		}
		next, err := clubs[i].AppendShot(shot)
		if err != nil {
			return nil, err
		}
		clubs[i] = next
		updated = next.Clone()
		return clubs, nil
	})
	if err != nil {
		return models.Club{}, err
	}

	r.metrics.ShotRecorded(string(shot.Source))
	slog.Info("Shot recorded",
		"club_id", clubID,
		"distance_yards", shot.Distance,
		"source", shot.Source,
		"course", shot.Course,
		"hole", shot.Hole,
	)
	return updated, nil
}

// DeleteShot removes the first shot equal to shot from the club.
// The boolean is false, and nothing is written, when no shot matched.
func (r *Repository) DeleteShot(ctx context.Context, clubID string, shot models.Shot) (models.Club, bool, error) {
	var (
		updated models.Club
		removed bool
	)
	err := r.MutateClubs(ctx, func(clubs []models.Club) ([]models.Club, error) {
		i := indexOf(clubs, clubID)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrClubNotFound, clubID)
		}
		next, ok := clubs[i].DeleteShot(shot)
		updated = next.Clone()
		if !ok {
			return nil, errNoMatch
		}
		clubs[i] = next
		removed = true
		return clubs, nil
	})
	if errors.Is(err, errNoMatch) {
		return updated, false, nil
	}
	if err != nil {
		return models.Club{}, false, err
	}

	r.metrics.ShotDeleted()
	slog.Info("Shot deleted", "club_id", clubID, "date", shot.Date)
	return updated, removed, nil
}

// AddCourse appends a course name to the saved list.
// Empty names and names already saved are ignored and report false.
func (r *Repository) AddCourse(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}

	added := false
	err := r.MutateCourses(ctx, func(courses []string) ([]string, error) {
		for _, c := range courses {
			if c == name {
				return nil, errDuplicateCourse
			}
		}
		added = true
		return append(courses, name), nil
	})
	if errors.Is(err, errDuplicateCourse) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	slog.Info("Course saved", "course", name)
	return added, nil
}

// Sentinels used to abort a mutation without writing.
var (
	errNoMatch         = errors.New("no matching shot")
	errDuplicateCourse = errors.New("course already saved")
)

func indexOf(clubs []models.Club, id string) int {
	for i, c := range clubs {
		if c.ID == id {
			return i
		}
	}
	return -1
}
