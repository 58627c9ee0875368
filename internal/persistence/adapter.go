// Package persistence serializes the club collection and the saved-course
// list into the host key-value store.
//
// Loads never fail: absent or malformed blobs yield an empty collection.
// Saves always write the full collection.
package persistence

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmynk/caddie/internal/metrics"
	"github.com/mmynk/caddie/internal/models"
	"github.com/mmynk/caddie/internal/storage"
)

const (
	// ClubsKey is the key-value slot holding the club collection.
	ClubsKey = "savedClubs"

	// CoursesKey is the key-value slot holding the saved course names.
	CoursesKey = "savedCourses"
)

// Adapter reads and writes the two persisted blobs.
type Adapter struct {
	store   storage.Store
	metrics *metrics.Metrics
}

// NewAdapter creates an Adapter over store. m may be nil.
func NewAdapter(store storage.Store, m *metrics.Metrics) *Adapter {
	return &Adapter{store: store, metrics: m}
}

// LoadClubs returns the persisted clubs, or an empty collection when the blob
// is absent or cannot be decoded.
func (a *Adapter) LoadClubs(ctx context.Context) []models.Club {
	data, ok := a.read(ctx, ClubsKey)
	if !ok {
		return []models.Club{}
	}
	clubs, err := DecodeClubs(data)
	if err != nil {
		slog.Warn("Discarding unreadable club data", "key", ClubsKey, "error", err)
		a.metrics.LoadFellBack(ClubsKey, "malformed")
		return []models.Club{}
	}
	slog.Debug("Clubs loaded", "count", len(clubs))
	return clubs
}

// SaveClubs overwrites the club blob with the full collection.
func (a *Adapter) SaveClubs(ctx context.Context, clubs []models.Club) error {
	data, err := EncodeClubs(clubs)
	if err == nil {
		err = a.store.Set(ctx, ClubsKey, data)
	}
	a.metrics.BlobWritten(ClubsKey, err)
	return err
}

// LoadCourses returns the saved course names, or an empty list when the blob
// is absent or cannot be decoded.
func (a *Adapter) LoadCourses(ctx context.Context) []string {
	data, ok := a.read(ctx, CoursesKey)
	if !ok {
		return []string{}
	}
	courses, err := DecodeCourses(data)
	if err != nil {
		slog.Warn("Discarding unreadable course data", "key", CoursesKey, "error", err)
		a.metrics.LoadFellBack(CoursesKey, "malformed")
		return []string{}
	}
	return courses
}

// SaveCourses overwrites the course blob with the full list.
func (a *Adapter) SaveCourses(ctx context.Context, courses []string) error {
	data, err := EncodeCourses(courses)
	if err == nil {
		err = a.store.Set(ctx, CoursesKey, data)
	}
	a.metrics.BlobWritten(CoursesKey, err)
	return err
}

func (a *Adapter) read(ctx context.Context, key string) ([]byte, bool) {
	data, err := a.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		a.metrics.LoadFellBack(key, "absent")
		return nil, false
	}
	if err != nil {
		slog.Warn("Failed to read persisted data", "key", key, "error", err)
		a.metrics.LoadFellBack(key, "unreadable")
		return nil, false
	}
	if len(data) == 0 {
		a.metrics.LoadFellBack(key, "absent")
		return nil, false
	}
	return data, true
}
