// Package location supplies the device's most recent GPS fix.
//
// The platform delivers fixes asynchronously; the core only ever reads the
// latest value and never drives the provider's lifecycle.
package location

import (
	"log/slog"
	"sync"

	"github.com/mmynk/caddie/internal/models"
)

// Provider exposes the current device location, if one is known.
type Provider interface {
	CurrentLocation() (models.Coordinate, bool)
}

// Ensure Tracker implements Provider
var _ Provider = (*Tracker)(nil)

// Tracker holds the latest location fix. Each update overwrites the previous
// one; there is no queueing.
type Tracker struct {
	mu      sync.RWMutex
	current models.Coordinate
	known   bool
}

// NewTracker creates a Tracker with no fix.
func NewTracker() *Tracker {
	return &Tracker{}
}

// CurrentLocation returns the latest fix and whether one is available.
func (t *Tracker) CurrentLocation() (models.Coordinate, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current, t.known
}

// Update records a new fix. Out-of-range coordinates are dropped and the
// previous fix is kept. It reports whether the fix was accepted.
func (t *Tracker) Update(c models.Coordinate) bool {
	if !c.Valid() {
		slog.Warn("Ignoring invalid location fix", "coordinate", c.String())
		return false
	}
	t.mu.Lock()
	t.current = c
	t.known = true
	t.mu.Unlock()
	return true
}

// Clear forgets the current fix, e.g. when permission is revoked.
func (t *Tracker) Clear() {
	t.mu.Lock()
	t.current = models.Coordinate{}
	t.known = false
	t.mu.Unlock()
}
