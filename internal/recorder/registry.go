package recorder

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mmynk/caddie/internal/location"
)

var ErrSessionNotFound = errors.New("recording session not found")

// DefaultMaxSessions is the number of open sessions a Registry keeps before
// it evicts the oldest.
const DefaultMaxSessions = 16

// Registry tracks open recording sessions by ID. Abandoned sessions are
// evicted oldest-first once more than the cap are open.
type Registry struct {
	mu       sync.Mutex
	provider location.Provider
	max      int
	sessions map[string]*Session
	order    []string // oldest first
}

// NewRegistry creates a Registry whose sessions read pins from provider and
// that keeps at most max open sessions. max <= 0 uses DefaultMaxSessions.
func NewRegistry(provider location.Provider, max int) *Registry {
	if max <= 0 {
		max = DefaultMaxSessions
	}
	return &Registry{
		provider: provider,
		max:      max,
		sessions: make(map[string]*Session),
	}
}

// Start opens a new session, evicting the oldest ones if the registry is full.
func (r *Registry) Start() *Session {
	s := NewSession(uuid.New().String(), r.provider)

	r.mu.Lock()
	defer r.mu.Unlock()
	for len(r.order) >= r.max {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.sessions, oldest)
		slog.Info("Evicted abandoned recording session", "session_id", oldest)
	}
	r.sessions[s.ID] = s
	r.order = append(r.order, s.ID)
	return s
}

// With runs fn on the session with the given ID while holding the registry
// lock, so two requests never edit one session at once.
func (r *Registry) With(id string, fn func(*Session) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	return fn(s)
}

// Discard drops a session and its pending edits. It reports whether the
// session existed.
func (r *Registry) Discard(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	for i, sid := range r.order {
		if sid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
