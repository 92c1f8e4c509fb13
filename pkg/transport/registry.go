package transport

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Registry errors.
var (
	// ErrDuplicateSession is returned when registering an ID that is
	// already live.
	ErrDuplicateSession = errors.New("session already registered")

	// ErrUnknownSession is returned when looking up an ID that is not
	// registered.
	ErrUnknownSession = errors.New("session not found")
)

// Registry is the process-wide table mapping session IDs to live streams.
// It is the only shared mutable state in the transport; all access goes
// through the mutex. Entries are created when a streaming connection opens
// and removed synchronously when it closes.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Stream
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Stream)}
}

// Register inserts a stream under the given session ID. Registering an ID
// that is already present fails with ErrDuplicateSession.
func (r *Registry) Register(id string, s *Stream) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSession, id)
	}
	r.sessions[id] = s
	return nil
}

// Lookup returns the stream for the given session ID, or ErrUnknownSession.
func (r *Registry) Lookup(id string) (*Stream, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.sessions[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	return s, nil
}

// Unregister removes the session. Removing an absent ID is a no-op.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// CloseAll closes every live stream. Used during shutdown so streaming
// handlers return and the HTTP server can drain.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		s.Close()
	}
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

var sessionCounter atomic.Uint64

// generateSessionID mints an opaque session identifier: 16 bytes of
// crypto/rand hex combined with a process-local counter, so IDs stay
// unique even in the unlikely event of a random collision.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is effectively fatal elsewhere; fall back
		// to timestamp plus counter rather than panicking here.
		return fmt.Sprintf("session_%d_%d", time.Now().UnixNano(), sessionCounter.Add(1))
	}
	return fmt.Sprintf("%s-%d", hex.EncodeToString(b), sessionCounter.Add(1))
}
