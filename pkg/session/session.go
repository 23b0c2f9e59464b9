// Package session keeps editing sessions in memory.
//
// A session pairs an id with one [interact.Controller]. The HTTP server
// hands each client its own session so independent users never share a
// graph. Sessions expire after a period without use; expired sessions are
// dropped by [Store.Get] and [Store.Cleanup], and their controllers are
// closed so no dwell timer outlives them.
//
//	store := session.NewMemoryStore(session.DefaultTTL)
//	sess, err := store.Create(ctx, interact.New())
//	...
//	sess, err = store.Get(ctx, sess.ID)
package session

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/graphsketch/pkg/interact"
)

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 2 * time.Hour

// Session is one editing session.
type Session struct {
	ID        string
	Editor    *interact.Controller
	CreatedAt time.Time

	mu       sync.Mutex
	lastUsed time.Time
}

// LastUsed returns when the session was last fetched.
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastUsed = now
	s.mu.Unlock()
}

// Store is the interface for session registries.
type Store interface {
	// Create registers editor under a fresh id.
	Create(ctx context.Context, editor *interact.Controller) (*Session, error)

	// Get returns the session and marks it used. Missing or expired
	// sessions yield ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete closes and removes the session. Deleting a missing id is not
	// an error.
	Delete(ctx context.Context, id string) error

	// List returns the live sessions, oldest first.
	List(ctx context.Context) ([]*Session, error)

	// Cleanup closes and removes expired sessions and reports how many.
	Cleanup(ctx context.Context) (int, error)
}

// MemoryStore is a [Store] backed by a map.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewMemoryStore returns an empty store whose sessions expire after ttl
// without use. A ttl <= 0 means [DefaultTTL].
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{ttl: ttl, now: time.Now, sessions: map[string]*Session{}}
}

func (m *MemoryStore) Create(_ context.Context, editor *interact.Controller) (*Session, error) {
	now := m.now()
	s := &Session{
		ID:        uuid.NewString(),
		Editor:    editor,
		CreatedAt: now,
		lastUsed:  now,
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := m.now()
	if m.expired(s, now) {
		m.remove(s)
		return nil, ErrNotFound
	}
	s.touch(now)
	return s, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		m.remove(s)
	}
	return nil
}

func (m *MemoryStore) List(_ context.Context) ([]*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		if !m.expired(s, now) {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b *Session) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (m *MemoryStore) Cleanup(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	n := 0
	for _, s := range m.sessions {
		if m.expired(s, now) {
			m.remove(s)
			n++
		}
	}
	return n, nil
}

// Close closes every session.
func (m *MemoryStore) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		m.remove(s)
	}
}

func (m *MemoryStore) expired(s *Session, now time.Time) bool {
	return now.Sub(s.LastUsed()) > m.ttl
}

// remove requires m.mu.
func (m *MemoryStore) remove(s *Session) {
	delete(m.sessions, s.ID)
	s.Editor.Close()
}

var _ Store = (*MemoryStore)(nil)
