package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EvictFunc is called when a session leaves the store for any reason:
// TTL expiry, capacity eviction, explicit deletion, or store shutdown.
// It runs outside the store lock.
type EvictFunc func(s *Session)

// Store is an in-memory session store with TTL expiry.
//
// Each session's deadline is pushed forward on every Update, so an
// active session survives as long as the user keeps working with it.
// A janitor goroutine sweeps expired sessions; a capacity limit evicts
// the session closest to expiry when full.
type Store struct {
	sessions map[string]*held
	opts     *storeOptions
	onEvict  EvictFunc
	done     chan struct{}
	mu       sync.Mutex
	closed   bool
}

// held pairs a session with its expiry deadline.
type held struct {
	session   *Session
	expiresAt time.Time
}

// NewStore creates a session store.
//
// Example:
//
//	store := session.NewStore(
//	    session.WithTTL(30 * time.Minute),
//	    session.WithMaxSessions(1000),
//	)
//	defer store.Close()
func NewStore(opts ...StoreOption) *Store {
	o := defaultStoreOptions()
	for _, opt := range opts {
		opt(o)
	}

	s := &Store{
		sessions: make(map[string]*held),
		opts:     o,
		done:     make(chan struct{}),
	}

	if o.sweepInterval > 0 {
		go s.janitor()
	}

	return s
}

// OnEvict sets the eviction callback. Must be called before the store
// is shared across goroutines.
func (s *Store) OnEvict(fn EvictFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEvict = fn
}

// Create registers a new empty session and returns it.
func (s *Store) Create(_ context.Context) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	var evicted *held
	if s.opts.maxSessions > 0 && len(s.sessions) >= s.opts.maxSessions {
		evicted = s.evictSoonest()
	}

	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
	s.sessions[sess.ID] = &held{
		session:   sess,
		expiresAt: time.Now().Add(s.opts.ttl),
	}

	s.notify(evicted)
	return snapshot(sess), nil
}

// Get returns a copy of the session. Mutations must go through Update.
func (s *Store) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(h.expiresAt) {
		delete(s.sessions, id)
		s.notify(h)
		return nil, ErrNotFound
	}

	return snapshot(h.session), nil
}

// Update applies fn to the session under the store lock and extends the
// session's deadline. When fn returns an error the session is left as
// fn left it; fn must not mutate on its error paths.
func (s *Store) Update(_ context.Context, id string, fn func(*Session) error) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	h, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(h.expiresAt) {
		delete(s.sessions, id)
		s.notify(h)
		return nil, ErrNotFound
	}

	if err := fn(h.session); err != nil {
		return nil, err
	}

	h.expiresAt = time.Now().Add(s.opts.ttl)
	return snapshot(h.session), nil
}

// Delete removes a session and fires the eviction callback.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	h, ok := s.sessions[id]
	if !ok {
		return nil
	}
	delete(s.sessions, id)
	s.notify(h)
	return nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// SweepExpired removes all expired sessions immediately. The janitor
// calls this on its interval; the cron cleanup job calls it directly.
// Returns the number of sessions removed.
func (s *Store) SweepExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var evicted []*held
	for id, h := range s.sessions {
		if now.After(h.expiresAt) {
			delete(s.sessions, id)
			evicted = append(evicted, h)
		}
	}

	for _, h := range evicted {
		s.notify(h)
	}
	return len(evicted)
}

// Close stops the janitor and evicts every remaining session.
// Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	close(s.done)

	for id, h := range s.sessions {
		delete(s.sessions, id)
		s.notify(h)
	}
	return nil
}

// evictSoonest drops the session closest to expiry to make room.
// Caller must hold the mutex. Returns the evicted holder, if any.
func (s *Store) evictSoonest() *held {
	var (
		victimID string
		victim   *held
	)
	for id, h := range s.sessions {
		if victim == nil || h.expiresAt.Before(victim.expiresAt) {
			victimID, victim = id, h
		}
	}
	if victim != nil {
		delete(s.sessions, victimID)
	}
	return victim
}

// notify schedules the eviction callback outside the lock.
func (s *Store) notify(h *held) {
	if h == nil || s.onEvict == nil {
		return
	}
	go s.onEvict(snapshot(h.session))
}

// janitor periodically sweeps expired sessions.
func (s *Store) janitor() {
	ticker := time.NewTicker(s.opts.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.SweepExpired()
		}
	}
}

// snapshot returns a copy safe to hand outside the lock. The records
// slice is shared; callers treat it as read-only and replace it
// wholesale inside Update.
func snapshot(sess *Session) *Session {
	cp := *sess
	if sess.Layout != nil {
		layout := *sess.Layout
		cp.Layout = &layout
	}
	return &cp
}
