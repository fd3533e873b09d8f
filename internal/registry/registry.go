package registry

import (
	"sync"
	"time"

	"vanish/internal/domain"
	"vanish/internal/ident"
)

type session struct {
	id         domain.SessionID
	createdAt  time.Time
	lastActive time.Time
	ttl        time.Duration
	conn       domain.Conn
	rooms      map[domain.RoomID]struct{}
}

// Registry is the single-writer owner of session state.
type Registry struct {
	mu         sync.RWMutex
	sessions   map[domain.SessionID]*session
	tombstones map[domain.SessionID]time.Time // identifier -> dormancy deadline
	ttl        time.Duration

	hooksMu   sync.Mutex
	onDestroy []func(domain.SessionID)
}

// New returns a Registry whose sessions default to ttl.
func New(ttl time.Duration) *Registry {
	return &Registry{
		sessions:   make(map[domain.SessionID]*session),
		tombstones: make(map[domain.SessionID]time.Time),
		ttl:        ttl,
	}
}

// OnDestroy registers a cascade hook invoked after a session is removed.
// Hooks run outside the registry lock.
func (r *Registry) OnDestroy(fn func(domain.SessionID)) {
	r.hooksMu.Lock()
	defer r.hooksMu.Unlock()
	r.onDestroy = append(r.onDestroy, fn)
}

// Create mints and registers a new session. A token colliding with a live
// session or a tombstoned identifier still inside its dormancy window is
// redrawn. The only error path is entropy failure, which callers treat as
// fatal.
func (r *Registry) Create() (domain.SessionID, error) {
	var id domain.SessionID
	for {
		var err error
		id, err = ident.SessionID()
		if err != nil {
			return "", err
		}
		r.mu.RLock()
		_, live := r.sessions[id]
		_, dormant := r.tombstones[id]
		r.mu.RUnlock()
		if !live && !dormant {
			break
		}
	}
	now := time.Now()
	r.mu.Lock()
	r.sessions[id] = &session{
		id:         id,
		createdAt:  now,
		lastActive: now,
		ttl:        r.ttl,
		rooms:      make(map[domain.RoomID]struct{}),
	}
	r.mu.Unlock()
	return id, nil
}

// Touch refreshes last-activity.
func (r *Registry) Touch(id domain.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.lastActive = time.Now()
	return nil
}

// Lookup returns a copy of the session record.
func (r *Registry) Lookup(id domain.SessionID) (domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrNotFound
	}
	rooms := make([]domain.RoomID, 0, len(s.rooms))
	for room := range s.rooms {
		rooms = append(rooms, room)
	}
	return domain.Session{
		ID:         s.id,
		CreatedAt:  s.createdAt,
		LastActive: s.lastActive,
		TTL:        s.ttl,
		Rooms:      rooms,
	}, nil
}

// Destroy removes the session and fires cascade hooks. Destroying an unknown
// or already-destroyed session is a no-op.
func (r *Registry) Destroy(id domain.SessionID) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(r.sessions, id)
	r.tombstones[id] = time.Now().Add(s.ttl)
	s.conn = nil
	s.rooms = nil
	r.mu.Unlock()

	r.hooksMu.Lock()
	hooks := make([]func(domain.SessionID), len(r.onDestroy))
	copy(hooks, r.onDestroy)
	r.hooksMu.Unlock()
	for _, fn := range hooks {
		fn(id)
	}
}

// Attach binds a live transport handle to the session.
func (r *Registry) Attach(id domain.SessionID, c domain.Conn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.conn = c
	s.lastActive = time.Now()
	return nil
}

// Detach drops the transport handle without destroying the session.
func (r *Registry) Detach(id domain.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.conn = nil
	}
}

// Conn returns the live transport handle, if any.
func (r *Registry) Conn(id domain.SessionID) (domain.Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok || s.conn == nil {
		return nil, false
	}
	return s.conn, true
}

// JoinedRoom records room membership on the session side so Destroy can
// report it and Lookup can list it. Called by the directory's single writer.
func (r *Registry) JoinedRoom(id domain.SessionID, room domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.rooms[room] = struct{}{}
	}
}

// LeftRoom removes the session-side membership record.
func (r *Registry) LeftRoom(id domain.SessionID, room domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		delete(s.rooms, room)
	}
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// ReapExpired destroys sessions whose TTL elapsed before now and prunes
// tombstones past their dormancy deadline. Returns the number of sessions
// destroyed.
func (r *Registry) ReapExpired(now time.Time) int {
	r.mu.Lock()
	var expired []domain.SessionID
	for id, s := range r.sessions {
		if now.After(s.lastActive.Add(s.ttl)) {
			expired = append(expired, id)
		}
	}
	for id, deadline := range r.tombstones {
		if now.After(deadline) {
			delete(r.tombstones, id)
		}
	}
	r.mu.Unlock()

	for _, id := range expired {
		r.Destroy(id)
	}
	return len(expired)
}

var _ domain.SessionRegistry = (*Registry)(nil)
