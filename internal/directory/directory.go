package directory

import (
	"sync"
	"time"

	"vanish/internal/domain"
	"vanish/internal/ident"
)

type room struct {
	id         domain.RoomID
	createdAt  time.Time
	ttl        time.Duration
	maxMembers int
	members    map[domain.SessionID]struct{}
	emptySince time.Time
}

func (r *room) expired(now time.Time) bool {
	return now.After(r.createdAt.Add(r.ttl))
}

// MembershipListener is notified of join/leave so the registry can keep its
// session-side room sets in step. Nil listeners are allowed.
type MembershipListener interface {
	JoinedRoom(id domain.SessionID, room domain.RoomID)
	LeftRoom(id domain.SessionID, room domain.RoomID)
}

// Directory is the single-writer owner of room state.
type Directory struct {
	mu       sync.RWMutex
	rooms    map[domain.RoomID]*room
	grace    time.Duration
	listener MembershipListener
}

// New returns a Directory that reaps empty rooms after grace.
func New(grace time.Duration, listener MembershipListener) *Directory {
	return &Directory{
		rooms:    make(map[domain.RoomID]*room),
		grace:    grace,
		listener: listener,
	}
}

// Create registers a room. A non-empty owner is enrolled as the first member.
func (d *Directory) Create(owner domain.SessionID, ttl time.Duration, maxMembers int) (domain.RoomID, error) {
	if ttl <= 0 || maxMembers < 1 {
		return "", domain.ErrInvalidParameter
	}
	id := ident.RoomID()
	now := time.Now()
	r := &room{
		id:         id,
		createdAt:  now,
		ttl:        ttl,
		maxMembers: maxMembers,
		members:    make(map[domain.SessionID]struct{}),
		emptySince: now,
	}
	if owner != "" {
		r.members[owner] = struct{}{}
	}
	d.mu.Lock()
	d.rooms[id] = r
	d.mu.Unlock()
	if owner != "" && d.listener != nil {
		d.listener.JoinedRoom(owner, id)
	}
	return id, nil
}

// Join adds a session to the room.
func (d *Directory) Join(roomID domain.RoomID, id domain.SessionID) error {
	d.mu.Lock()
	r, ok := d.rooms[roomID]
	if !ok {
		d.mu.Unlock()
		return domain.ErrNotFound
	}
	if r.expired(time.Now()) {
		d.mu.Unlock()
		return domain.ErrRoomExpired
	}
	if _, member := r.members[id]; member {
		d.mu.Unlock()
		return nil
	}
	if len(r.members) >= r.maxMembers {
		d.mu.Unlock()
		return domain.ErrRoomFull
	}
	r.members[id] = struct{}{}
	d.mu.Unlock()

	if d.listener != nil {
		d.listener.JoinedRoom(id, roomID)
	}
	return nil
}

// Leave removes a session from the room. Leaving a room the session is not in,
// or a room that no longer exists, is a no-op.
func (d *Directory) Leave(roomID domain.RoomID, id domain.SessionID) {
	d.mu.Lock()
	r, ok := d.rooms[roomID]
	if !ok {
		d.mu.Unlock()
		return
	}
	if _, member := r.members[id]; !member {
		d.mu.Unlock()
		return
	}
	delete(r.members, id)
	if len(r.members) == 0 {
		r.emptySince = time.Now()
	}
	d.mu.Unlock()

	if d.listener != nil {
		d.listener.LeftRoom(id, roomID)
	}
}

// Members returns a snapshot of the membership set, taken atomically. The
// relay fans out against this snapshot; later joins do not widen an in-flight
// delivery.
func (d *Directory) Members(roomID domain.RoomID) ([]domain.SessionID, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	r, ok := d.rooms[roomID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if r.expired(time.Now()) {
		return nil, domain.ErrRoomExpired
	}
	out := make([]domain.SessionID, 0, len(r.members))
	for id := range r.members {
		out = append(out, id)
	}
	return out, nil
}

// DropMember removes the session from every room. Cascade target for session
// destruction.
func (d *Directory) DropMember(id domain.SessionID) {
	now := time.Now()
	d.mu.Lock()
	var left []domain.RoomID
	for _, r := range d.rooms {
		if _, member := r.members[id]; !member {
			continue
		}
		delete(r.members, id)
		if len(r.members) == 0 {
			r.emptySince = now
		}
		left = append(left, r.id)
	}
	d.mu.Unlock()

	if d.listener != nil {
		for _, roomID := range left {
			d.listener.LeftRoom(id, roomID)
		}
	}
}

// Len reports the number of live rooms.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.rooms)
}

// ReapExpired removes rooms whose TTL elapsed or whose membership has been
// empty past the grace period. Returns the number of rooms removed.
func (d *Directory) ReapExpired(now time.Time) int {
	type eviction struct {
		member domain.SessionID
		room   domain.RoomID
	}
	d.mu.Lock()
	reaped := 0
	var evicted []eviction
	for id, r := range d.rooms {
		if r.expired(now) || (len(r.members) == 0 && now.After(r.emptySince.Add(d.grace))) {
			for member := range r.members {
				evicted = append(evicted, eviction{member, id})
			}
			delete(d.rooms, id)
			reaped++
		}
	}
	d.mu.Unlock()

	if d.listener != nil {
		for _, e := range evicted {
			d.listener.LeftRoom(e.member, e.room)
		}
	}
	return reaped
}

var _ domain.RoomDirectory = (*Directory)(nil)
