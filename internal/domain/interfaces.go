package domain

import "time"

// Conn is a live transport handle. Implementations belong to the gateway;
// Push must not block on the peer's I/O — a handle that cannot accept the
// envelope immediately returns an error and the relay treats the recipient
// as offline.
type Conn interface {
	Push(env Envelope) error
}

// SessionRegistry owns all Session records. Connection attachment is separate
// from session lifetime so the relay can distinguish "live" from "registered
// but unreachable".
type SessionRegistry interface {
	Create() (SessionID, error)
	Touch(id SessionID) error
	Lookup(id SessionID) (Session, error)
	Destroy(id SessionID)

	Attach(id SessionID, c Conn) error
	Detach(id SessionID)
	Conn(id SessionID) (Conn, bool)

	Len() int
	ReapExpired(now time.Time) int
}

// RoomDirectory owns all Room records and holds non-owning session
// identifiers into the registry.
type RoomDirectory interface {
	Create(owner SessionID, ttl time.Duration, maxMembers int) (RoomID, error)
	Join(room RoomID, id SessionID) error
	Leave(room RoomID, id SessionID)
	Members(room RoomID) ([]SessionID, error)
	DropMember(id SessionID)

	Len() int
	ReapExpired(now time.Time) int
}

// Relay routes envelopes. Send resolves recipients at call time and either
// pushes immediately or parks the envelope in a bounded pending queue.
type Relay interface {
	Send(env Envelope) error
	FlushPending(id SessionID) int
	DropPending(id SessionID)
	ReapExpired(now time.Time) int
}

// PendingStore holds envelopes for recipients without a live connection,
// bounded per session with drop-oldest overflow. Implementations must not
// retain envelopes past their delivery TTL.
type PendingStore interface {
	Enqueue(id SessionID, env Envelope)
	Drain(id SessionID) []Envelope
	Drop(id SessionID)
	Len(id SessionID) int
	ReapExpired(now time.Time) int
}
