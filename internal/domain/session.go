package domain

import "time"

// SessionID is an opaque, unguessable token minted server-side. It is never
// reused within its dormancy window.
type SessionID string

// Session is an anonymous, ephemeral client identity. The connection handle
// is owned by the gateway; the registry only holds a weak reference to it.
type Session struct {
	ID         SessionID
	CreatedAt  time.Time
	LastActive time.Time
	TTL        time.Duration
	Rooms      []RoomID
}

// ExpiresAt is the instant the session becomes eligible for reaping absent
// further activity.
func (s Session) ExpiresAt() time.Time {
	return s.LastActive.Add(s.TTL)
}

// Expired reports whether the session TTL has elapsed at now.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt())
}
