package domain

import "time"

// RoomID is an opaque room token.
type RoomID string

// Room is a temporary set of member sessions with an expiry. Member order is
// not significant.
type Room struct {
	ID         RoomID
	CreatedAt  time.Time
	TTL        time.Duration
	MaxMembers int
	Members    []SessionID
}

// Expired reports whether the room TTL has elapsed at now.
func (r Room) Expired(now time.Time) bool {
	return now.After(r.CreatedAt.Add(r.TTL))
}
