package domain

import "time"

// DeliveryState tracks an envelope through its one-way lifecycle. Both
// Delivered and Expired are terminal; an envelope never leaves a terminal
// state, which is what gives the relay its at-most-once guarantee.
type DeliveryState int

const (
	Pending DeliveryState = iota
	Delivered
	Expired
)

// Envelope is the unit of routed data: an opaque ciphertext blob addressed to
// a single session or to a room. The relay forwards Payload byte-for-byte and
// never parses it.
type Envelope struct {
	ID        string    `json:"id"`
	From      SessionID `json:"from"`
	ToSession SessionID `json:"to,omitempty"`
	ToRoom    RoomID    `json:"room,omitempty"`
	Payload   []byte    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid reports whether the envelope names a sender and exactly one recipient.
func (e Envelope) Valid() bool {
	if e.From == "" {
		return false
	}
	return (e.ToSession != "") != (e.ToRoom != "")
}

// Expired reports whether the delivery TTL has elapsed at now.
func (e Envelope) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}
