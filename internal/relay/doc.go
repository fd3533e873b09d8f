// Package relay routes opaque envelopes between sessions and rooms.
//
// Send resolves its recipient set once, at call time: a single session, or an
// atomic snapshot of room membership with the sender excluded. Recipients
// with a live connection get the envelope pushed immediately; the rest have
// it parked in a bounded per-session pending queue until they attach or the
// delivery TTL lapses. A recipient resolved from a since-destroyed session is
// treated as offline, never as an error.
//
// Envelope state moves one way, pending to delivered or pending to expired,
// through a single mutation point (the pending store), which is what makes
// delivery at-most-once. Partial fan-out failure is not an error; Send
// succeeds once resolution completed.
package relay
