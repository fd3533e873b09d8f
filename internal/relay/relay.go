package relay

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"vanish/internal/domain"
)

// Relay wires the registry, directory and pending store into the send path.
type Relay struct {
	registry domain.SessionRegistry
	rooms    domain.RoomDirectory
	pending  domain.PendingStore
	log      *logrus.Logger
}

// New constructs a Relay.
func New(registry domain.SessionRegistry, rooms domain.RoomDirectory, pending domain.PendingStore, log *logrus.Logger) *Relay {
	return &Relay{
		registry: registry,
		rooms:    rooms,
		pending:  pending,
		log:      log,
	}
}

// Send routes env to its recipient or room.
//
// Steps:
//  1. Reject malformed envelopes before any fan-out.
//  2. Reject senders that are not live sessions.
//  3. Resolve the recipient set (room membership snapshotted here).
//  4. Push to live connections; park the rest in pending queues.
//
// Individual delivery outcomes do not affect the result: once resolution
// completed, Send reports success.
func (r *Relay) Send(env domain.Envelope) error {
	if !env.Valid() {
		return domain.ErrInvalidEnvelope
	}
	if _, err := r.registry.Lookup(env.From); err != nil {
		return domain.ErrUnauthorized
	}

	var recipients []domain.SessionID
	if env.ToSession != "" {
		if _, err := r.registry.Lookup(env.ToSession); err != nil {
			return domain.ErrNotFound
		}
		recipients = []domain.SessionID{env.ToSession}
	} else {
		members, err := r.rooms.Members(env.ToRoom)
		if err != nil {
			return err
		}
		recipients = members[:0]
		for _, id := range members {
			if id != env.From {
				recipients = append(recipients, id)
			}
		}
	}

	for _, id := range recipients {
		r.deliver(id, env)
	}
	return nil
}

// deliver pushes env to one recipient, falling back to the pending queue on a
// missing or refusing connection. A recipient whose session vanished between
// snapshot and delivery is skipped outright.
func (r *Relay) deliver(id domain.SessionID, env domain.Envelope) {
	conn, ok := r.registry.Conn(id)
	if ok {
		if err := conn.Push(env); err == nil {
			return // delivered; nothing is kept
		}
		// Push refused: treat as offline, queue once.
	}
	if _, err := r.registry.Lookup(id); err != nil {
		return
	}
	r.pending.Enqueue(id, env)
}

// FlushPending delivers the still-live queued envelopes for id in FIFO order.
// Called when a connection attaches. Envelopes the connection refuses go back
// in the queue. Returns the number delivered.
func (r *Relay) FlushPending(id domain.SessionID) int {
	queued := r.pending.Drain(id)
	if len(queued) == 0 {
		return 0
	}
	conn, ok := r.registry.Conn(id)
	if !ok {
		for _, env := range queued {
			r.pending.Enqueue(id, env)
		}
		return 0
	}
	delivered := 0
	for i, env := range queued {
		if err := conn.Push(env); err != nil {
			for _, rest := range queued[i:] {
				r.pending.Enqueue(id, rest)
			}
			break
		}
		delivered++
	}
	if delivered > 0 {
		r.log.WithFields(logrus.Fields{
			"session": id,
			"count":   delivered,
		}).Debug("flushed pending envelopes")
	}
	return delivered
}

// DropPending discards the pending queue for id. Cascade target for session
// destruction.
func (r *Relay) DropPending(id domain.SessionID) {
	r.pending.Drop(id)
}

// ReapExpired discards pending envelopes past their delivery TTL.
func (r *Relay) ReapExpired(now time.Time) int {
	return r.pending.ReapExpired(now)
}

// IsRejection reports whether err belongs to the taxonomy surfaced to the
// sending client, as opposed to an internal failure.
func IsRejection(err error) bool {
	return errors.Is(err, domain.ErrInvalidEnvelope) ||
		errors.Is(err, domain.ErrUnauthorized) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrRoomExpired)
}

var _ domain.Relay = (*Relay)(nil)
