package sweep

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"vanish/internal/domain"
)

// Sweeper periodically reaps expired sessions, rooms and pending envelopes.
type Sweeper struct {
	interval time.Duration
	registry domain.SessionRegistry
	rooms    domain.RoomDirectory
	relay    domain.Relay
	log      *logrus.Logger
}

// New constructs a Sweeper.
func New(interval time.Duration, registry domain.SessionRegistry, rooms domain.RoomDirectory, relay domain.Relay, log *logrus.Logger) *Sweeper {
	return &Sweeper{
		interval: interval,
		registry: registry,
		rooms:    rooms,
		relay:    relay,
		log:      log,
	}
}

// Run sweeps until ctx is cancelled. Blocks; callers run it in a goroutine.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Sweep(now)
		}
	}
}

// Sweep performs one reap pass at the given instant.
func (s *Sweeper) Sweep(now time.Time) {
	sessions := s.registry.ReapExpired(now)
	rooms := s.rooms.ReapExpired(now)
	envelopes := s.relay.ReapExpired(now)
	if sessions+rooms+envelopes > 0 {
		s.log.WithFields(logrus.Fields{
			"sessions":  sessions,
			"rooms":     rooms,
			"envelopes": envelopes,
		}).Debug("sweep reaped expired state")
	}
}
