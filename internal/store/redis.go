package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"vanish/internal/domain"
)

const (
	queuePrefix    = "pending:queue:" // pending:queue:{session} - list of envelope IDs
	envelopePrefix = "pending:env:"   // pending:env:{id} - envelope body, TTL-bound
)

// Redis holds pending envelopes in Redis. Envelope bodies are stored under a
// key whose TTL is the envelope's own delivery TTL, so Redis enforces expiry
// on its side; queue entries pointing at a lapsed body are dropped lazily at
// drain. No key outlives the delivery window it belongs to.
type Redis struct {
	rdb      *redis.Client
	ctx      context.Context
	capacity int
	log      *logrus.Logger
}

// NewRedis returns a Redis-backed pending store.
func NewRedis(rdb *redis.Client, capacity int, log *logrus.Logger) *Redis {
	if capacity < 1 {
		capacity = 1
	}
	return &Redis{
		rdb:      rdb,
		ctx:      context.Background(),
		capacity: capacity,
		log:      log,
	}
}

// Enqueue parks env for id. On overflow the oldest queued envelope is popped
// and its body deleted.
func (s *Redis) Enqueue(id domain.SessionID, env domain.Envelope) {
	body, err := json.Marshal(env)
	if err != nil {
		s.log.WithError(err).Warn("pending: marshal envelope")
		return
	}
	ttl := time.Until(env.ExpiresAt)
	if ttl <= 0 {
		return
	}
	envKey := envelopePrefix + env.ID
	queueKey := queuePrefix + string(id)
	if err := s.rdb.Set(s.ctx, envKey, body, ttl).Err(); err != nil {
		s.log.WithError(err).Warn("pending: store envelope")
		return
	}
	if err := s.rdb.RPush(s.ctx, queueKey, env.ID).Err(); err != nil {
		s.log.WithError(err).Warn("pending: push queue")
		s.rdb.Del(s.ctx, envKey)
		return
	}
	// The queue key itself must not outlive its longest-lived envelope.
	s.rdb.Expire(s.ctx, queueKey, ttl)

	for {
		n, err := s.rdb.LLen(s.ctx, queueKey).Result()
		if err != nil || n <= int64(s.capacity) {
			return
		}
		oldest, err := s.rdb.LPop(s.ctx, queueKey).Result()
		if err != nil {
			return
		}
		s.rdb.Del(s.ctx, envelopePrefix+oldest)
	}
}

// Drain removes and returns the still-live envelopes queued for id in FIFO
// order. Entries whose body key already lapsed are skipped.
func (s *Redis) Drain(id domain.SessionID) []domain.Envelope {
	queueKey := queuePrefix + string(id)
	ids, err := s.rdb.LRange(s.ctx, queueKey, 0, -1).Result()
	if err != nil {
		s.log.WithError(err).Warn("pending: read queue")
		return nil
	}
	s.rdb.Del(s.ctx, queueKey)

	now := time.Now()
	var out []domain.Envelope
	for _, envID := range ids {
		envKey := envelopePrefix + envID
		body, err := s.rdb.Get(s.ctx, envKey).Result()
		if err == redis.Nil {
			continue // expired under us
		}
		if err != nil {
			s.log.WithError(err).Warn("pending: read envelope")
			continue
		}
		s.rdb.Del(s.ctx, envKey)
		var env domain.Envelope
		if err := json.Unmarshal([]byte(body), &env); err != nil {
			continue
		}
		if env.Expired(now) {
			continue
		}
		out = append(out, env)
	}
	return out
}

// Drop discards everything queued for id.
func (s *Redis) Drop(id domain.SessionID) {
	queueKey := queuePrefix + string(id)
	ids, err := s.rdb.LRange(s.ctx, queueKey, 0, -1).Result()
	if err == nil {
		for _, envID := range ids {
			s.rdb.Del(s.ctx, envelopePrefix+envID)
		}
	}
	s.rdb.Del(s.ctx, queueKey)
}

// Len reports the number of queue entries for id, including entries whose
// body may have lapsed.
func (s *Redis) Len(id domain.SessionID) int {
	n, err := s.rdb.LLen(s.ctx, queuePrefix+string(id)).Result()
	if err != nil {
		return 0
	}
	return int(n)
}

// ReapExpired is a no-op beyond what Redis key TTLs already enforce.
func (s *Redis) ReapExpired(time.Time) int { return 0 }

var _ domain.PendingStore = (*Redis)(nil)
