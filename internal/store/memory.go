package store

import (
	"sync"
	"time"

	"vanish/internal/domain"
)

// Memory is the in-process pending store.
type Memory struct {
	mu       sync.Mutex
	capacity int
	queues   map[domain.SessionID][]domain.Envelope
}

// NewMemory returns a Memory store holding at most capacity envelopes per
// session.
func NewMemory(capacity int) *Memory {
	if capacity < 1 {
		capacity = 1
	}
	return &Memory{
		capacity: capacity,
		queues:   make(map[domain.SessionID][]domain.Envelope),
	}
}

// Enqueue parks env for id, dropping the oldest pending envelope if the queue
// is full.
func (m *Memory) Enqueue(id domain.SessionID, env domain.Envelope) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := m.queues[id]
	if len(q) >= m.capacity {
		q = q[1:]
	}
	m.queues[id] = append(q, env)
}

// Drain removes and returns the still-live envelopes queued for id, in FIFO
// order. Expired envelopes are discarded on the way out.
func (m *Memory) Drain(id domain.SessionID) []domain.Envelope {
	m.mu.Lock()
	q := m.queues[id]
	delete(m.queues, id)
	m.mu.Unlock()

	now := time.Now()
	out := q[:0]
	for _, env := range q {
		if !env.Expired(now) {
			out = append(out, env)
		}
	}
	return out
}

// Drop discards everything queued for id.
func (m *Memory) Drop(id domain.SessionID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.queues, id)
}

// Len reports the number of envelopes queued for id.
func (m *Memory) Len(id domain.SessionID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queues[id])
}

// ReapExpired discards envelopes past their delivery TTL. Returns the number
// discarded.
func (m *Memory) ReapExpired(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	reaped := 0
	for id, q := range m.queues {
		kept := q[:0]
		for _, env := range q {
			if env.Expired(now) {
				reaped++
				continue
			}
			kept = append(kept, env)
		}
		if len(kept) == 0 {
			delete(m.queues, id)
		} else {
			m.queues[id] = kept
		}
	}
	return reaped
}

var _ domain.PendingStore = (*Memory)(nil)
