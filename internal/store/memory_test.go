package store_test

import (
	"fmt"
	"testing"
	"time"

	"vanish/internal/domain"
	"vanish/internal/store"
)

func env(id string, expiresAt time.Time) domain.Envelope {
	return domain.Envelope{
		ID:        id,
		From:      "sender",
		ToSession: "rcpt",
		Payload:   []byte("opaque"),
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}
}

func TestDrain_FIFO(t *testing.T) {
	m := store.NewMemory(8)
	live := time.Now().Add(time.Minute)
	for i := 0; i < 3; i++ {
		m.Enqueue("rcpt", env(fmt.Sprintf("e%d", i), live))
	}

	out := m.Drain("rcpt")
	if len(out) != 3 {
		t.Fatalf("drained %d, want 3", len(out))
	}
	for i, e := range out {
		if want := fmt.Sprintf("e%d", i); e.ID != want {
			t.Fatalf("position %d: got %s, want %s", i, e.ID, want)
		}
	}
	if n := m.Len("rcpt"); n != 0 {
		t.Fatalf("queue not emptied, len %d", n)
	}
}

func TestEnqueue_OverflowDropsOldest(t *testing.T) {
	const capacity = 4
	m := store.NewMemory(capacity)
	live := time.Now().Add(time.Minute)
	for i := 0; i < capacity+1; i++ {
		m.Enqueue("rcpt", env(fmt.Sprintf("e%d", i), live))
	}

	out := m.Drain("rcpt")
	if len(out) != capacity {
		t.Fatalf("kept %d, want %d", len(out), capacity)
	}
	// e0 was dropped; the newest capacity envelopes remain in order.
	if out[0].ID != "e1" || out[len(out)-1].ID != fmt.Sprintf("e%d", capacity) {
		t.Fatalf("window = %s..%s, want e1..e%d", out[0].ID, out[len(out)-1].ID, capacity)
	}
}

func TestDrain_DiscardsExpired(t *testing.T) {
	m := store.NewMemory(8)
	m.Enqueue("rcpt", env("dead", time.Now().Add(-time.Second)))
	m.Enqueue("rcpt", env("live", time.Now().Add(time.Minute)))

	out := m.Drain("rcpt")
	if len(out) != 1 || out[0].ID != "live" {
		t.Fatalf("drained %v, want just live", out)
	}
}

func TestDrop_ClearsQueue(t *testing.T) {
	m := store.NewMemory(8)
	m.Enqueue("rcpt", env("e0", time.Now().Add(time.Minute)))
	m.Drop("rcpt")
	if out := m.Drain("rcpt"); len(out) != 0 {
		t.Fatalf("dropped queue still drained %v", out)
	}
}

func TestReapExpired_CountsDiscarded(t *testing.T) {
	m := store.NewMemory(8)
	deadline := time.Now().Add(time.Second)
	m.Enqueue("a", env("a0", deadline))
	m.Enqueue("b", env("b0", deadline))
	m.Enqueue("b", env("b1", time.Now().Add(time.Hour)))

	if n := m.ReapExpired(time.Now().Add(2 * time.Second)); n != 2 {
		t.Fatalf("reaped %d, want 2", n)
	}
	if out := m.Drain("b"); len(out) != 1 || out[0].ID != "b1" {
		t.Fatalf("surviving queue = %v, want just b1", out)
	}
}
