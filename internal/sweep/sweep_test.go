package sweep_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"vanish/internal/directory"
	"vanish/internal/domain"
	"vanish/internal/registry"
	"vanish/internal/relay"
	"vanish/internal/store"
	"vanish/internal/sweep"
)

func newWorld(t *testing.T, sessionTTL time.Duration) (*registry.Registry, *directory.Directory, *relay.Relay, *sweep.Sweeper) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	reg := registry.New(sessionTTL)
	dir := directory.New(time.Second, reg)
	rly := relay.New(reg, dir, store.NewMemory(8), log)
	reg.OnDestroy(dir.DropMember)
	reg.OnDestroy(rly.DropPending)
	s := sweep.New(10*time.Millisecond, reg, dir, rly, log)
	return reg, dir, rly, s
}

func TestSweep_ReapsAllThreeStructures(t *testing.T) {
	reg, dir, rly, s := newWorld(t, time.Minute)

	sess, err := reg.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	room, err := dir.Create(sess, time.Minute, 4)
	if err != nil {
		t.Fatalf("Create room: %v", err)
	}
	offline, err := reg.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	now := time.Now()
	if err := rly.Send(domain.Envelope{
		ID:        "e0",
		From:      sess,
		ToSession: offline,
		Payload:   []byte("x"),
		CreatedAt: now,
		ExpiresAt: now.Add(time.Second),
	}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	s.Sweep(now.Add(2 * time.Minute))

	if _, err := reg.Lookup(sess); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("session survived sweep: %v", err)
	}
	if _, err := dir.Members(room); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("room survived sweep: %v", err)
	}
	// The envelope queue went with the destroyed recipient session; a second
	// sweep finds nothing left.
	s.Sweep(now.Add(3 * time.Minute))
}

func TestSweep_IsIdempotent(t *testing.T) {
	reg, _, _, s := newWorld(t, time.Minute)
	if _, err := reg.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}

	deadline := time.Now().Add(2 * time.Minute)
	s.Sweep(deadline)
	s.Sweep(deadline)

	if n := reg.Len(); n != 0 {
		t.Fatalf("%d sessions after sweeps, want 0", n)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	_, _, _, s := newWorld(t, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on cancel")
	}
}
