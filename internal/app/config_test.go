package app_test

import (
	"testing"
	"time"

	"vanish/internal/app"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := app.FromEnv()

	if cfg.Addr != ":8080" {
		t.Fatalf("Addr = %q", cfg.Addr)
	}
	if cfg.SessionTTL != 5*time.Minute {
		t.Fatalf("SessionTTL = %v", cfg.SessionTTL)
	}
	if cfg.QueueCapacity != 32 {
		t.Fatalf("QueueCapacity = %d", cfg.QueueCapacity)
	}
	if cfg.RedisAddr != "" {
		t.Fatalf("RedisAddr = %q, want memory store default", cfg.RedisAddr)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("VANISH_ADDR", ":9999")
	t.Setenv("VANISH_ENVELOPE_TTL", "5s")
	t.Setenv("VANISH_QUEUE_CAP", "4")
	t.Setenv("VANISH_MAX_PAYLOAD", "2048")

	cfg := app.FromEnv()
	if cfg.Addr != ":9999" {
		t.Fatalf("Addr = %q", cfg.Addr)
	}
	if cfg.EnvelopeTTL != 5*time.Second {
		t.Fatalf("EnvelopeTTL = %v", cfg.EnvelopeTTL)
	}
	if cfg.QueueCapacity != 4 {
		t.Fatalf("QueueCapacity = %d", cfg.QueueCapacity)
	}
	if cfg.MaxPayload != 2048 {
		t.Fatalf("MaxPayload = %d", cfg.MaxPayload)
	}
}

func TestFromEnv_IgnoresUnparsable(t *testing.T) {
	t.Setenv("VANISH_SWEEP_INTERVAL", "sometimes")
	t.Setenv("VANISH_QUEUE_CAP", "many")

	cfg := app.FromEnv()
	if cfg.SweepInterval != 2*time.Second {
		t.Fatalf("SweepInterval = %v, want default", cfg.SweepInterval)
	}
	if cfg.QueueCapacity != 32 {
		t.Fatalf("QueueCapacity = %d, want default", cfg.QueueCapacity)
	}
}
