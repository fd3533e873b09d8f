package app

import (
	"os"
	"strconv"
	"time"
)

// Config holds runtime options. Everything is tunable through VANISH_*
// environment variables; defaults favour short lifetimes.
type Config struct {
	Addr string // listen address, e.g. ":8080"

	SessionTTL     time.Duration // idle session lifetime
	RoomTTL        time.Duration // default room lifetime
	RoomGrace      time.Duration // how long an empty room survives
	RoomMaxMembers int           // default member cap for new rooms
	EnvelopeTTL    time.Duration // default delivery window for envelopes
	QueueCapacity  int           // pending envelopes kept per session
	SweepInterval  time.Duration // expiry scheduler period
	MaxPayload     int64         // payload size bound, bytes

	RedisAddr string // optional; empty selects the in-memory pending store
	LogLevel  string
}

// FromEnv loads Config from the environment, applying defaults for anything
// unset or unparsable.
func FromEnv() Config {
	return Config{
		Addr:           envString("VANISH_ADDR", ":8080"),
		SessionTTL:     envDuration("VANISH_SESSION_TTL", 5*time.Minute),
		RoomTTL:        envDuration("VANISH_ROOM_TTL", 10*time.Minute),
		RoomGrace:      envDuration("VANISH_ROOM_GRACE", 30*time.Second),
		RoomMaxMembers: envInt("VANISH_ROOM_MAX_MEMBERS", 16),
		EnvelopeTTL:    envDuration("VANISH_ENVELOPE_TTL", 30*time.Second),
		QueueCapacity:  envInt("VANISH_QUEUE_CAP", 32),
		SweepInterval:  envDuration("VANISH_SWEEP_INTERVAL", 2*time.Second),
		MaxPayload:     int64(envInt("VANISH_MAX_PAYLOAD", 64*1024)),
		RedisAddr:      envString("VANISH_REDIS_ADDR", ""),
		LogLevel:       envString("VANISH_LOG_LEVEL", "info"),
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
