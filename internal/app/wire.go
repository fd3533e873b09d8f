package app

import (
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"vanish/internal/directory"
	"vanish/internal/domain"
	"vanish/internal/gateway"
	"vanish/internal/registry"
	"vanish/internal/relay"
	"vanish/internal/store"
	"vanish/internal/sweep"
)

// Wire bundles the constructed components for commands to use.
type Wire struct {
	Config   Config
	Log      *logrus.Logger
	Registry domain.SessionRegistry
	Rooms    domain.RoomDirectory
	Pending  domain.PendingStore
	Relay    domain.Relay
	Sweeper  *sweep.Sweeper
	Gateway  *gateway.Gateway
}

// NewWire constructs the dependency graph from cfg.
//
// Destruction cascades are hooked up here: destroying a session drops its
// room memberships and its pending queue, so no component holds references
// into a dead identity.
func NewWire(cfg Config) *Wire {
	log := newLogger(cfg.LogLevel)

	reg := registry.New(cfg.SessionTTL)
	dir := directory.New(cfg.RoomGrace, reg)

	var pending domain.PendingStore
	if cfg.RedisAddr != "" {
		rdb := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		pending = store.NewRedis(rdb, cfg.QueueCapacity, log)
		log.WithField("addr", cfg.RedisAddr).Info("using redis pending store")
	} else {
		pending = store.NewMemory(cfg.QueueCapacity)
	}

	rly := relay.New(reg, dir, pending, log)

	reg.OnDestroy(dir.DropMember)
	reg.OnDestroy(rly.DropPending)

	sweeper := sweep.New(cfg.SweepInterval, reg, dir, rly, log)

	gw := gateway.New(gateway.Options{
		MaxPayload:  cfg.MaxPayload,
		EnvelopeTTL: cfg.EnvelopeTTL,
		RoomTTL:     cfg.RoomTTL,
		RoomMax:     cfg.RoomMaxMembers,
		SendBuffer:  cfg.QueueCapacity,
	}, reg, dir, rly, log)

	return &Wire{
		Config:   cfg,
		Log:      log,
		Registry: reg,
		Rooms:    dir,
		Pending:  pending,
		Relay:    rly,
		Sweeper:  sweeper,
		Gateway:  gw,
	}
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(lvl)
	}
	return log
}
