package gateway

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"vanish/internal/domain"
	"vanish/internal/ident"
)

// Options bound the gateway's transport behaviour.
type Options struct {
	MaxPayload  int64         // opaque payload size bound, bytes
	EnvelopeTTL time.Duration // default delivery TTL for sends
	RoomTTL     time.Duration // default TTL for admin-created rooms
	RoomMax     int           // default member cap for admin-created rooms
	SendBuffer  int           // per-connection outbound buffer
}

// Gateway terminates WebSocket connections and the admin HTTP surface.
type Gateway struct {
	opts     Options
	registry domain.SessionRegistry
	rooms    domain.RoomDirectory
	relay    domain.Relay
	upgrader websocket.Upgrader
	log      *logrus.Logger
	started  time.Time
}

// New constructs a Gateway.
func New(opts Options, registry domain.SessionRegistry, rooms domain.RoomDirectory, relay domain.Relay, log *logrus.Logger) *Gateway {
	if opts.SendBuffer < 1 {
		opts.SendBuffer = 32
	}
	return &Gateway{
		opts:     opts,
		registry: registry,
		rooms:    rooms,
		relay:    relay,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Anonymous by design: no origin policy, no credentials.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log:     log,
		started: time.Now(),
	}
}

// Handler returns the gateway's HTTP routes.
func (g *Gateway) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/ws", g.handleWS)
	r.HandleFunc("/healthz", g.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/admin/rooms", g.handleCreateRoom).Methods(http.MethodPost)
	return r
}

// handleWS upgrades the connection, mints a session, and pumps frames until
// disconnect. Disconnect destroys the session immediately; the registry
// cascade clears room memberships and pending envelopes.
func (g *Gateway) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Debug("websocket upgrade failed")
		return
	}

	session, err := g.registry.Create()
	if err != nil {
		// Entropy failure is the one unrecoverable error class.
		g.log.WithError(err).Fatal("cannot mint session identifier")
		return
	}

	c := newClient(session, ws, g.opts.SendBuffer)
	go c.writeLoop()

	if err := g.registry.Attach(session, c); err != nil {
		c.close()
		return
	}
	g.relay.FlushPending(session)

	g.log.WithField("session", session).Info("session connected")
	c.enqueue(ServerFrame{Type: frameWelcome, Session: string(session)})

	// Base64 roughly 4/3-inflates the payload; leave room for frame framing.
	ws.SetReadLimit(g.opts.MaxPayload*2 + 1024)

	for {
		var f Frame
		if err := ws.ReadJSON(&f); err != nil {
			break
		}
		g.registry.Touch(session)
		g.dispatch(c, session, f)
	}

	g.registry.Destroy(session)
	c.close()
	g.log.WithField("session", session).Info("session destroyed")
}

func (g *Gateway) dispatch(c *client, session domain.SessionID, f Frame) {
	switch f.Type {
	case framePing:
		c.enqueue(ServerFrame{Type: framePong})

	case frameJoin:
		if err := g.rooms.Join(domain.RoomID(f.Room), session); err != nil {
			c.enqueue(ServerFrame{Type: frameError, Code: errorCode(err), Room: f.Room})
			return
		}
		c.enqueue(ServerFrame{Type: frameAck, Room: f.Room})

	case frameLeave:
		g.rooms.Leave(domain.RoomID(f.Room), session)
		c.enqueue(ServerFrame{Type: frameAck, Room: f.Room})

	case frameSend:
		g.handleSend(c, session, f)

	default:
		c.enqueue(ServerFrame{Type: frameError, Code: "invalid_parameter"})
	}
}

func (g *Gateway) handleSend(c *client, session domain.SessionID, f Frame) {
	if int64(len(f.Payload)) > g.opts.MaxPayload {
		c.enqueue(ServerFrame{Type: frameError, Code: errorCode(domain.ErrPayloadTooLarge)})
		return
	}

	ttl := g.opts.EnvelopeTTL
	if f.TTLMillis > 0 {
		if req := time.Duration(f.TTLMillis) * time.Millisecond; req < ttl {
			ttl = req
		}
	}

	now := time.Now()
	env := domain.Envelope{
		ID:        ident.EnvelopeID(),
		From:      session,
		ToSession: domain.SessionID(f.To),
		ToRoom:    domain.RoomID(f.Room),
		Payload:   f.Payload,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	if err := g.relay.Send(env); err != nil {
		c.enqueue(ServerFrame{Type: frameError, Code: errorCode(err), ID: env.ID})
		return
	}
	c.enqueue(ServerFrame{Type: frameAck, ID: env.ID})
}
