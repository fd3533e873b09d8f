package gateway

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"vanish/internal/domain"
)

const writeWait = 10 * time.Second

// errSlowConsumer is returned by Push when the outbound buffer is full or the
// connection is closing. The relay treats it as recipient-offline.
var errSlowConsumer = errors.New("outbound buffer full")

// client is the per-connection transport handle. Outbound frames funnel
// through a buffered channel drained by a single writer goroutine, so pushes
// never block on the peer's I/O and frames from one sender keep their order.
type client struct {
	session domain.SessionID
	ws      *websocket.Conn
	out     chan ServerFrame

	closeOnce sync.Once
	closed    chan struct{}
}

func newClient(session domain.SessionID, ws *websocket.Conn, buffer int) *client {
	return &client{
		session: session,
		ws:      ws,
		out:     make(chan ServerFrame, buffer),
		closed:  make(chan struct{}),
	}
}

// Push implements domain.Conn.
func (c *client) Push(env domain.Envelope) error {
	return c.enqueue(envelopeFrame(env))
}

// enqueue queues a frame for the writer goroutine without blocking.
func (c *client) enqueue(f ServerFrame) error {
	select {
	case <-c.closed:
		return errSlowConsumer
	case c.out <- f:
		return nil
	default:
		return errSlowConsumer
	}
}

// writeLoop drains the outbound channel onto the socket. Exits on close or
// write failure; the read loop notices the dead socket and tears the session
// down.
func (c *client) writeLoop() {
	for {
		select {
		case <-c.closed:
			return
		case f := <-c.out:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteJSON(f); err != nil {
				c.close()
				return
			}
		}
	}
}

// close shuts the outbound path and the socket. Idempotent.
func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		c.ws.Close()
	})
}

var _ domain.Conn = (*client)(nil)
