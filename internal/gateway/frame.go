package gateway

import (
	"errors"

	"vanish/internal/domain"
)

// Frame is a client-to-server message.
type Frame struct {
	Type      string `json:"type"`
	Room      string `json:"room,omitempty"`
	To        string `json:"to,omitempty"`
	Payload   []byte `json:"payload,omitempty"`
	TTLMillis int64  `json:"ttl_ms,omitempty"`
}

// ServerFrame is a server-to-client message.
type ServerFrame struct {
	Type    string `json:"type"`
	Session string `json:"session,omitempty"`
	ID      string `json:"id,omitempty"`
	From    string `json:"from,omitempty"`
	Room    string `json:"room,omitempty"`
	Payload []byte `json:"payload,omitempty"`
	Code    string `json:"code,omitempty"`
}

const (
	frameJoin  = "join"
	frameLeave = "leave"
	frameSend  = "send"
	framePing  = "ping"

	frameWelcome  = "welcome"
	frameEnvelope = "envelope"
	frameAck      = "ack"
	framePong     = "pong"
	frameError    = "error"
)

// errorCode maps the domain taxonomy onto wire error codes.
func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrInvalidParameter):
		return "invalid_parameter"
	case errors.Is(err, domain.ErrInvalidEnvelope):
		return "invalid_envelope"
	case errors.Is(err, domain.ErrRoomFull):
		return "room_full"
	case errors.Is(err, domain.ErrRoomExpired):
		return "room_expired"
	case errors.Is(err, domain.ErrPayloadTooLarge):
		return "payload_too_large"
	default:
		return "internal"
	}
}

// envelopeFrame renders env for the receiving client.
func envelopeFrame(env domain.Envelope) ServerFrame {
	return ServerFrame{
		Type:    frameEnvelope,
		ID:      env.ID,
		From:    string(env.From),
		Room:    string(env.ToRoom),
		Payload: env.Payload,
	}
}
