package domain

import "errors"

// Error taxonomy. All rejections are synchronous responses to the request
// that caused them; nothing is reported asynchronously to unrelated sessions.
var (
	// ErrNotFound indicates a session or room that is absent or already expired.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the sender session is not live.
	ErrUnauthorized = errors.New("sender session is not live")

	// ErrInvalidParameter indicates malformed input to a lifecycle operation.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidEnvelope indicates an envelope missing sender or recipient.
	ErrInvalidEnvelope = errors.New("invalid envelope")

	// ErrRoomFull indicates the room is at its member limit.
	ErrRoomFull = errors.New("room is full")

	// ErrRoomExpired indicates the room TTL has elapsed.
	ErrRoomExpired = errors.New("room has expired")

	// ErrPayloadTooLarge indicates a frame payload over the configured bound.
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrEntropy indicates the entropy source failed. Unrecoverable; callers
	// terminate the process after logging.
	ErrEntropy = errors.New("entropy source failure")
)
