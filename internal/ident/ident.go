// Package ident mints the opaque identifiers used across the relay. Session
// tokens are raw entropy so they cannot be guessed or enumerated; room and
// envelope identifiers are UUIDs, which only need uniqueness.
package ident

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"

	"vanish/internal/domain"
)

const sessionTokenBytes = 32 // 256 bits

// SessionID returns a cryptographically random session token. A failed read
// from the entropy source is unrecoverable and is reported as
// domain.ErrEntropy for the caller to treat as fatal.
func SessionID() (domain.SessionID, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrEntropy, err)
	}
	return domain.SessionID(base64.RawURLEncoding.EncodeToString(b)), nil
}

// RoomID returns a fresh room identifier.
func RoomID() domain.RoomID {
	return domain.RoomID(uuid.NewString())
}

// EnvelopeID returns a fresh envelope identifier, used for pending-store keys
// and log correlation only.
func EnvelopeID() string {
	return uuid.NewString()
}
