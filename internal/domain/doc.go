// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (sessions, rooms, envelopes), the component
// contracts, and the error taxonomy surfaced to clients. No package here may
// inspect envelope payloads; they are opaque ciphertext end to end.
package domain
