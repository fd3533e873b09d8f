// Package directory implements the Room Directory: temporary membership sets
// with expiry. Rooms die when their TTL elapses or when they sit empty past a
// grace period; both paths go through ReapExpired, driven by the sweeper.
//
// The directory holds session identifiers only — non-owning references into
// the registry. It never touches transport state.
package directory
