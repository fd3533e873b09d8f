// Package sweep runs the background expiry scheduler: a fixed-interval
// sweeper that destroys sessions past TTL, reaps rooms, and discards pending
// envelopes past their delivery window. It uses the same reap primitives as
// the request paths, so running concurrently with normal traffic is safe and
// idempotent, and it never blocks a request.
package sweep
