// Package registry implements the Session Registry: the single owner of all
// session records and the weak references to their transport handles.
//
// Lifecycle
//
//   - Create mints an unguessable identifier and registers it with the
//     default TTL.
//   - Touch refreshes last-activity on any inbound frame.
//   - Destroy removes the session, fires the registered cascade hooks
//     (room membership, pending queues) and tombstones the identifier for
//     its dormancy window so a lookup cannot succeed against a reissued ID.
//
// Destruction is irreversible and idempotent. All mutation goes through the
// registry's own lock; no other component reaches into its state.
package registry
