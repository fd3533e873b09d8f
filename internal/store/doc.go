// Package store provides the pending-envelope stores behind
// domain.PendingStore: envelopes addressed to sessions without a live
// connection, held until delivery or expiry.
//
// Two implementations:
//
//   - Memory: process-local, the default. Nothing survives restart.
//   - Redis: every key carries the envelope's delivery TTL, so expiry holds
//     even if the process dies mid-window. For deployments that front the
//     relay with more than one process.
//
// Both are bounded per session and drop the oldest pending envelope on
// overflow: bounded memory and forensic resistance are favoured over
// guaranteed delivery.
package store
