// Package commands defines the vanish CLI.
//
// Commands
//
//   - serve        Run the relay: WebSocket gateway, admin API, expiry sweeper
//   - create-room  Create a room via a running relay's admin API
//   - health       Query a running relay's liveness endpoint
//
// serve exits 0 on clean shutdown and non-zero when the listener cannot bind.
// The admin commands talk HTTP to --server and print JSON to stdout.
package commands
