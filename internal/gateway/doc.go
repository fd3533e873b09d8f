// Package gateway is the transport edge: it owns every raw socket and
// translates between wire frames and relay operations. All other packages
// work with abstract identifiers only.
//
// # Wire protocol
//
// Clients hold a WebSocket open at /ws and exchange JSON frames.
//
// Client to server:
//
//	{"type":"join",  "room":"<room-id>"}
//	{"type":"leave", "room":"<room-id>"}
//	{"type":"send",  "to":"<session-id>", "payload":"<base64>"}
//	{"type":"send",  "room":"<room-id>",  "payload":"<base64>", "ttl_ms":5000}
//	{"type":"ping"}
//
// Server to client:
//
//	{"type":"welcome",  "session":"<session-id>"}
//	{"type":"envelope", "from":"...", "room":"...", "payload":"<base64>"}
//	{"type":"ack",      "id":"<envelope-id>"}
//	{"type":"pong"}
//	{"type":"error",    "code":"room_full"}
//
// There is no handshake beyond the upgrade: connecting mints an anonymous
// session, and disconnecting destroys it. Payloads are opaque bytes with a
// size bound; oversized frames are rejected with payload_too_large.
//
// # Admin surface
//
//	POST /admin/rooms   {"ttl_seconds":60,"max_members":8} -> {"room_id":"..."}
//	GET  /healthz       process liveness plus session/room counts
package gateway
