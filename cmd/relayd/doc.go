// Command relayd runs the store-and-forward relay between stegochat
// clients. It authenticates connections, tracks who is online, and either
// delivers events immediately or queues them until the recipient returns.
//
// # Protocol
//
// Clients speak newline-delimited JSON over TCP. The first frame must be
//
//	{"token": "<credential>"}
//
// and is answered with {"ok":true,"id":"<principal>"} or an auth error,
// after which any queued events are flushed, oldest first, before new
// inbound traffic is read. Two event kinds flow in either direction:
//
//	{"kind":"public_key",   "toUserId":"bob", "publicKey":{...}}
//	{"kind":"cipher_image", "toUserId":"bob", "imageData":"data:image/png;base64,...", "iv":"..."}
//
// The relay stamps "from" on delivery. Events between principals who are
// not mutual friends are dropped without any notice to the sender.
//
// # Behaviour
//
//   - Principals, tokens and friendships come from a TOML config file.
//   - All queues live in memory and are lost on process exit.
//   - Queues are unbounded: an offline principal accumulates events
//     indefinitely, which is a deliberate parity choice and a known
//     resource-exhaustion risk.
//   - The relay never sees plaintext or private keys; it only moves
//     exported public keys and carrier images.
package main
