// Package keyex runs the per-peer asymmetric handshake that must complete
// before any message can be encrypted or decrypted.
//
// Each peer walks UNINIT → KEYGEN → ANNOUNCED → ESTABLISHED: an ephemeral
// X25519 pair is generated lazily, our public key is announced at most
// once, and the shared symmetric key is derived the moment the peer's key
// arrives. A second handshake from the same peer silently replaces the
// shared key; that matches the protocol but gives no key confirmation and
// no replay protection.
package keyex
