// Package session orchestrates the client's secure messaging pipeline.
//
// Outbound: plaintext is AEAD-encrypted with the peer's shared key, the
// ciphertext is hidden in a carrier image, and the image travels to the
// relay as a CipherImage event. Inbound runs the same path backwards.
// Both directions gate on the key exchange coordinator: traffic that
// arrives (or is submitted) before a shared key exists is parked in
// per-peer buffers and replayed the moment the handshake completes.
package session
