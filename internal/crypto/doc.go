// Package crypto exposes the primitives used by stegochat.
//
// Contents
//
//   - X25519 key generation, clamping and Diffie–Hellman (GenerateX25519, DH)
//   - ChaCha20-Poly1305 AEAD with random nonces (Seal, Open)
//   - JWK-style public-key export/import for the handshake wire format
//     (ExportPublicKey, ImportPublicKey)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Key material uses fixed-size array types defined in internal/domain to
// avoid accidental reallocations. Callers should treat returned secrets as
// sensitive and rely on Wipe when practical to reduce lifetime in memory.
package crypto
