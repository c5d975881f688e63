package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

const fingerprintBytes = 10

// Fingerprint returns a short hex digest of an X25519 public key,
// suitable for log lines and peer display. Two announces from the same
// peer with different fingerprints mean the key was replaced.
func Fingerprint(pub []byte) string {
	sum := sha256.Sum256(pub)
	return hex.EncodeToString(sum[:fingerprintBytes])
}
