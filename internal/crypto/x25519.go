package crypto

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/curve25519"

	"stegochat/internal/domain"
)

// GenerateX25519 returns a fresh Curve25519 key pair.
// The private key is clamped per RFC 7748.
func GenerateX25519() (pair domain.KeyPair, err error) {
	if _, err = rand.Read(pair.Priv[:]); err != nil {
		return pair, err
	}
	clamp(&pair.Priv)
	pb, err := curve25519.X25519(pair.Priv.Slice(), curve25519.Basepoint)
	if err != nil {
		return pair, err
	}
	copy(pair.Pub[:], pb)
	return pair, nil
}

// DH computes the X25519 shared secret between our private key and the
// peer's public key. A low-order peer key surfaces as an error.
func DH(priv domain.X25519Private, pub domain.X25519Public) ([]byte, error) {
	secret, err := curve25519.X25519(priv.Slice(), pub.Slice())
	if err != nil {
		return nil, fmt.Errorf("x25519: %w", err)
	}
	return secret, nil
}

func clamp(k *domain.X25519Private) {
	kb := k[:]
	kb[0] &= 248
	kb[31] &= 127
	kb[31] |= 64
}
