package crypto

import (
	"encoding/base64"
	"fmt"

	"stegochat/internal/domain"
)

const (
	jwkKty = "OKP"
	jwkCrv = "X25519"
)

// ExportPublicKey encodes an X25519 public key as the JWK-style structure
// carried inside PublicKeyAnnounce events.
func ExportPublicKey(pub domain.X25519Public) domain.PublicKeyJWK {
	return domain.PublicKeyJWK{
		Kty: jwkKty,
		Crv: jwkCrv,
		X:   base64.RawURLEncoding.EncodeToString(pub.Slice()),
	}
}

// ImportPublicKey decodes a peer's JWK-style public key. Any structural
// problem makes the key unusable for agreement.
func ImportPublicKey(jwk domain.PublicKeyJWK) (domain.X25519Public, error) {
	var pub domain.X25519Public
	if jwk.Kty != jwkKty || jwk.Crv != jwkCrv {
		return pub, fmt.Errorf("unexpected key type %s/%s", jwk.Kty, jwk.Crv)
	}
	raw, err := base64.RawURLEncoding.DecodeString(jwk.X)
	if err != nil {
		return pub, fmt.Errorf("decode x coordinate: %w", err)
	}
	if len(raw) != len(pub) {
		return pub, fmt.Errorf("unexpected key length %d", len(raw))
	}
	copy(pub[:], raw)
	return pub, nil
}
