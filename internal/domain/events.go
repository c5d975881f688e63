package domain

// EventKind discriminates the relay event variants.
type EventKind string

const (
	// KindPublicKeyAnnounce carries a principal's exported handshake key.
	KindPublicKeyAnnounce EventKind = "public_key"
	// KindCipherImage carries ciphertext hidden in a carrier image.
	KindCipherImage EventKind = "cipher_image"
)

// PublicKeyJWK is the JWK-style export of an X25519 public key.
type PublicKeyJWK struct {
	Kty string `json:"kty"` // "OKP"
	Crv string `json:"crv"` // "X25519"
	X   string `json:"x"`   // base64url, no padding
}

// Event is the wire message relayed between principals. Kind selects which
// of the optional fields are meaningful; the router stamps From on delivery.
type Event struct {
	Kind EventKind   `json:"kind"`
	To   PrincipalID `json:"toUserId"`
	From PrincipalID `json:"from,omitempty"`

	// KindPublicKeyAnnounce
	PublicKey *PublicKeyJWK `json:"publicKey,omitempty"`

	// KindCipherImage
	ImageData string `json:"imageData,omitempty"` // PNG data URL
	IV        string `json:"iv,omitempty"`        // base64 AEAD nonce
}
