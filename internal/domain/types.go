package domain

// PrincipalID identifies an authenticated party, independent of any
// particular connection.
type PrincipalID string

// X25519Public is a Curve25519 public key.
type X25519Public [32]byte

func (p X25519Public) Slice() []byte { return p[:] }

// X25519Private is a Curve25519 private key.
type X25519Private [32]byte

func (k X25519Private) Slice() []byte { return k[:] }

// KeyPair is an ephemeral X25519 pair used for one handshake.
type KeyPair struct {
	Priv X25519Private
	Pub  X25519Public
}
