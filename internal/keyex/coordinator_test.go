package keyex_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"stegochat/internal/domain"
	"stegochat/internal/keyex"
)

// recorder captures announced keys and can pipe them into a peer coordinator.
type recorder struct {
	calls []domain.PublicKeyJWK
}

func (r *recorder) announce(_ domain.PrincipalID, key domain.PublicKeyJWK) error {
	r.calls = append(r.calls, key)
	return nil
}

func TestSharedKeyOrNil_NudgesAnnounce(t *testing.T) {
	rec := &recorder{}
	c := keyex.NewCoordinator(rec.announce)

	key, err := c.SharedKeyOrNil("bob")
	require.NoError(t, err)
	require.Nil(t, key, "no handshake yet")
	require.Len(t, rec.calls, 1, "nil result must trigger an announce")

	// Asking again does not re-announce.
	key, err = c.SharedKeyOrNil("bob")
	require.NoError(t, err)
	require.Nil(t, key)
	require.Len(t, rec.calls, 1)
}

func TestAnnounce_Idempotent(t *testing.T) {
	rec := &recorder{}
	c := keyex.NewCoordinator(rec.announce)

	require.NoError(t, c.Announce("bob"))
	require.NoError(t, c.Announce("bob"))
	require.Len(t, rec.calls, 1)

	// Pairs are per peer, so a different peer sees a different key.
	require.NoError(t, c.Announce("carol"))
	require.Len(t, rec.calls, 2)
	require.NotEqual(t, rec.calls[0].X, rec.calls[1].X)
}

func TestHandshake_BothSidesDeriveSameKey(t *testing.T) {
	var aliceRec, bobRec recorder
	alice := keyex.NewCoordinator(aliceRec.announce)
	bob := keyex.NewCoordinator(bobRec.announce)

	require.NoError(t, alice.Announce("bob"))
	require.NoError(t, bob.Announce("alice"))

	require.NoError(t, bob.OnPeerPublicKey("alice", aliceRec.calls[0]))
	require.NoError(t, alice.OnPeerPublicKey("bob", bobRec.calls[0]))

	aliceKey, err := alice.SharedKeyOrNil("bob")
	require.NoError(t, err)
	bobKey, err := bob.SharedKeyOrNil("alice")
	require.NoError(t, err)
	require.NotNil(t, aliceKey)
	require.True(t, bytes.Equal(aliceKey, bobKey), "key agreement must be symmetric")
}

func TestOnPeerPublicKey_OverwritesSharedKey(t *testing.T) {
	var rec, peer1, peer2 recorder
	c := keyex.NewCoordinator(rec.announce)
	first := keyex.NewCoordinator(peer1.announce)
	second := keyex.NewCoordinator(peer2.announce)

	require.NoError(t, first.Announce("me"))
	require.NoError(t, second.Announce("me"))

	require.NoError(t, c.OnPeerPublicKey("bob", peer1.calls[0]))
	k1, err := c.SharedKeyOrNil("bob")
	require.NoError(t, err)

	// A refreshed peer key replaces the old shared key without complaint.
	require.NoError(t, c.OnPeerPublicKey("bob", peer2.calls[0]))
	k2, err := c.SharedKeyOrNil("bob")
	require.NoError(t, err)
	require.False(t, bytes.Equal(k1, k2))
}

func TestOnPeerPublicKey_MalformedKeepsState(t *testing.T) {
	var rec, peerRec recorder
	c := keyex.NewCoordinator(rec.announce)
	peer := keyex.NewCoordinator(peerRec.announce)
	require.NoError(t, peer.Announce("me"))
	require.NoError(t, c.OnPeerPublicKey("bob", peerRec.calls[0]))

	before, err := c.SharedKeyOrNil("bob")
	require.NoError(t, err)
	require.NotNil(t, before)

	err = c.OnPeerPublicKey("bob", domain.PublicKeyJWK{Kty: "OKP", Crv: "X25519", X: "!!!"})
	require.True(t, errors.Is(err, domain.ErrKeyAgreement), "got %v", err)

	after, err := c.SharedKeyOrNil("bob")
	require.NoError(t, err)
	require.True(t, bytes.Equal(before, after), "failed import must not change state")
}

func TestAnnounce_ErrorNotSticky(t *testing.T) {
	fail := true
	var sent int
	c := keyex.NewCoordinator(func(domain.PrincipalID, domain.PublicKeyJWK) error {
		if fail {
			return errors.New("connection down")
		}
		sent++
		return nil
	})

	require.Error(t, c.Announce("bob"))
	fail = false
	require.NoError(t, c.Announce("bob"))
	require.Equal(t, 1, sent, "announce retries after a failed send, once")
}
