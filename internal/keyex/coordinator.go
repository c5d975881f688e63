package keyex

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"stegochat/internal/crypto"
	"stegochat/internal/domain"
)

// Announcer emits our exported public key towards a peer, normally by
// sending a PublicKeyAnnounce event through the relay connection.
type Announcer func(peer domain.PrincipalID, key domain.PublicKeyJWK) error

// peerState is the per-peer handshake state. Exactly one instance exists
// per peer for the process lifetime, created lazily on first interaction.
type peerState struct {
	pair      *domain.KeyPair
	shared    []byte
	announced bool
}

// Coordinator drives the handshake state machine for every peer of one
// principal: generate an ephemeral pair, announce it, and derive the shared
// key once the peer's public key arrives.
//
// The announcer performs I/O, so it is never invoked with the state lock
// held.
type Coordinator struct {
	mu       sync.Mutex
	peers    map[domain.PrincipalID]*peerState
	announce Announcer
	log      *logrus.Entry
}

// NewCoordinator returns a Coordinator that announces through fn.
func NewCoordinator(fn Announcer) *Coordinator {
	return &Coordinator{
		peers:    make(map[domain.PrincipalID]*peerState),
		announce: fn,
		log:      logrus.WithField("component", "keyex"),
	}
}

// EnsurePair lazily generates the ephemeral key pair for peer.
func (c *Coordinator) EnsurePair(peer domain.PrincipalID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.ensurePairLocked(peer)
	return err
}

// Announce sends our public key to peer once. Later calls are no-ops, so
// every code path that might need a handshake can call it freely. A failed
// send leaves the state unannounced and will be retried on the next call.
func (c *Coordinator) Announce(peer domain.PrincipalID) error {
	jwk, pending, err := c.claimAnnounce(peer)
	if err != nil || !pending {
		return err
	}
	if err := c.announce(peer, jwk); err != nil {
		c.releaseAnnounce(peer)
		return fmt.Errorf("announce to %s: %w", peer, err)
	}
	return nil
}

// OnPeerPublicKey imports the peer's key and derives the shared key.
//
// A repeated or refreshed peer key re-derives and overwrites the shared key
// unconditionally; there is no versioning and no replay protection. A
// malformed key reports ErrKeyAgreement and leaves state untouched.
func (c *Coordinator) OnPeerPublicKey(peer domain.PrincipalID, jwk domain.PublicKeyJWK) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, err := c.ensurePairLocked(peer)
	if err != nil {
		return err
	}
	pub, err := crypto.ImportPublicKey(jwk)
	if err != nil {
		return fmt.Errorf("import peer key: %v: %w", err, domain.ErrKeyAgreement)
	}
	shared, err := crypto.DH(st.pair.Priv, pub)
	if err != nil {
		return fmt.Errorf("derive shared key: %v: %w", err, domain.ErrKeyAgreement)
	}
	if st.shared != nil {
		crypto.Wipe(st.shared)
	}
	st.shared = shared
	c.log.WithFields(logrus.Fields{
		"peer":        peer,
		"fingerprint": crypto.Fingerprint(pub.Slice()),
	}).Debug("shared key established")
	return nil
}

// SharedKeyOrNil returns a copy of the derived key for peer, or nil before
// the handshake completes. The nil path announces our key as a side
// effect, nudging the peer to respond; the caller is expected to hold its
// payload until then.
func (c *Coordinator) SharedKeyOrNil(peer domain.PrincipalID) ([]byte, error) {
	c.mu.Lock()
	if st, ok := c.peers[peer]; ok && st.shared != nil {
		out := make([]byte, len(st.shared))
		copy(out, st.shared)
		c.mu.Unlock()
		return out, nil
	}
	c.mu.Unlock()
	return nil, c.Announce(peer)
}

func (c *Coordinator) ensurePairLocked(peer domain.PrincipalID) (*peerState, error) {
	st, ok := c.peers[peer]
	if !ok {
		st = &peerState{}
		c.peers[peer] = st
	}
	if st.pair == nil {
		pair, err := crypto.GenerateX25519()
		if err != nil {
			return nil, fmt.Errorf("generate key pair: %w", err)
		}
		st.pair = &pair
		c.log.WithField("peer", peer).Debug("ephemeral pair generated")
	}
	return st, nil
}

// claimAnnounce flips the announced flag and hands back the key to send.
// pending is false when an earlier announce already went out.
func (c *Coordinator) claimAnnounce(peer domain.PrincipalID) (domain.PublicKeyJWK, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, err := c.ensurePairLocked(peer)
	if err != nil {
		return domain.PublicKeyJWK{}, false, err
	}
	if st.announced {
		return domain.PublicKeyJWK{}, false, nil
	}
	st.announced = true
	return crypto.ExportPublicKey(st.pair.Pub), true, nil
}

// releaseAnnounce undoes claimAnnounce after a failed send.
func (c *Coordinator) releaseAnnounce(peer domain.PrincipalID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if st, ok := c.peers[peer]; ok {
		st.announced = false
	}
}
