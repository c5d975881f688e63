package session

import (
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"stegochat/internal/crypto"
	"stegochat/internal/domain"
	"stegochat/internal/keyex"
	"stegochat/internal/stego"
)

// SendStatus reports what happened to a plaintext handed to Send.
type SendStatus int

const (
	// StatusSent means the message was encrypted, embedded and handed to
	// the relay.
	StatusSent SendStatus = iota
	// StatusWaiting means no shared key exists yet; the plaintext is held
	// locally and will be replayed once the handshake completes.
	StatusWaiting
)

// Message is a decrypted inbound message surfaced to the application.
type Message struct {
	From domain.PrincipalID
	Text string
}

// Sender is the outbound path to the relay connection.
type Sender func(domain.Event) error

// Pipeline orchestrates the secure path in both directions:
// encrypt → embed → route on send, and extract → decrypt on receive,
// gating everything on the key exchange coordinator's state.
type Pipeline struct {
	coord *keyex.Coordinator
	send  Sender
	onMsg func(Message)
	log   *logrus.Entry

	mu         sync.Mutex
	pendingOut map[domain.PrincipalID][]string       // plaintexts awaiting a key
	pendingIn  map[domain.PrincipalID][]domain.Event // cipher images awaiting a key
}

// New builds a pipeline. Decrypted messages are passed to onMsg.
func New(coord *keyex.Coordinator, send Sender, onMsg func(Message)) *Pipeline {
	return &Pipeline{
		coord:      coord,
		send:       send,
		onMsg:      onMsg,
		log:        logrus.WithField("component", "pipeline"),
		pendingOut: make(map[domain.PrincipalID][]string),
		pendingIn:  make(map[domain.PrincipalID][]domain.Event),
	}
}

// Send encrypts plaintext for target and ships it inside a carrier image.
//
// Without a shared key the plaintext is parked client-side and
// StatusWaiting is returned; SharedKeyOrNil has already nudged the
// handshake in that case. A ciphertext that cannot fit the carrier
// surfaces ErrCapacity as a failed send.
func (p *Pipeline) Send(target domain.PrincipalID, plaintext string) (SendStatus, error) {
	key, err := p.coord.SharedKeyOrNil(target)
	if err != nil {
		return StatusWaiting, err
	}
	if key == nil {
		p.mu.Lock()
		p.pendingOut[target] = append(p.pendingOut[target], plaintext)
		p.mu.Unlock()
		p.log.WithField("peer", target).Debug("plaintext held pending handshake")
		return StatusWaiting, nil
	}
	defer crypto.Wipe(key)
	return StatusSent, p.encryptAndSend(target, key, plaintext)
}

// HandleEvent processes one inbound relay event in arrival order.
func (p *Pipeline) HandleEvent(ev domain.Event) error {
	switch ev.Kind {
	case domain.KindPublicKeyAnnounce:
		return p.handleAnnounce(ev)
	case domain.KindCipherImage:
		return p.handleCipherImage(ev)
	default:
		p.log.WithField("kind", ev.Kind).Warn("unknown event kind ignored")
		return nil
	}
}

// handleAnnounce derives the shared key, answers with our own key (a
// no-op if already announced), then replays everything parked for the
// sender in both directions.
func (p *Pipeline) handleAnnounce(ev domain.Event) error {
	if ev.PublicKey == nil {
		return fmt.Errorf("announce from %s without key: %w", ev.From, domain.ErrKeyAgreement)
	}
	if err := p.coord.OnPeerPublicKey(ev.From, *ev.PublicKey); err != nil {
		return err
	}
	if err := p.coord.Announce(ev.From); err != nil {
		return err
	}
	return p.flushPending(ev.From)
}

// handleCipherImage decrypts immediately when a key exists; otherwise the
// event is parked and the handshake is (re)initiated.
func (p *Pipeline) handleCipherImage(ev domain.Event) error {
	key, err := p.coord.SharedKeyOrNil(ev.From)
	if err != nil {
		return err
	}
	if key == nil {
		p.mu.Lock()
		p.pendingIn[ev.From] = append(p.pendingIn[ev.From], ev)
		p.mu.Unlock()
		p.log.WithField("peer", ev.From).Debug("cipher image held pending handshake")
		return nil
	}
	defer crypto.Wipe(key)
	return p.decryptAndDeliver(ev, key)
}

// flushPending replays parked traffic for peer now that a key exists.
// Outbound plaintexts go back through the send path; inbound cipher
// images are decrypted in their original arrival order. A replay that
// fails discards only that event; the rest still flush, and the last
// error is reported.
func (p *Pipeline) flushPending(peer domain.PrincipalID) error {
	p.mu.Lock()
	outs := p.pendingOut[peer]
	ins := p.pendingIn[peer]
	delete(p.pendingOut, peer)
	delete(p.pendingIn, peer)
	p.mu.Unlock()

	key, err := p.coord.SharedKeyOrNil(peer)
	if err != nil {
		return err
	}
	if key == nil {
		return fmt.Errorf("flush without key for %s: %w", peer, domain.ErrKeyAgreement)
	}
	defer crypto.Wipe(key)

	var lastErr error
	for _, plaintext := range outs {
		if err := p.encryptAndSend(peer, key, plaintext); err != nil {
			p.log.WithError(err).WithField("peer", peer).Warn("parked plaintext discarded")
			lastErr = err
		}
	}
	for _, ev := range ins {
		if err := p.decryptAndDeliver(ev, key); err != nil {
			p.log.WithError(err).WithField("peer", peer).Warn("parked cipher image discarded")
			lastErr = err
		}
	}
	return lastErr
}

func (p *Pipeline) encryptAndSend(target domain.PrincipalID, key []byte, plaintext string) error {
	nonce, ct, err := crypto.Seal(key, []byte(plaintext))
	if err != nil {
		return err
	}
	// The carrier hides text, so the ciphertext travels base64-encoded.
	img, err := stego.Embed([]byte(base64.StdEncoding.EncodeToString(ct)))
	if err != nil {
		return err
	}
	dataURL, err := stego.EncodeDataURL(img)
	if err != nil {
		return err
	}
	return p.send(domain.Event{
		Kind:      domain.KindCipherImage,
		To:        target,
		ImageData: dataURL,
		IV:        base64.StdEncoding.EncodeToString(nonce),
	})
}

func (p *Pipeline) decryptAndDeliver(ev domain.Event, key []byte) error {
	img, err := stego.DecodeDataURL(ev.ImageData)
	if err != nil {
		return err
	}
	payload, err := stego.Extract(img)
	if err != nil {
		return err
	}
	ct, err := base64.StdEncoding.DecodeString(string(payload))
	if err != nil {
		return fmt.Errorf("decode extracted payload: %w", domain.ErrMalformedFrame)
	}
	nonce, err := base64.StdEncoding.DecodeString(ev.IV)
	if err != nil {
		return fmt.Errorf("decode iv: %w", domain.ErrDecrypt)
	}
	plain, err := crypto.Open(key, nonce, ct)
	if err != nil {
		return err
	}
	p.onMsg(Message{From: ev.From, Text: string(plain)})
	return nil
}
