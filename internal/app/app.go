package app

import (
	"github.com/sirupsen/logrus"

	"stegochat/internal/domain"
	"stegochat/internal/keyex"
	"stegochat/internal/relay"
	"stegochat/internal/session"
)

// App bundles one connected client: the relay connection, the handshake
// coordinator, and the session pipeline, with the event loop running.
type App struct {
	Client   *relay.Client
	Coord    *keyex.Coordinator
	Pipeline *session.Pipeline

	done chan struct{}
	log  *logrus.Entry
}

// New dials the relay and wires the dependency graph. Every inbound event
// is processed in arrival order by a single loop, so per-peer handshake
// and message ordering is preserved end to end. Decrypted messages reach
// onMsg; failed receives are logged and the event is discarded.
func New(cfg Config, onMsg func(session.Message)) (*App, error) {
	client, err := relay.Dial(cfg.RelayAddr, cfg.Token)
	if err != nil {
		return nil, err
	}

	coord := keyex.NewCoordinator(func(peer domain.PrincipalID, key domain.PublicKeyJWK) error {
		return client.Send(domain.Event{
			Kind:      domain.KindPublicKeyAnnounce,
			To:        peer,
			PublicKey: &key,
		})
	})
	pipeline := session.New(coord, client.Send, onMsg)

	a := &App{
		Client:   client,
		Coord:    coord,
		Pipeline: pipeline,
		done:     make(chan struct{}),
		log:      logrus.WithFields(logrus.Fields{"component": "app", "principal": client.Self()}),
	}
	go a.eventLoop()
	return a, nil
}

// Self is our authenticated principal id.
func (a *App) Self() domain.PrincipalID { return a.Client.Self() }

// Done closes when the relay connection ends.
func (a *App) Done() <-chan struct{} { return a.done }

// Close tears down the connection and stops the event loop.
func (a *App) Close() error { return a.Client.Close() }

func (a *App) eventLoop() {
	defer close(a.done)
	for ev := range a.Client.Events() {
		if err := a.Pipeline.HandleEvent(ev); err != nil {
			a.log.WithFields(logrus.Fields{
				"kind": ev.Kind,
				"from": ev.From,
			}).WithError(err).Warn("inbound event failed")
		}
	}
}
