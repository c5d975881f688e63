// Package queue buffers relay events for principals who are offline and
// hands them back, in arrival order, when they reconnect.
//
// Queues are unbounded and never expire: an offline principal accumulates
// events indefinitely. That is a deliberate parity choice and a known
// resource-exhaustion risk.
package queue

import (
	"sync"

	"github.com/sirupsen/logrus"

	"stegochat/internal/domain"
)

// Store holds one FIFO sequence per principal. A sequence exists only
// while its owner is offline with undelivered events.
type Store struct {
	mu      sync.Mutex
	pending map[domain.PrincipalID][]domain.Event
	log     *logrus.Entry
}

func NewStore() *Store {
	return &Store{
		pending: make(map[domain.PrincipalID][]domain.Event),
		log:     logrus.WithField("component", "queue"),
	}
}

// Enqueue appends ev to id's sequence, creating it if absent.
func (s *Store) Enqueue(id domain.PrincipalID, ev domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[id] = append(s.pending[id], ev)
	s.log.WithFields(logrus.Fields{
		"principal": id,
		"kind":      ev.Kind,
		"depth":     len(s.pending[id]),
	}).Debug("event queued for offline principal")
}

// Drain returns id's full sequence, oldest first, and atomically removes
// it. A principal with nothing queued gets an empty slice.
func (s *Store) Drain(id domain.PrincipalID) []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	evs := s.pending[id]
	delete(s.pending, id)
	return evs
}
