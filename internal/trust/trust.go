// Package trust keeps the mutual-friend relation between principals and
// the request/accept bookkeeping that establishes it.
//
// The core only ever consults the boolean predicate: two principals may
// exchange events iff they are mutual friends at send time.
package trust

import (
	"sync"

	"stegochat/internal/domain"
)

type pair struct{ a, b domain.PrincipalID }

// ordered normalises a pair so the friendship set stays symmetric.
func ordered(a, b domain.PrincipalID) pair {
	if b < a {
		a, b = b, a
	}
	return pair{a, b}
}

// Store is an in-memory trust relation.
type Store struct {
	mu       sync.RWMutex
	friends  map[pair]bool
	requests map[pair]domain.PrincipalID // value: who asked
}

func NewStore() *Store {
	return &Store{
		friends:  make(map[pair]bool),
		requests: make(map[pair]domain.PrincipalID),
	}
}

// Seed records an established friendship directly, bypassing the
// request/accept exchange. Used for config-provisioned relationships.
func (s *Store) Seed(a, b domain.PrincipalID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.friends[ordered(a, b)] = true
}

// Request records that from wants to befriend to. Repeating a request is
// harmless; a request towards an existing friend changes nothing.
func (s *Store) Request(from, to domain.PrincipalID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := ordered(from, to)
	if s.friends[key] {
		return
	}
	s.requests[key] = from
}

// Accept completes a pending request from peer towards by. Accepting a
// request that was never made is a no-op; the pair stays untrusted.
func (s *Store) Accept(by, peer domain.PrincipalID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := ordered(by, peer)
	if s.requests[key] != peer {
		return false
	}
	delete(s.requests, key)
	s.friends[key] = true
	return true
}

// Mutual reports whether a and b may exchange events.
func (s *Store) Mutual(a, b domain.PrincipalID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.friends[ordered(a, b)]
}

var _ domain.TrustStore = (*Store)(nil)
