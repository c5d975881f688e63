package queue_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stegochat/internal/domain"
	"stegochat/internal/queue"
)

func TestStore_DrainPreservesFIFO(t *testing.T) {
	s := queue.NewStore()
	for _, iv := range []string{"e1", "e2", "e3"} {
		s.Enqueue("bob", domain.Event{Kind: domain.KindCipherImage, To: "bob", IV: iv})
	}

	evs := s.Drain("bob")
	require.Len(t, evs, 3)
	for i, iv := range []string{"e1", "e2", "e3"} {
		require.Equal(t, iv, evs[i].IV, "delivery order must match arrival order")
	}

	// Drained exactly once: the sequence is gone.
	require.Empty(t, s.Drain("bob"))
}

func TestStore_DrainUnknownPrincipal(t *testing.T) {
	s := queue.NewStore()
	require.Empty(t, s.Drain("nobody"))
}

func TestStore_QueuesAreIndependent(t *testing.T) {
	s := queue.NewStore()
	s.Enqueue("bob", domain.Event{To: "bob", IV: "for-bob"})
	s.Enqueue("carol", domain.Event{To: "carol", IV: "for-carol"})

	evs := s.Drain("bob")
	require.Len(t, evs, 1)
	require.Equal(t, "for-bob", evs[0].IV)

	evs = s.Drain("carol")
	require.Len(t, evs, 1)
	require.Equal(t, "for-carol", evs[0].IV)
}
