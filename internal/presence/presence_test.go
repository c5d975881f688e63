package presence_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stegochat/internal/domain"
	"stegochat/internal/presence"
)

type fakeHandle struct{ id string }

func (h *fakeHandle) ID() string              { return h.id }
func (h *fakeHandle) Send(domain.Event) error { return nil }

func TestDirectory_RegisterLookupUnregister(t *testing.T) {
	d := presence.NewDirectory()

	_, ok := d.Lookup("alice")
	require.False(t, ok, "nobody is online yet")

	h := &fakeHandle{id: "h1"}
	d.Register("alice", h)
	got, ok := d.Lookup("alice")
	require.True(t, ok)
	require.Equal(t, "h1", got.ID())

	d.Unregister("alice")
	_, ok = d.Lookup("alice")
	require.False(t, ok)

	// Unregister is idempotent.
	d.Unregister("alice")
}

func TestDirectory_RegisterReplaces(t *testing.T) {
	d := presence.NewDirectory()
	d.Register("alice", &fakeHandle{id: "old"})
	d.Register("alice", &fakeHandle{id: "new"})

	got, ok := d.Lookup("alice")
	require.True(t, ok)
	require.Equal(t, "new", got.ID(), "a reconnect replaces the stale handle")
}
