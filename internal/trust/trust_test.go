package trust_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stegochat/internal/trust"
)

func TestRequestAccept_EstablishesMutualTrust(t *testing.T) {
	s := trust.NewStore()
	require.False(t, s.Mutual("alice", "bob"))

	s.Request("alice", "bob")
	require.False(t, s.Mutual("alice", "bob"), "a pending request is not trust")

	require.True(t, s.Accept("bob", "alice"))
	require.True(t, s.Mutual("alice", "bob"))
	require.True(t, s.Mutual("bob", "alice"), "trust is symmetric")
}

func TestAccept_WithoutRequestFails(t *testing.T) {
	s := trust.NewStore()
	require.False(t, s.Accept("bob", "alice"))
	require.False(t, s.Mutual("alice", "bob"))
}

func TestAccept_OwnRequestFails(t *testing.T) {
	s := trust.NewStore()
	s.Request("alice", "bob")
	// The requester cannot accept on the peer's behalf.
	require.False(t, s.Accept("alice", "bob"))
	require.False(t, s.Mutual("alice", "bob"))
}

func TestSeed(t *testing.T) {
	s := trust.NewStore()
	s.Seed("alice", "bob")
	require.True(t, s.Mutual("bob", "alice"))
	require.False(t, s.Mutual("alice", "carol"))
}
