package domain

// Handle is the live delivery endpoint for a connected principal. A
// principal has at most one handle at a time; a principal with none is
// offline.
type Handle interface {
	// ID distinguishes handles when a reconnect replaces an earlier one.
	ID() string
	Send(Event) error
}

// Authenticator maps a connection token to a principal id. It must fail
// before any core state is touched.
type Authenticator interface {
	Authenticate(token string) (PrincipalID, error)
}

// TrustStore answers whether two principals are allowed to exchange
// events. The relation is symmetric.
type TrustStore interface {
	Mutual(a, b PrincipalID) bool
}
