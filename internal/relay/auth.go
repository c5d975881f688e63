package relay

import (
	"fmt"

	"stegochat/internal/domain"
)

// TokenAuthenticator resolves connection tokens against the provisioned
// principal list. It is the whole credential story here: account
// registration and durable credential storage live outside the core.
type TokenAuthenticator struct {
	tokens map[string]domain.PrincipalID
}

// NewTokenAuthenticator indexes the configured principals by token.
func NewTokenAuthenticator(principals []Principal) *TokenAuthenticator {
	a := &TokenAuthenticator{tokens: make(map[string]domain.PrincipalID, len(principals))}
	for _, p := range principals {
		a.tokens[p.Token] = domain.PrincipalID(p.ID)
	}
	return a
}

// Authenticate maps a token to its principal id.
func (a *TokenAuthenticator) Authenticate(token string) (domain.PrincipalID, error) {
	if token == "" {
		return "", fmt.Errorf("missing token: %w", domain.ErrAuth)
	}
	id, ok := a.tokens[token]
	if !ok {
		return "", fmt.Errorf("unknown token: %w", domain.ErrAuth)
	}
	return id, nil
}

var _ domain.Authenticator = (*TokenAuthenticator)(nil)
