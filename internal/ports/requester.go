package ports

import (
	"context"

	"github.com/mtnworks/gt-client/internal/domain"
)

// Requester executes one logical authenticated call against the trade server
// and returns the raw response body. Implementations own bearer-token
// attachment and the bounded 401 re-auth-and-retry protocol; they do not
// interpret response bodies.
type Requester interface {
	Do(ctx context.Context, method, path string, body []byte) ([]byte, error)
}

// LoginResult is the trade server's answer to a ticket exchange.
type LoginResult struct {
	Token     string
	ExpiresIn int64
}

// LoginAPI is the unauthenticated login endpoint used by the session manager
// to exchange an identity ticket for a bearer token.
type LoginAPI interface {
	Login(ctx context.Context, ticketHex, playerName string) (LoginResult, error)
}

// SessionTokens is what the request client needs from the session manager.
// GetToken never blocks on the network; EnsureAuthenticated may.
type SessionTokens interface {
	GetToken() (domain.BearerToken, bool)
	EnsureAuthenticated(ctx context.Context) error
	RenewExpiry(ctx context.Context)
	ClearToken(ctx context.Context)
}
