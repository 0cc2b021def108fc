package ports

import (
	"context"

	"github.com/mtnworks/gt-client/internal/domain"
)

// TokenCache is durable storage for the last-known bearer token. The durable
// copy is the source of truth across process restarts. Store overwrites the
// entry wholesale; Clear removes it entirely. Load returns
// domain.ErrNoCachedToken when no entry exists.
type TokenCache interface {
	Load(ctx context.Context) (domain.BearerToken, error)
	Store(ctx context.Context, token domain.BearerToken) error
	Clear(ctx context.Context) error
}
