package ports

import (
	"context"

	"github.com/mtnworks/gt-client/internal/domain"
)

// IdentityProvider is the platform-side trust anchor: it names the player and
// issues the opaque authentication ticket bound to that identity. At most one
// ticket is live per process; acquiring a new one requires canceling the
// previous one first.
type IdentityProvider interface {
	Identity(ctx context.Context) (domain.Identity, error)
	AcquireTicket(ctx context.Context) ([]byte, error)
	CancelTicket(ctx context.Context) error
}
