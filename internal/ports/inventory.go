package ports

import (
	"context"

	"github.com/mtnworks/gt-client/internal/domain"
)

// WorldInventory is the game-side collaborator owning locally-held tradable
// stacks. The trade service reads it for validation and mutates it only after
// server acknowledgment.
type WorldInventory interface {
	// CountOf returns the locally-owned quantity of an item kind.
	CountOf(ctx context.Context, kind string) (int, error)
	// Remove takes quantity units of kind out of local ownership.
	Remove(ctx context.Context, kind string, quantity int) error
	// Add materializes quantity units of kind into local ownership.
	Add(ctx context.Context, kind string, quantity int) error
	// List enumerates all locally-owned tradable stacks.
	List(ctx context.Context) ([]domain.TradeRecord, error)
}
