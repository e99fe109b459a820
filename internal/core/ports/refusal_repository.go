package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/refusal"
)

// RefusalRepository defines the persistence contract for the append-only
// refusal ledger. Records are never updated or deleted.
type RefusalRepository interface {
	// Add appends a refusal record to the ledger.
	Add(ctx context.Context, record *refusal.Record) error

	// GetByOrder retrieves all refusal records for an order, oldest first.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*refusal.Record, error)

	// CountAndLastRefuser returns how many refusals the order has collected
	// and, when at least one exists, the courier that refused most recently.
	CountAndLastRefuser(ctx context.Context, orderID kernel.UUID) (int, *kernel.UUID, error)
}
