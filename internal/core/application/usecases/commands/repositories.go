// Package commands contains the dispatch coordinator's write operations.
// Implements the Command pattern for state changes in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction
// management, persistence, then post-commit event publication.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CourierRepoFactory provides access to the courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// RefusalRepoFactory provides access to the refusal ledger within a transaction.
	RefusalRepoFactory interface {
		RefusalRepository() ports.RefusalRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierUoW manages transactions for courier-only operations.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	// CourierUoWFactory creates new courier unit of work instances.
	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// UoW manages transactions across the order, courier and refusal
	// aggregates. Used by the dispatch operations that touch an order and
	// its courier together; cross-entity writes always go order first, then
	// courier, to keep lock ordering consistent.
	UoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
		RefusalRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
