// Package ports defines the contracts between the dispatch core and its adapters:
// the entity store, the event bus and the credential collaborator.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes with compare-and-swap on the version read by Get.
	// A lost race returns *errs.ConflictError and a missing row *errs.ObjectNotFoundError.
	// On success the aggregate's version is advanced.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order or returns *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
