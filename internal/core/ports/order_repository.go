// Package ports defines the contracts between the tailoring core and its adapters:
// the catalog store repositories, the transaction boundary and the notification transport.
package ports

import (
	"context"

	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates.
type OrderRepository interface {
	// Add stores a newly accepted order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Save upserts the order keyed by id. Saving the same state twice changes nothing.
	Save(ctx context.Context, aggregate *order.Order) error

	// Get returns the order or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllUncompleted returns every order that has not reached DISPATCHED,
	// oldest acceptance first. Used to resume progression after a restart.
	GetAllUncompleted(ctx context.Context) ([]*order.Order, error)
}
