package ports

import (
	"context"

	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/tailor"
)

// TailorRepository persists tailors. Occupy and Release are the only writers of a
// tailor's assignment; both are conditional on the row's current state, so the
// tailor row acts as the lock unit for the at-most-one-order rule.
type TailorRepository interface {
	Add(ctx context.Context, t *tailor.Tailor) error

	Get(ctx context.Context, id int64) (*tailor.Tailor, error)

	// GetAllFree returns unassigned tailors in catalog order (id ascending).
	// Inside a transaction the returned rows stay locked until commit; a concurrent
	// intake blocks on them and then reads the tailors left free.
	GetAllFree(ctx context.Context) ([]*tailor.Tailor, error)

	// Occupy persists t's assignment. It fails with tailor.ErrTailorIsOccupied
	// when the stored row already holds a different order.
	Occupy(ctx context.Context, t *tailor.Tailor) error

	// Release clears the assignment of tailorID only if it still holds orderID.
	Release(ctx context.Context, tailorID int64, orderID kernel.UUID) error
}
