package ports

import (
	"context"
	"time"
)

// OrderDetails is an order with its tailor and the tailor's manager already resolved.
// Audit jobs read it as one value so nothing is loaded lazily later.
type OrderDetails struct {
	OrderID      string
	Fabric       string
	Stage        string
	StageInTime  time.Time
	CompletedAt  *time.Time
	TailorName   string
	ManagerEmail string
}

// OrderReportReader serves the audit queries.
type OrderReportReader interface {
	// ListCompletedBetween returns orders whose completion time lies in [from, to],
	// ordered by completion time.
	ListCompletedBetween(ctx context.Context, from, to time.Time) ([]OrderDetails, error)

	// ListStuckSince returns uncompleted orders that entered their current stage
	// before the given instant, oldest first.
	ListStuckSince(ctx context.Context, before time.Time) ([]OrderDetails, error)
}
