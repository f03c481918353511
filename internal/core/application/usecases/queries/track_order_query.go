// Package queries contains the read side of the tailoring service.
// Queries bypass the domain model and read the tables directly.
package queries

import (
	"errors"

	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/pkg/guard"
)

var ErrTrackOrderQueryIsNotConstructed = errors.New(
	"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
)

// TrackOrderQuery asks for the current stage of one order.
//
// Example:
//
//	query, err := NewTrackOrderQuery(r.URL.Query().Get("orderId"))
//	if err != nil {
//	    return err
//	}
//	status, err := handler.Handle(ctx, query)
//	if errors.Is(err, ErrOrderNotFound) {
//	    // 404
//	}
type TrackOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewTrackOrderQuery parses orderID. A malformed id can never match an order,
// so it is reported as ErrOrderNotFound.
func NewTrackOrderQuery(orderID string) (TrackOrderQuery, error) {
	id, err := kernel.UUIDFromString(orderID)
	if err != nil {
		return TrackOrderQuery{}, errors.Join(ErrOrderNotFound, err)
	}
	return TrackOrderQuery{
		orderID: id,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q TrackOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

// TrackOrderQueryResponse is the customer facing view of an order.
type TrackOrderQueryResponse struct {
	OrderID string
	Fabric  string
	Stage   string
}
