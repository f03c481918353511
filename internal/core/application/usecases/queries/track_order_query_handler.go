package queries

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrOrderNotFound carries the text returned to the customer for an unknown order id.
var ErrOrderNotFound = errors.New("Order with this id does not exist") //nolint:staticcheck,revive // user facing text

type TrackOrderQueryHandler struct {
	db *gorm.DB
}

func NewTrackOrderQueryHandler(db *gorm.DB) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{db: db}
}

func (h TrackOrderQueryHandler) Handle(ctx context.Context, query TrackOrderQuery) (TrackOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackOrderQueryResponse{}, err
	}

	var rows []TrackOrderQueryResponse
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id::text AS order_id,
			fabric,
			stage
		FROM orders
		WHERE id = ?
	`, query.OrderID().Google()).Scan(&rows).Error
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}
	if len(rows) == 0 {
		return TrackOrderQueryResponse{}, ErrOrderNotFound
	}

	return rows[0], nil
}
