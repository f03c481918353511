package commands

import (
	"context"
	"errors"
	"strings"

	"tailoring/internal/core/domain/model/order"
	"tailoring/internal/core/domain/model/tailor"
	"tailoring/internal/pkg/errs"
)

// StageContext is what travels with an order from one stage step to the next.
// Exactly one step owns it at a time, so it is never shared between goroutines concurrently.
type StageContext struct {
	Order      *order.Order
	Tailor     *tailor.Tailor
	OwnerEmail string
}

func (c StageContext) Validate() error {
	var err error
	if vErr := c.Order.Validate(); vErr != nil {
		err = errors.Join(err, vErr)
	}
	if vErr := c.Tailor.Validate(); vErr != nil {
		err = errors.Join(err, vErr)
	}
	if strings.TrimSpace(c.OwnerEmail) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("owner email"))
	}
	return err
}

// StageSubmitter accepts an order for background stage progression.
// Submit returns once the work is queued.
type StageSubmitter interface {
	Submit(ctx context.Context, sc StageContext) error
}
