package commands

import (
	"errors"
	"fmt"
	"time"

	"tailoring/internal/pkg/errs"
	"tailoring/internal/pkg/guard"
)

var ErrAlertStuckOrdersCommandIsNotConstructed = errors.New(
	"AlertStuckOrdersCommand must be created via NewAlertStuckOrdersCommand constructor",
)

// AlertStuckOrdersCommand looks for uncompleted orders that have stayed in their stage
// for longer than threshold at the instant now.
type AlertStuckOrdersCommand struct {
	threshold time.Duration
	before    time.Time

	guard guard.ConstructorGuard
}

func NewAlertStuckOrdersCommand(now time.Time, threshold time.Duration) (AlertStuckOrdersCommand, error) {
	if now.IsZero() {
		return AlertStuckOrdersCommand{}, errs.NewValueIsRequiredError("now")
	}
	if threshold <= 0 {
		return AlertStuckOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"threshold",
			fmt.Errorf("%s is not positive", threshold),
		)
	}

	return AlertStuckOrdersCommand{
		threshold: threshold,
		before:    now.Add(-threshold),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AlertStuckOrdersCommand) Threshold() time.Duration {
	return c.threshold
}

// Before is the stage entry instant an order must predate to count as stuck.
func (c AlertStuckOrdersCommand) Before() time.Time {
	return c.before
}

func (c AlertStuckOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAlertStuckOrdersCommandIsNotConstructed)
}
