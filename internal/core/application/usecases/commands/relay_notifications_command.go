package commands

import (
	"errors"
	"fmt"

	"tailoring/internal/pkg/errs"
	"tailoring/internal/pkg/guard"
)

var ErrRelayNotificationsCommandIsNotConstructed = errors.New(
	"RelayNotificationsCommand must be created via NewRelayNotificationsCommand constructor",
)

// RelayNotificationsCommand moves at most batchSize queued notifications to the broker.
type RelayNotificationsCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewRelayNotificationsCommand(batchSize int) (RelayNotificationsCommand, error) {
	if batchSize <= 0 {
		return RelayNotificationsCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"batch size",
			fmt.Errorf("%d is not greater than 0", batchSize),
		)
	}
	return RelayNotificationsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RelayNotificationsCommand) BatchSize() int {
	return c.batchSize
}

func (c RelayNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrRelayNotificationsCommandIsNotConstructed)
}
