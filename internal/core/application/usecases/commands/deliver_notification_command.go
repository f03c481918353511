package commands

import (
	"errors"

	"tailoring/internal/core/domain/model/notification"
	"tailoring/internal/pkg/guard"
)

var ErrDeliverNotificationCommandIsNotConstructed = errors.New(
	"DeliverNotificationCommand must be created via NewDeliverNotificationCommand constructor",
)

// DeliverNotificationCommand carries one consumed message to the mailer.
type DeliverNotificationCommand struct {
	message notification.Message

	guard guard.ConstructorGuard
}

func NewDeliverNotificationCommand(msg notification.Message) (DeliverNotificationCommand, error) {
	if err := msg.Validate(); err != nil {
		return DeliverNotificationCommand{}, err
	}
	return DeliverNotificationCommand{
		message: msg,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c DeliverNotificationCommand) Message() notification.Message {
	return c.message
}

func (c DeliverNotificationCommand) Validate() error {
	return c.guard.Validate(ErrDeliverNotificationCommandIsNotConstructed)
}
