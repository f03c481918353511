package commands

import (
	"context"

	"tailoring/internal/core/ports"
)

type DeliverNotificationCommandHandler struct {
	mailer ports.Mailer
}

func NewDeliverNotificationCommandHandler(mailer ports.Mailer) DeliverNotificationCommandHandler {
	return DeliverNotificationCommandHandler{mailer: mailer}
}

func (h DeliverNotificationCommandHandler) Handle(ctx context.Context, cmd DeliverNotificationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.mailer.Send(ctx, cmd.Message())
}
