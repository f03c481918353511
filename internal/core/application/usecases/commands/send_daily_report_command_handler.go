package commands

import (
	"context"
	"fmt"
	"strings"

	"tailoring/internal/core/domain/model/notification"
	"tailoring/internal/core/domain/model/person"
	"tailoring/internal/core/ports"
)

const dailyReportSubject = "Order Completed Report"

// SendDailyReportCommandHandler summarises the orders completed on one day and queues the
// summary for every Owner. Nothing is sent when no order completed that day.
type SendDailyReportCommandHandler struct {
	reader     ports.OrderReportReader
	uowFactory AuditUoWFactory
}

func NewSendDailyReportCommandHandler(
	reader ports.OrderReportReader,
	uowFactory AuditUoWFactory,
) SendDailyReportCommandHandler {
	return SendDailyReportCommandHandler{
		reader:     reader,
		uowFactory: uowFactory,
	}
}

// Handle returns the number of messages queued.
func (h SendDailyReportCommandHandler) Handle(ctx context.Context, cmd SendDailyReportCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	completed, err := h.reader.ListCompletedBetween(ctx, cmd.From(), cmd.To())
	if err != nil {
		return 0, err
	}
	if len(completed) == 0 {
		return 0, nil
	}

	body := DailyReportBody(completed)

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	owners, err := uow.PersonRepository().GetAllByRole(ctx, person.Owner)
	if err != nil {
		return 0, err
	}

	aggregateID := "daily-report:" + cmd.Day().Format("2006-01-02")
	outbox := uow.NotificationOutbox()

	for _, owner := range owners {
		msg, err := notification.NewMessage(owner.Email(), dailyReportSubject, body)
		if err != nil {
			return 0, err
		}
		if err = outbox.Enqueue(ctx, aggregateID, msg); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(owners), nil
}

// DailyReportBody renders the report listing the given orders in order.
func DailyReportBody(completed []ports.OrderDetails) string {
	var b strings.Builder
	b.WriteString("Hello Sir,\n\nHere is the Order Details that have been Completed Today...")
	for i, o := range completed {
		fmt.Fprintf(&b, "\n\n%d. orderId = %s\n  tailorName= %s\n  fabric = %s", i+1, o.OrderID, o.TailorName, o.Fabric)
	}
	return b.String()
}
