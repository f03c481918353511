package commands

import (
	"fmt"

	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/notification"
	"tailoring/internal/core/domain/model/order"
	"tailoring/internal/pkg/errs"
)

// stageNotice is the customer facing text sent when an order enters a stage.
type stageNotice struct {
	subject    string
	bodyFormat string
}

// stageNotices has one entry per reachable stage. PLACED is announced by the
// HTTP response itself.
var stageNotices = map[order.Stage]stageNotice{
	order.Confirm:      {"Order Confirmed", "Your order is confirmed. OrderId=%s"},
	order.FabricCut:    {"Fabric Being Cut", "Your fabric is being cut. OrderId=%s"},
	order.Stitching:    {"Stitching Started", "Stitching has started. OrderId=%s"},
	order.QualityCheck: {"Quality Check", "Quality check is done. OrderId=%s"},
	order.Dispatched:   {"Order Dispatched", "Your order is dispatched. OrderId=%s"},
}

// StageNotification builds the message telling the owner at to that the order entered stage.
func StageNotification(stage order.Stage, orderID kernel.UUID, to string) (notification.Message, error) {
	notice, ok := stageNotices[stage]
	if !ok {
		return notification.Message{}, errs.NewValueIsInvalidErrorWithCause(
			"stage",
			fmt.Errorf("%s has no notification", stage),
		)
	}
	return notification.NewMessage(to, notice.subject, fmt.Sprintf(notice.bodyFormat, orderID))
}
