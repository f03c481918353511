package commands_test

import (
	"testing"
	"time"

	"tailoring/internal/core/application/usecases/commands"
	"tailoring/internal/core/domain/model/notification"
	"tailoring/internal/core/ports"
	"tailoring/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAlertStuckOrdersCommand(t *testing.T) {
	cmd, err := commands.NewAlertStuckOrdersCommand(fixedNow, 24*time.Hour)

	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(-24*time.Hour), cmd.Before())

	_, err = commands.NewAlertStuckOrdersCommand(fixedNow, 0)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestAlertStuckOrdersCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAlertStuckOrdersCommand(fixedNow, 24*time.Hour)
	require.NoError(t, err)

	stageIn := fixedNow.Add(-30 * time.Hour)
	stuck := []ports.OrderDetails{
		{OrderID: "o-1", Fabric: "Silk", Stage: "STITCHING", StageInTime: stageIn, TailorName: "Ravi", ManagerEmail: "boss@example.com"},
		{OrderID: "o-2", Fabric: "Cotton", Stage: "CONFIRM", StageInTime: stageIn, TailorName: "Meena"},
	}

	reader := new(MockReportReader)
	outbox := new(MockOutbox)
	uow := new(MockUoW)
	factory := new(MockAuditUoWFactory)

	reader.On("ListStuckSince", ctx, cmd.Before()).Return(stuck, nil).Once()
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("NotificationOutbox").Return(outbox).Once()
	outbox.On("Enqueue", ctx, "o-1", mock.MatchedBy(func(m notification.Message) bool {
		return m.To == "boss@example.com" &&
			m.Subject == "Order is Stuck more than 1 day" &&
			m.MessageBody == "Hello Sir,\n\nThis order have been stuck for more than 1 day. Here is the order details:\n\n"+
				"orderId=o-1\ntailorName=Ravi\nfabricName=Silk\nstageName=STITCHING\nstageInTime="+stageIn.Format(time.RFC3339)
	})).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	queued, err := commands.NewAlertStuckOrdersCommandHandler(reader, factory).Handle(ctx, cmd)

	assert.Equal(t, 1, queued)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "o-2")
	outbox.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAlertStuckOrdersCommandHandler_Handle_NothingStuck(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewAlertStuckOrdersCommand(fixedNow, 24*time.Hour)

	reader := new(MockReportReader)
	factory := new(MockAuditUoWFactory)
	reader.On("ListStuckSince", ctx, cmd.Before()).Return(nil, nil).Once()

	queued, err := commands.NewAlertStuckOrdersCommandHandler(reader, factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, queued)
	factory.AssertNotCalled(t, "Create")
}

func TestStuckOrderSubject(t *testing.T) {
	assert.Equal(t, "Order is Stuck more than 1 day", commands.StuckOrderSubject(24*time.Hour))
	assert.Equal(t, "Order is Stuck more than 2 days", commands.StuckOrderSubject(48*time.Hour))
	assert.Equal(t, "Order is Stuck more than 6h0m0s", commands.StuckOrderSubject(6*time.Hour))
}
