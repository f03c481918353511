package commands_test

import (
	"errors"
	"testing"

	"tailoring/internal/core/application/usecases/commands"
	"tailoring/internal/core/domain/model/notification"
	"tailoring/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingNotifications(t *testing.T, n int) []ports.PendingNotification {
	t.Helper()
	out := make([]ports.PendingNotification, 0, n)
	for i := 1; i <= n; i++ {
		msg, err := notification.NewMessage("asha@example.com", "Order Confirmed", "body")
		require.NoError(t, err)
		out = append(out, ports.PendingNotification{ID: int64(i), AggregateID: "o-1", Message: msg, CreatedAt: fixedNow})
	}
	return out
}

func TestRelayNotificationsCommandHandler_Handle_PublishesInOrder(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRelayNotificationsCommand(10)
	require.NoError(t, err)
	pending := pendingNotifications(t, 2)

	outbox := new(MockOutbox)
	publisher := new(MockPublisher)
	uow := new(MockUoW)
	factory := new(MockOutboxUoWFactory)

	factory.On("Create").Return(uow).Once()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("NotificationOutbox").Return(outbox).Once(),
		outbox.On("GetPending", ctx, 10).Return(pending, nil).Once(),
		publisher.On("Publish", ctx, pending[0].Message).Return(nil).Once(),
		outbox.On("MarkPublished", ctx, int64(1), fixedNow).Return(nil).Once(),
		publisher.On("Publish", ctx, pending[1].Message).Return(nil).Once(),
		outbox.On("MarkPublished", ctx, int64(2), fixedNow).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	published, err := commands.NewRelayNotificationsCommandHandler(factory, publisher, fixedClock).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, published)
	outbox.AssertExpectations(t)
	publisher.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRelayNotificationsCommandHandler_Handle_StopsAtFirstFailure(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewRelayNotificationsCommand(10)
	pending := pendingNotifications(t, 3)
	brokerErr := errors.New("channel closed")

	outbox := new(MockOutbox)
	publisher := new(MockPublisher)
	uow := new(MockUoW)
	factory := new(MockOutboxUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("NotificationOutbox").Return(outbox).Once()
	outbox.On("GetPending", ctx, 10).Return(pending, nil).Once()
	publisher.On("Publish", ctx, pending[0].Message).Return(nil).Once()
	outbox.On("MarkPublished", ctx, int64(1), fixedNow).Return(nil).Once()
	publisher.On("Publish", ctx, pending[1].Message).Return(brokerErr).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	published, err := commands.NewRelayNotificationsCommandHandler(factory, publisher, fixedClock).Handle(ctx, cmd)

	require.ErrorIs(t, err, brokerErr)
	assert.Equal(t, 1, published)
	outbox.AssertNotCalled(t, "MarkPublished", ctx, int64(2), fixedNow)
	outbox.AssertNotCalled(t, "MarkPublished", ctx, int64(3), fixedNow)
	publisher.AssertNumberOfCalls(t, "Publish", 2)
	uow.AssertExpectations(t)
}

func TestRelayNotificationsCommandHandler_Handle_Empty(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewRelayNotificationsCommand(5)

	outbox := new(MockOutbox)
	publisher := new(MockPublisher)
	uow := new(MockUoW)
	factory := new(MockOutboxUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("NotificationOutbox").Return(outbox).Once()
	outbox.On("GetPending", ctx, 5).Return([]ports.PendingNotification{}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	published, err := commands.NewRelayNotificationsCommandHandler(factory, publisher, fixedClock).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, published)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestNewRelayNotificationsCommand_InvalidBatch(t *testing.T) {
	_, err := commands.NewRelayNotificationsCommand(0)

	assert.Error(t, err)
}
