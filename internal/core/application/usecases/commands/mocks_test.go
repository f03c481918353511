package commands_test

import (
	"context"
	"time"

	"tailoring/internal/core/application/usecases/commands"
	"tailoring/internal/core/domain/model/fabric"
	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/notification"
	"tailoring/internal/core/domain/model/order"
	"tailoring/internal/core/domain/model/person"
	"tailoring/internal/core/domain/model/tailor"
	"tailoring/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllUncompleted(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockTailorRepository struct{ mock.Mock }

func (m *MockTailorRepository) Add(ctx context.Context, t *tailor.Tailor) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTailorRepository) Get(ctx context.Context, id int64) (*tailor.Tailor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tailor.Tailor), args.Error(1)
}

func (m *MockTailorRepository) GetAllFree(ctx context.Context) ([]*tailor.Tailor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tailor.Tailor), args.Error(1)
}

func (m *MockTailorRepository) Occupy(ctx context.Context, t *tailor.Tailor) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTailorRepository) Release(ctx context.Context, tailorID int64, orderID kernel.UUID) error {
	args := m.Called(ctx, tailorID, orderID)
	return args.Error(0)
}

type MockPersonRepository struct{ mock.Mock }

func (m *MockPersonRepository) Add(ctx context.Context, p *person.Person) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPersonRepository) Get(ctx context.Context, id int64) (*person.Person, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*person.Person), args.Error(1)
}

func (m *MockPersonRepository) GetAllByRole(ctx context.Context, role person.Role) ([]*person.Person, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*person.Person), args.Error(1)
}

type MockFabricRepository struct{ mock.Mock }

func (m *MockFabricRepository) Add(ctx context.Context, f fabric.Fabric) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFabricRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

type MockOutbox struct{ mock.Mock }

func (m *MockOutbox) Enqueue(ctx context.Context, aggregateID string, msg notification.Message) error {
	args := m.Called(ctx, aggregateID, msg)
	return args.Error(0)
}

func (m *MockOutbox) GetPending(ctx context.Context, limit int) ([]ports.PendingNotification, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.PendingNotification), args.Error(1)
}

func (m *MockOutbox) MarkPublished(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) TailorRepository() ports.TailorRepository {
	args := m.Called()
	return args.Get(0).(ports.TailorRepository)
}

func (m *MockUoW) PersonRepository() ports.PersonRepository {
	args := m.Called()
	return args.Get(0).(ports.PersonRepository)
}

func (m *MockUoW) FabricRepository() ports.FabricRepository {
	args := m.Called()
	return args.Get(0).(ports.FabricRepository)
}

func (m *MockUoW) NotificationOutbox() ports.NotificationOutbox {
	args := m.Called()
	return args.Get(0).(ports.NotificationOutbox)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockStageUoWFactory struct{ mock.Mock }

func (m *MockStageUoWFactory) Create() commands.StageUoW {
	args := m.Called()
	return args.Get(0).(commands.StageUoW)
}

type MockAuditUoWFactory struct{ mock.Mock }

func (m *MockAuditUoWFactory) Create() commands.AuditUoW {
	args := m.Called()
	return args.Get(0).(commands.AuditUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

type MockStageSubmitter struct{ mock.Mock }

func (m *MockStageSubmitter) Submit(ctx context.Context, sc commands.StageContext) error {
	args := m.Called(ctx, sc)
	return args.Error(0)
}

type MockReportReader struct{ mock.Mock }

func (m *MockReportReader) ListCompletedBetween(ctx context.Context, from, to time.Time) ([]ports.OrderDetails, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OrderDetails), args.Error(1)
}

func (m *MockReportReader) ListStuckSince(ctx context.Context, before time.Time) ([]ports.OrderDetails, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OrderDetails), args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, msg notification.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) Send(ctx context.Context, msg notification.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

var fixedNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}
