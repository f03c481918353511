package reportrepo_test

import (
	"context"
	"testing"
	"time"

	"tailoring/internal/adapters/out/postgres/orderrepo"
	"tailoring/internal/adapters/out/postgres/personrepo"
	"tailoring/internal/adapters/out/postgres/pgtest"
	"tailoring/internal/adapters/out/postgres/reportrepo"
	"tailoring/internal/adapters/out/postgres/tailorrepo"
	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/order"
	"tailoring/internal/core/domain/model/person"
	"tailoring/internal/core/domain/model/tailor"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type ReportReaderIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	reader    *reportrepo.GormOrderReportReader
	orders    *orderrepo.GormOrderRepository
}

var day = time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)

func (suite *ReportReaderIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()
	container, db, err := pgtest.Start(ctx)
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
	suite.reader = reportrepo.NewGormOrderReportReader(db)
	suite.orders = orderrepo.NewGormOrderRepository(db)

	manager, _ := person.NewPerson(20, "Maya", "Nair", "maya@example.com", person.Manager)
	suite.Require().NoError(personrepo.NewGormPersonRepository(db).Add(ctx, manager))

	tailors := tailorrepo.NewGormTailorRepository(db)
	ravi, _ := tailor.NewTailor(1, "Ravi", []string{"Silk"}, 20)
	orphan, _ := tailor.NewTailor(2, "Meena", []string{"Cotton"}, 21)
	suite.Require().NoError(tailors.Add(ctx, ravi))
	suite.Require().NoError(tailors.Add(ctx, orphan))
}

func (suite *ReportReaderIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *ReportReaderIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ReportReaderIntegrationTestSuite) storeOrder(tailorID int64, upTo order.Stage, stageAt time.Time) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), 7, "Silk", tailorID, stageAt.Add(-time.Hour))
	suite.Require().NoError(err)
	for stage := order.Confirm; stage <= upTo; stage++ {
		suite.Require().NoError(o.Advance(stage, stageAt))
	}
	suite.Require().NoError(suite.orders.Add(context.Background(), o))
	return o
}

func (suite *ReportReaderIntegrationTestSuite) TestListCompletedBetween_BoundsInclusive() {
	ctx := context.Background()
	start := suite.storeOrder(1, order.Dispatched, day)
	end := suite.storeOrder(1, order.Dispatched, day.Add(24*time.Hour-time.Second))
	suite.storeOrder(1, order.Dispatched, day.Add(24*time.Hour))
	suite.storeOrder(1, order.Dispatched, day.Add(-time.Second))
	suite.storeOrder(1, order.Stitching, day.Add(time.Hour))

	got, err := suite.reader.ListCompletedBetween(ctx, day, day.Add(24*time.Hour-time.Nanosecond))

	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal(start.ID().String(), got[0].OrderID)
	suite.Equal(end.ID().String(), got[1].OrderID)
	suite.Equal("Ravi", got[0].TailorName)
	suite.Equal("Silk", got[0].Fabric)
	suite.Equal("DISPATCHED", got[0].Stage)
	suite.Require().NotNil(got[0].CompletedAt)
}

func (suite *ReportReaderIntegrationTestSuite) TestListStuckSince() {
	ctx := context.Background()
	now := day.Add(48 * time.Hour)
	stuck := suite.storeOrder(1, order.Stitching, now.Add(-25*time.Hour))
	noManager := suite.storeOrder(2, order.Confirm, now.Add(-30*time.Hour))
	suite.storeOrder(1, order.FabricCut, now.Add(-time.Hour))
	suite.storeOrder(1, order.Dispatched, now.Add(-72*time.Hour))

	got, err := suite.reader.ListStuckSince(ctx, now.Add(-24*time.Hour))

	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal(noManager.ID().String(), got[0].OrderID)
	suite.Empty(got[0].ManagerEmail)
	suite.Equal(stuck.ID().String(), got[1].OrderID)
	suite.Equal("maya@example.com", got[1].ManagerEmail)
	suite.Equal("STITCHING", got[1].Stage)
	suite.True(got[1].StageInTime.Equal(now.Add(-25 * time.Hour)))
}

func TestReportReaderIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ReportReaderIntegrationTestSuite))
}
