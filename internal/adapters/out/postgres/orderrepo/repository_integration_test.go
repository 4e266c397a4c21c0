package orderrepo_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fueldelivery/internal/adapters/out/postgres/dbtest"
	"fueldelivery/internal/adapters/out/postgres/orderrepo"
	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"
	"fueldelivery/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite runs the repository against PostgreSQL
// with the production migrations applied.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	db         *gorm.DB
	accounts   dbtest.Accounts
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	suite.db = dbtest.StartPostgres(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	dbtest.Truncate(suite.T(), suite.db)
	suite.accounts = dbtest.SeedAccounts(suite.T(), suite.db)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()
	testOrder := suite.accounts.NewOrder(suite.T(), time.Now())

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	stored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal("10", stored.Quantity().String())
	suite.Equal("500", stored.TotalCost().String())
	suite.Equal(order.Pending, stored.Status())
	suite.Equal(int64(1), stored.Version())
	suite.WithinDuration(testOrder.CreatedAt(), stored.CreatedAt(), time.Millisecond)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DanglingReference_Fails() {
	ctx := context.Background()
	spec := suite.accounts.OrderSpec(suite.T())
	spec.StationID = suite.accounts.Customer

	testOrder, err := order.NewOrder(kernel.NewUUID(), spec, time.Now())
	suite.Require().NoError(err)

	suite.Error(suite.repository.Add(ctx, testOrder), "foreign key to fuel_stations")
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StatusTransitions_BumpVersion() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	testOrder := suite.accounts.NewOrder(suite.T(), time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	for i, next := range []order.Status{order.InProgress, order.Completed} {
		loaded, err := suite.repository.Get(ctx, testOrder.ID())
		suite.Require().NoError(err)

		_, err = loaded.ChangeStatus(next, time.Now())
		suite.Require().NoError(err)
		suite.Require().NoError(suite.repository.Update(ctx, loaded))

		stored, err := suite.repository.Get(ctx, testOrder.ID())
		suite.Require().NoError(err)
		suite.Equal(next, stored.Status())
		suite.Equal(int64(i+2), stored.Version())
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ConcurrentWriters_ExactlyOneWins() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	testOrder := suite.accounts.NewOrder(suite.T(), time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	const writers = 8
	loaded := make([]*order.Order, writers)
	for i := range loaded {
		o, err := suite.repository.Get(ctx, testOrder.ID())
		suite.Require().NoError(err)
		_, err = o.ChangeStatus(order.InProgress, time.Now())
		suite.Require().NoError(err)
		loaded[i] = o
	}

	var wg sync.WaitGroup
	results := make(chan error, writers)
	for _, o := range loaded {
		wg.Add(1)
		go func() {
			defer wg.Done()
			repo := orderrepo.NewGormOrderRepository(suite.db, new(noopTracker))
			results <- repo.Update(ctx, o)
		}()
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, errs.ErrVersionConflict):
			conflicts++
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}

	suite.Equal(1, wins)
	suite.Equal(writers-1, conflicts)

	stored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(int64(2), stored.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_SoftDelete_HidesOrder() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	testOrder := suite.accounts.NewOrder(suite.T(), time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.MarkDeleted(time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	_, err := suite.repository.Get(ctx, testOrder.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	pending, err := suite.repository.ListPendingPlacedBefore(ctx, time.Now().Add(time.Minute), 10)
	suite.Require().NoError(err)
	suite.Empty(pending)
}

type noopTracker struct{}

func (*noopTracker) TrackAggregate(kernel.UUID, any) {}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
