package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"fueldelivery/internal/core/application/usecases/commands"
	"fueldelivery/internal/core/domain/model/chat"
	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"
	"fueldelivery/internal/core/ports"
	"fueldelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
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

func (m *MockOrderRepository) ListPendingPlacedBefore(
	ctx context.Context,
	cutoff time.Time,
	limit int,
) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockMessageRepository struct{ mock.Mock }

func (m *MockMessageRepository) Add(ctx context.Context, msg *chat.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockMessageUoW struct{ mock.Mock }

func (m *MockMessageUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMessageUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMessageUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMessageUoW) MessageRepository() ports.MessageRepository {
	args := m.Called()
	return args.Get(0).(ports.MessageRepository)
}

type MockMessageUoWFactory struct{ mock.Mock }

func (m *MockMessageUoWFactory) Create() commands.MessageUoW {
	args := m.Called()
	return args.Get(0).(commands.MessageUoW)
}

type MockAccountDirectory struct{ mock.Mock }

func (m *MockAccountDirectory) UserExists(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountDirectory) StationExists(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountDirectory) FuelTypeExists(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountDirectory) StationOwner(ctx context.Context, stationID kernel.UUID) (*kernel.UUID, error) {
	args := m.Called(ctx, stationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kernel.UUID), args.Error(1)
}

func newTestSpec(t *testing.T) order.Spec {
	t.Helper()

	location, err := kernel.NewGeoPoint(27.7172, 85.3240, "Thamel, Kathmandu")
	require.NoError(t, err)
	phone, err := kernel.NewPhone("+9779812345678")
	require.NoError(t, err)

	return order.Spec{
		UserID:     kernel.NewUUID(),
		StationID:  kernel.NewUUID(),
		FuelTypeID: kernel.NewUUID(),
		Quantity:   decimal.NewFromInt(10),
		TotalCost:  decimal.NewFromInt(500),
		Location:   location,
		Phone:      phone,
	}
}

func restoreTestOrder(t *testing.T, status order.Status, version int64) *order.Order {
	t.Helper()

	now := time.Now().Add(-time.Hour)
	o, err := order.RestoreOrder(kernel.NewUUID(), newTestSpec(t), status, version, now, now)
	require.NoError(t, err)
	return o
}

// memOrderStore keeps orders as plain snapshots and enforces the same
// compare-and-swap on version that the SQL repository does.
type memOrderStore struct {
	mu      sync.Mutex
	records map[kernel.UUID]memOrderRecord
}

type memOrderRecord struct {
	spec      order.Spec
	status    order.Status
	version   int64
	createdAt time.Time
	updatedAt time.Time
	deleted   bool
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{records: make(map[kernel.UUID]memOrderRecord)}
}

func (s *memOrderStore) put(o *order.Order) {
	spec := order.Spec{
		UserID:     o.UserID(),
		StationID:  o.StationID(),
		DriverID:   o.Driver(),
		FuelTypeID: o.FuelTypeID(),
		Quantity:   o.Quantity(),
		TotalCost:  o.TotalCost(),
		Location:   o.Location(),
		Phone:      o.Phone(),
	}
	s.records[o.ID()] = memOrderRecord{
		spec:      spec,
		status:    o.Status(),
		version:   o.Version(),
		createdAt: o.CreatedAt(),
		updatedAt: o.UpdatedAt(),
		deleted:   o.IsDeleted(),
	}
}

func (s *memOrderStore) Add(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(o)
	o.MarkPersisted()
	return nil
}

func (s *memOrderStore) Update(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[o.ID()]
	if !ok || rec.deleted {
		return errs.NewObjectNotFoundError("order", o.ID())
	}
	if rec.version != o.BaseVersion() {
		return errs.NewVersionConflictError("order", o.ID(), o.BaseVersion())
	}
	s.put(o)
	o.MarkPersisted()
	return nil
}

func (s *memOrderStore) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok || rec.deleted {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return order.RestoreOrder(id, rec.spec, rec.status, rec.version, rec.createdAt, rec.updatedAt)
}

func (s *memOrderStore) ListPendingPlacedBefore(_ context.Context, cutoff time.Time, limit int) ([]*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*order.Order
	for id, rec := range s.records {
		if rec.deleted || rec.status != order.Pending || !rec.createdAt.Before(cutoff) || len(out) == limit {
			continue
		}
		o, err := order.RestoreOrder(id, rec.spec, rec.status, rec.version, rec.createdAt, rec.updatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *memOrderStore) snapshot(id kernel.UUID) memOrderRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[id]
}

type memOrderUoW struct{ store *memOrderStore }

func (u memOrderUoW) Begin(context.Context) error            { return nil }
func (u memOrderUoW) Commit(context.Context) error           { return nil }
func (u memOrderUoW) Rollback(context.Context) error         { return nil }
func (u memOrderUoW) OrderRepository() ports.OrderRepository { return u.store }

type memOrderUoWFactory struct{ store *memOrderStore }

func (f memOrderUoWFactory) Create() commands.OrderUoW { return memOrderUoW(f) }
