package queries_test

import (
	"testing"
	"time"

	"fueldelivery/internal/adapters/out/postgres"
	"fueldelivery/internal/adapters/out/postgres/dbtest"
	"fueldelivery/internal/core/application/usecases/queries"
	"fueldelivery/internal/core/domain/model/chat"
	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"
	"fueldelivery/internal/core/ports"
	"fueldelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	accounts dbtest.Accounts
	uow      ports.UnitOfWork
}

func newFixture(t *testing.T) fixture {
	db := dbtest.OpenSQLite(t)
	return fixture{
		db:       db,
		accounts: dbtest.SeedAccounts(t, db),
		uow:      postgres.NewGormUnitOfWorkFactory(db, nil, nil).Create(),
	}
}

func (f fixture) place(t *testing.T, at time.Time, mutate func(o *order.Order)) *order.Order {
	o := f.accounts.NewOrder(t, at)
	if mutate != nil {
		mutate(o)
	}
	require.NoError(t, f.uow.OrderRepository().Add(t.Context(), o))
	return o
}

func ids(views []queries.OrderView) []kernel.UUID {
	out := make([]kernel.UUID, 0, len(views))
	for _, v := range views {
		out = append(out, v.ID)
	}
	return out
}

func TestGetOrderQueryHandler(t *testing.T) {
	f := newFixture(t)
	h := queries.NewGetOrderQueryHandler(f.db)

	t.Run("should return the stored order", func(t *testing.T) {
		placed := f.place(t, time.Now(), nil)
		q, err := queries.NewGetOrderQuery(placed.ID())
		require.NoError(t, err)

		view, err := h.Handle(t.Context(), q)

		require.NoError(t, err)
		assert.Equal(t, placed.ID(), view.ID)
		assert.Equal(t, f.accounts.Customer, view.UserID)
		assert.Equal(t, order.Pending, view.Status)
		assert.Equal(t, int64(1), view.Version)
		assert.Equal(t, "Thamel, Kathmandu", view.Address)
		assert.Equal(t, "10", view.Quantity.String())
		assert.Nil(t, view.DriverID)
	})

	t.Run("should hide soft-deleted orders", func(t *testing.T) {
		placed := f.place(t, time.Now(), nil)
		require.NoError(t, placed.MarkDeleted(time.Now()))
		require.NoError(t, f.uow.OrderRepository().Update(t.Context(), placed))
		q, err := queries.NewGetOrderQuery(placed.ID())
		require.NoError(t, err)

		_, err = h.Handle(t.Context(), q)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should reject an unconstructed query", func(t *testing.T) {
		_, err := h.Handle(t.Context(), queries.GetOrderQuery{})

		require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
	})
}

func TestListOrdersQueryHandler(t *testing.T) {
	f := newFixture(t)
	h := queries.NewListOrdersQueryHandler(f.db)
	now := time.Now()

	first := f.place(t, now.Add(-2*time.Minute), nil)
	second := f.place(t, now.Add(-time.Minute), func(o *order.Order) {
		_, err := o.ChangeStatus(order.InProgress, now)
		require.NoError(t, err)
	})
	deleted := f.place(t, now, func(o *order.Order) {
		require.NoError(t, o.MarkDeleted(now))
	})

	otherSpec := f.accounts.OrderSpec(t)
	otherSpec.UserID = f.accounts.Stranger
	other, err := order.NewOrder(kernel.NewUUID(), otherSpec, now.Add(-3*time.Minute))
	require.NoError(t, err)
	require.NoError(t, f.uow.OrderRepository().Add(t.Context(), other))

	t.Run("should list a user's live orders newest first", func(t *testing.T) {
		q, err := queries.NewListUserOrdersQuery(f.accounts.Customer, nil)
		require.NoError(t, err)

		views, err := h.Handle(t.Context(), q)

		require.NoError(t, err)
		assert.Equal(t, []kernel.UUID{second.ID(), first.ID()}, ids(views))
		assert.NotContains(t, ids(views), deleted.ID())
	})

	t.Run("should filter by status", func(t *testing.T) {
		status := order.InProgress
		q, err := queries.NewListStationOrdersQuery(f.accounts.Station, &status)
		require.NoError(t, err)

		views, err := h.Handle(t.Context(), q)

		require.NoError(t, err)
		assert.Equal(t, []kernel.UUID{second.ID()}, ids(views))
	})

	t.Run("should list every live order", func(t *testing.T) {
		q, err := queries.NewListAllOrdersQuery(nil)
		require.NoError(t, err)

		views, err := h.Handle(t.Context(), q)

		require.NoError(t, err)
		assert.Equal(t, []kernel.UUID{second.ID(), first.ID(), other.ID()}, ids(views))
	})

	t.Run("should return an empty list for an unknown user", func(t *testing.T) {
		q, err := queries.NewListUserOrdersQuery(kernel.NewUUID(), nil)
		require.NoError(t, err)

		views, err := h.Handle(t.Context(), q)

		require.NoError(t, err)
		assert.NotNil(t, views)
		assert.Empty(t, views)
	})

	t.Run("should reject an invalid status filter", func(t *testing.T) {
		status := order.Status(42)
		_, err := queries.NewListAllOrdersQuery(&status)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestListMessagesQueryHandler(t *testing.T) {
	f := newFixture(t)
	h := queries.NewListMessagesQueryHandler(f.db)
	a, b, c := f.accounts.Customer, f.accounts.Driver, f.accounts.Stranger
	now := time.Now()

	send := func(from, to kernel.UUID, content string, at time.Time) {
		msg, err := chat.NewMessage(kernel.NewUUID(), from, to, content, at)
		require.NoError(t, err)
		require.NoError(t, f.uow.MessageRepository().Add(t.Context(), msg))
	}
	send(a, b, "hello", now.Add(time.Second))
	send(a, b, "hi", now)
	send(b, a, "coming", now.Add(2*time.Second))
	send(c, b, "unrelated", now.Add(3*time.Second))

	t.Run("should list sent and received messages oldest first", func(t *testing.T) {
		q, err := queries.NewListMessagesQuery(a)
		require.NoError(t, err)

		views, err := h.Handle(t.Context(), q)

		require.NoError(t, err)
		contents := make([]string, 0, len(views))
		for _, v := range views {
			contents = append(contents, v.Content)
		}
		assert.Equal(t, []string{"hi", "hello", "coming"}, contents)
	})

	t.Run("should return an empty history", func(t *testing.T) {
		q, err := queries.NewListMessagesQuery(kernel.NewUUID())
		require.NoError(t, err)

		views, err := h.Handle(t.Context(), q)

		require.NoError(t, err)
		assert.Empty(t, views)
	})
}
