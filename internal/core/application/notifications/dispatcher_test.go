package notifications_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fueldelivery/internal/adapters/out/realtime"
	"fueldelivery/internal/core/application/notifications"
	"fueldelivery/internal/core/domain/model/chat"
	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"
	"fueldelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
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
	owner, _ := args.Get(0).(*kernel.UUID)
	return owner, args.Error(1)
}

type harness struct {
	registry   *realtime.Registry
	dispatcher *notifications.Dispatcher
	orders     *MockOrderReader
	directory  *MockAccountDirectory
}

func newHarness() harness {
	registry := realtime.NewRegistry(16, nil)
	orders := new(MockOrderReader)
	directory := new(MockAccountDirectory)
	return harness{
		registry:   registry,
		dispatcher: notifications.NewDispatcher(realtime.NewBus(registry, nil, nil), orders, directory, nil),
		orders:     orders,
		directory:  directory,
	}
}

func (h harness) connect(t *testing.T, user *kernel.UUID) *realtime.Connection {
	t.Helper()
	conn := h.registry.Register(user)
	require.NoError(t, h.dispatcher.Connect(conn.ID()))
	return conn
}

type received struct {
	Type    string          `json:"type"`
	Topic   string          `json:"topic"`
	Payload json.RawMessage `json:"payload"`
}

func drain(t *testing.T, conn *realtime.Connection) []received {
	t.Helper()
	var out []received
	for {
		select {
		case raw := <-conn.Outbound():
			var r received
			require.NoError(t, json.Unmarshal(raw, &r))
			out = append(out, r)
		default:
			return out
		}
	}
}

func newOrder(t *testing.T, user, station kernel.UUID) *order.Order {
	t.Helper()
	location, err := kernel.NewGeoPoint(10, 10, "")
	require.NoError(t, err)
	phone, err := kernel.NewPhone("+15550000000")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), order.Spec{
		UserID:     user,
		StationID:  station,
		FuelTypeID: kernel.NewUUID(),
		Quantity:   decimal.NewFromInt(10),
		TotalCost:  decimal.NewFromInt(500),
		Location:   location,
		Phone:      phone,
	}, time.Now())
	require.NoError(t, err)
	return o
}

func sendChat(t *testing.T, d *notifications.Dispatcher, from, to kernel.UUID, content string) {
	t.Helper()
	msg, err := chat.NewMessage(kernel.NewUUID(), from, to, content, time.Now())
	require.NoError(t, err)
	require.NoError(t, d.Publish(t.Context(), msg.PullDomainEvents()...))
}

func TestDispatcher_Connect(t *testing.T) {
	h := newHarness()
	user := kernel.NewUUID()

	identified := h.connect(t, &user)
	anonymous := h.connect(t, nil)

	assert.Equal(t, []string{notifications.BroadcastTopic, notifications.UserTopic(user)}, h.registry.TopicsOf(identified.ID()))
	assert.Equal(t, []string{notifications.BroadcastTopic}, h.registry.TopicsOf(anonymous.ID()))
	require.ErrorIs(t, h.dispatcher.Connect("missing"), errs.ErrObjectNotFound)
}

func TestDispatcher_Publish_Chat(t *testing.T) {
	t.Run("should reach every session of both participants and nobody else", func(t *testing.T) {
		h := newHarness()
		a, b, c := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
		aPhone, aWeb := h.connect(t, &a), h.connect(t, &a)
		bConn := h.connect(t, &b)
		cConn := h.connect(t, &c)
		anon := h.connect(t, nil)

		sendChat(t, h.dispatcher, a, b, "hi")

		wantTopic := notifications.ChatTopic(chat.NewConversation(a, b))
		for _, conn := range []*realtime.Connection{aPhone, aWeb, bConn} {
			msgs := drain(t, conn)
			require.Len(t, msgs, 1)
			assert.Equal(t, notifications.TypeChat, msgs[0].Type)
			assert.Equal(t, wantTopic, msgs[0].Topic)

			var payload notifications.ChatPayload
			require.NoError(t, json.Unmarshal(msgs[0].Payload, &payload))
			assert.Equal(t, a.String(), payload.SenderID)
			assert.Equal(t, b.String(), payload.ReceiverID)
			assert.Equal(t, "hi", payload.Content)
		}
		assert.Empty(t, drain(t, cConn))
		assert.Empty(t, drain(t, anon))
	})

	t.Run("should deliver messages in send order", func(t *testing.T) {
		h := newHarness()
		a, b := kernel.NewUUID(), kernel.NewUUID()
		bConn := h.connect(t, &b)

		sendChat(t, h.dispatcher, a, b, "hi")
		sendChat(t, h.dispatcher, a, b, "hello")

		msgs := drain(t, bConn)
		require.Len(t, msgs, 2)
		var first, second notifications.ChatPayload
		require.NoError(t, json.Unmarshal(msgs[0].Payload, &first))
		require.NoError(t, json.Unmarshal(msgs[1].Payload, &second))
		assert.Equal(t, "hi", first.Content)
		assert.Equal(t, "hello", second.Content)
	})

	t.Run("should not fail when nobody is connected", func(t *testing.T) {
		h := newHarness()

		sendChat(t, h.dispatcher, kernel.NewUUID(), kernel.NewUUID(), "anyone?")
	})
}

func TestDispatcher_Publish_Orders(t *testing.T) {
	t.Run("should announce a placed order to the station and the customer", func(t *testing.T) {
		h := newHarness()
		customer, owner := kernel.NewUUID(), kernel.NewUUID()
		o := newOrder(t, customer, kernel.NewUUID())
		customerConn := h.connect(t, &customer)
		stationConn := h.connect(t, &owner)
		require.NoError(t, h.registry.Subscribe(stationConn.ID(), notifications.StationTopic(o.StationID())))

		require.NoError(t, h.dispatcher.Publish(t.Context(), o.PullDomainEvents()...))

		for _, conn := range []*realtime.Connection{customerConn, stationConn} {
			msgs := drain(t, conn)
			require.Len(t, msgs, 1)
			assert.Equal(t, notifications.TypeOrderPlaced, msgs[0].Type)
		}
	})

	t.Run("should send status updates once per connection", func(t *testing.T) {
		h := newHarness()
		customer, driver, stranger := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
		o := newOrder(t, customer, kernel.NewUUID())
		_, err := o.AssignDriver(driver, time.Now())
		require.NoError(t, err)
		_, err = o.ChangeStatus(order.InProgress, time.Now())
		require.NoError(t, err)
		o.PullDomainEvents()

		customerConn := h.connect(t, &customer)
		require.NoError(t, h.registry.Subscribe(customerConn.ID(), notifications.OrderTopic(o.ID())))
		driverConn := h.connect(t, &driver)
		strangerConn := h.connect(t, &stranger)

		_, err = o.ChangeStatus(order.Completed, time.Now())
		require.NoError(t, err)
		require.NoError(t, h.dispatcher.Publish(t.Context(), o.PullDomainEvents()...))

		for _, conn := range []*realtime.Connection{customerConn, driverConn} {
			msgs := drain(t, conn)
			require.Len(t, msgs, 1)
			assert.Equal(t, notifications.TypeOrderStatusUpdate, msgs[0].Type)
			var payload notifications.OrderStatusPayload
			require.NoError(t, json.Unmarshal(msgs[0].Payload, &payload))
			assert.Equal(t, o.ID().String(), payload.OrderID)
			assert.Equal(t, "COMPLETED", payload.Status)
			assert.Equal(t, "IN_PROGRESS", payload.PreviousStatus)
			assert.Equal(t, int64(4), payload.Version)
		}
		assert.Empty(t, drain(t, strangerConn))
	})

	t.Run("should tell the driver about an assignment", func(t *testing.T) {
		h := newHarness()
		driver := kernel.NewUUID()
		o := newOrder(t, kernel.NewUUID(), kernel.NewUUID())
		o.PullDomainEvents()
		driverConn := h.connect(t, &driver)

		_, err := o.AssignDriver(driver, time.Now())
		require.NoError(t, err)
		require.NoError(t, h.dispatcher.Publish(t.Context(), o.PullDomainEvents()...))

		msgs := drain(t, driverConn)
		require.Len(t, msgs, 1)
		assert.Equal(t, notifications.TypeOrderDriverAssigned, msgs[0].Type)
	})
}

func TestDispatcher_Subscribe(t *testing.T) {
	t.Run("should let the customer follow an order without a directory lookup", func(t *testing.T) {
		h := newHarness()
		customer := kernel.NewUUID()
		o := newOrder(t, customer, kernel.NewUUID())
		h.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
		conn := h.connect(t, &customer)

		topic, err := h.dispatcher.Subscribe(t.Context(), conn.ID(), notifications.ScopeOrder, o.ID())

		require.NoError(t, err)
		assert.Equal(t, notifications.OrderTopic(o.ID()), topic)
		assert.Contains(t, h.registry.SubscriptionsOf(topic), conn.ID())
		h.directory.AssertNotCalled(t, "StationOwner", mock.Anything, mock.Anything)
	})

	t.Run("should let the station owner follow an order", func(t *testing.T) {
		h := newHarness()
		owner := kernel.NewUUID()
		o := newOrder(t, kernel.NewUUID(), kernel.NewUUID())
		h.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
		h.directory.On("StationOwner", mock.Anything, o.StationID()).Return(&owner, nil).Once()
		conn := h.connect(t, &owner)

		_, err := h.dispatcher.Subscribe(t.Context(), conn.ID(), notifications.ScopeOrder, o.ID())

		require.NoError(t, err)
	})

	t.Run("should refuse strangers and anonymous listeners", func(t *testing.T) {
		h := newHarness()
		stranger := kernel.NewUUID()
		o := newOrder(t, kernel.NewUUID(), kernel.NewUUID())
		h.orders.On("Get", mock.Anything, o.ID()).Return(o, nil)
		h.directory.On("StationOwner", mock.Anything, o.StationID()).Return(nil, nil)

		conn := h.connect(t, &stranger)
		_, err := h.dispatcher.Subscribe(t.Context(), conn.ID(), notifications.ScopeOrder, o.ID())
		require.ErrorIs(t, err, errs.ErrAccessIsDenied)
		assert.Empty(t, h.registry.SubscriptionsOf(notifications.OrderTopic(o.ID())))

		anon := h.connect(t, nil)
		_, err = h.dispatcher.Subscribe(t.Context(), anon.ID(), notifications.ScopeOrder, o.ID())
		require.ErrorIs(t, err, errs.ErrAccessIsDenied)
	})

	t.Run("should restrict station topics to the owner", func(t *testing.T) {
		h := newHarness()
		owner, other, station := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
		h.directory.On("StationOwner", mock.Anything, station).Return(&owner, nil)

		ownerConn := h.connect(t, &owner)
		topic, err := h.dispatcher.Subscribe(t.Context(), ownerConn.ID(), notifications.ScopeStation, station)
		require.NoError(t, err)
		assert.Equal(t, notifications.StationTopic(station), topic)

		otherConn := h.connect(t, &other)
		_, err = h.dispatcher.Subscribe(t.Context(), otherConn.ID(), notifications.ScopeStation, station)
		require.ErrorIs(t, err, errs.ErrAccessIsDenied)
	})

	t.Run("should derive the conversation topic from the pair", func(t *testing.T) {
		h := newHarness()
		a, b := kernel.NewUUID(), kernel.NewUUID()
		conn := h.connect(t, &a)

		topic, err := h.dispatcher.Subscribe(t.Context(), conn.ID(), notifications.ScopeConversation, b)

		require.NoError(t, err)
		assert.Equal(t, notifications.ChatTopic(chat.NewConversation(b, a)), topic)

		_, err = h.dispatcher.Subscribe(t.Context(), conn.ID(), notifications.ScopeConversation, a)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should propagate missing orders and reject unknown scopes", func(t *testing.T) {
		h := newHarness()
		user, missing := kernel.NewUUID(), kernel.NewUUID()
		h.orders.On("Get", mock.Anything, missing).Return(nil, errs.NewObjectNotFoundError("order", missing))
		conn := h.connect(t, &user)

		_, err := h.dispatcher.Subscribe(t.Context(), conn.ID(), notifications.ScopeOrder, missing)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		_, err = h.dispatcher.Subscribe(t.Context(), conn.ID(), notifications.Scope("planet"), missing)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should unsubscribe", func(t *testing.T) {
		h := newHarness()
		a, b := kernel.NewUUID(), kernel.NewUUID()
		conn := h.connect(t, &a)
		topic, err := h.dispatcher.Subscribe(t.Context(), conn.ID(), notifications.ScopeConversation, b)
		require.NoError(t, err)

		require.NoError(t, h.dispatcher.Unsubscribe(conn.ID(), topic))

		assert.NotContains(t, h.registry.TopicsOf(conn.ID()), topic)
	})
}
