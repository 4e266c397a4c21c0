package ws_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"fueldelivery/internal/adapters/in/ws"
	"fueldelivery/internal/adapters/out/realtime"
	"fueldelivery/internal/core/application/notifications"
	"fueldelivery/internal/core/application/usecases/commands"
	"fueldelivery/internal/core/domain/model/chat"
	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"
	"fueldelivery/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// publishingChat stands in for the persisted send: it records the message and
// hands its event to the dispatcher the way a committed unit of work would.
type publishingChat struct {
	dispatcher *notifications.Dispatcher
}

func (p publishingChat) Handle(ctx context.Context, cmd commands.SendChatMessageCommand) (commands.MessageDetails, error) {
	msg, err := chat.NewMessage(cmd.MessageID(), cmd.SenderID(), cmd.ReceiverID(), cmd.Content(), time.Now())
	if err != nil {
		return commands.MessageDetails{}, err
	}
	_ = p.dispatcher.Publish(ctx, msg.PullDomainEvents()...)
	return commands.MessageDetails{ID: msg.ID(), Content: msg.Content()}, nil
}

type MockStatusChanger struct{ mock.Mock }

func (m *MockStatusChanger) Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (commands.OrderDetails, error) {
	args := m.Called(ctx, cmd)
	return commands.OrderDetails{}, args.Error(0)
}

type envelope struct {
	Type    string          `json:"type"`
	Topic   string          `json:"topic"`
	Payload json.RawMessage `json:"payload"`
}

type harness struct {
	url      string
	registry *realtime.Registry
	handler  *ws.Handler
	status   *MockStatusChanger
}

func newHarness(t *testing.T) harness {
	t.Helper()

	registry := realtime.NewRegistry(32, nil)
	bus := realtime.NewBus(registry, nil, nil)
	dispatcher := notifications.NewDispatcher(bus, nil, nil, nil)
	status := new(MockStatusChanger)

	handler := ws.NewHandler(registry, bus, dispatcher, publishingChat{dispatcher}, status, ws.Config{
		WriteTimeout: time.Second,
		PingInterval: 500 * time.Millisecond,
		PongTimeout:  5 * time.Second,
	}, nil)

	e := echo.New()
	e.GET("/ws", handler.Serve)
	srv := httptest.NewServer(e)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = handler.Shutdown(ctx)
		srv.Close()
	})

	return harness{
		url:      "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws",
		registry: registry,
		handler:  handler,
		status:   status,
	}
}

func (h harness) dial(t *testing.T, user *kernel.UUID) *websocket.Conn {
	t.Helper()

	before := h.registry.Stats().Connections
	url := h.url
	if user != nil {
		url += "?userId=" + user.String()
	}
	c, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = c.Close() })

	require.Eventually(t, func() bool {
		return h.registry.Stats().Connections > before
	}, 2*time.Second, 5*time.Millisecond)
	return c
}

func send(t *testing.T, c *websocket.Conn, frameType, requestID string, payload any) {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, c.WriteJSON(ws.InboundFrame{Type: frameType, RequestID: requestID, Payload: raw}))
}

func read(t *testing.T, c *websocket.Conn) envelope {
	t.Helper()
	require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
	var env envelope
	require.NoError(t, c.ReadJSON(&env))
	return env
}

// expectSilence leaves c unusable for further reads.
func expectSilence(t *testing.T, c *websocket.Conn) {
	t.Helper()
	require.NoError(t, c.SetReadDeadline(time.Now().Add(150*time.Millisecond)))
	_, _, err := c.ReadMessage()
	var netErr net.Error
	require.True(t, errors.As(err, &netErr) && netErr.Timeout(), "expected a read timeout, got %v", err)
}

func TestHandler_Connect(t *testing.T) {
	h := newHarness(t)

	t.Run("should accept anonymous listeners", func(t *testing.T) {
		h.dial(t, nil)
	})

	t.Run("should reject a malformed identity before upgrading", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(h.url+"?userId=nope", nil)
		require.ErrorIs(t, err, websocket.ErrBadHandshake)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("should release the connection on disconnect", func(t *testing.T) {
		user := kernel.NewUUID()
		c := h.dial(t, &user)
		require.NoError(t, c.Close())

		require.Eventually(t, func() bool {
			return len(h.registry.ConnectionsOf(user)) == 0 &&
				len(h.registry.SubscriptionsOf(notifications.UserTopic(user))) == 0
		}, 2*time.Second, 5*time.Millisecond)
	})
}

func TestHandler_Chat(t *testing.T) {
	t.Run("should fan out to both participants in send order", func(t *testing.T) {
		h := newHarness(t)
		a, b, c := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
		aPhone := h.dial(t, &a)
		aWeb := h.dial(t, &a)
		bConn := h.dial(t, &b)
		cConn := h.dial(t, &c)

		send(t, aPhone, "chat", "", ws.ChatFrame{ReceiverID: b.String(), Content: "hi"})
		send(t, aPhone, "chat", "", ws.ChatFrame{ReceiverID: b.String(), Content: "hello"})

		for _, conn := range []*websocket.Conn{aPhone, aWeb, bConn} {
			for _, want := range []string{"hi", "hello"} {
				env := read(t, conn)
				assert.Equal(t, notifications.TypeChat, env.Type)
				assert.Equal(t, notifications.ChatTopic(chat.NewConversation(a, b)), env.Topic)

				var p notifications.ChatPayload
				require.NoError(t, json.Unmarshal(env.Payload, &p))
				assert.Equal(t, want, p.Content)
				assert.Equal(t, a.String(), p.SenderID)
			}
		}
		expectSilence(t, cConn)
	})

	t.Run("should refuse anonymous senders and impersonation", func(t *testing.T) {
		h := newHarness(t)
		a := kernel.NewUUID()
		anon := h.dial(t, nil)
		aConn := h.dial(t, &a)

		send(t, anon, "chat", "r1", ws.ChatFrame{ReceiverID: a.String(), Content: "hi"})
		env := read(t, anon)
		require.Equal(t, "error", env.Type)
		var p ws.ErrorPayload
		require.NoError(t, json.Unmarshal(env.Payload, &p))
		assert.Equal(t, ws.CodeForbidden, p.Code)
		assert.Equal(t, "r1", p.RequestID)

		send(t, aConn, "chat", "r2", ws.ChatFrame{SenderID: kernel.NewUUID().String(), ReceiverID: kernel.NewUUID().String(), Content: "hi"})
		env = read(t, aConn)
		require.NoError(t, json.Unmarshal(env.Payload, &p))
		assert.Equal(t, ws.CodeForbidden, p.Code)
	})
}

func TestHandler_OrderStatusUpdate(t *testing.T) {
	h := newHarness(t)
	actor, orderID := kernel.NewUUID(), kernel.NewUUID()
	version := int64(2)
	h.status.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ChangeOrderStatusCommand) bool {
		return cmd.OrderID() == orderID &&
			cmd.Status() == order.Completed &&
			cmd.ActorID() != nil && *cmd.ActorID() == actor &&
			*cmd.ExpectedVersion() == version
	})).Return(errs.NewVersionConflictError("order", orderID, version)).Once()
	c := h.dial(t, &actor)

	send(t, c, "orderStatusUpdate", "r7", ws.StatusUpdateFrame{OrderID: orderID.String(), Status: "completed", ExpectedVersion: &version})

	env := read(t, c)
	require.Equal(t, "error", env.Type)
	var p ws.ErrorPayload
	require.NoError(t, json.Unmarshal(env.Payload, &p))
	assert.Equal(t, "r7", p.RequestID)
	assert.Equal(t, "orderStatusUpdate", p.Request)
	assert.Equal(t, ws.CodeConflict, p.Code)
	h.status.AssertExpectations(t)
}

func TestHandler_Subscriptions(t *testing.T) {
	h := newHarness(t)
	a, b := kernel.NewUUID(), kernel.NewUUID()
	c := h.dial(t, &a)
	topic := notifications.ChatTopic(chat.NewConversation(a, b))

	send(t, c, "subscribe", "s1", ws.SubscribeFrame{Scope: "conversation", ID: b.String()})
	env := read(t, c)
	require.Equal(t, "subscribed", env.Type)
	var ack ws.AckPayload
	require.NoError(t, json.Unmarshal(env.Payload, &ack))
	assert.Equal(t, ws.AckPayload{RequestID: "s1", Topic: topic}, ack)

	send(t, c, "unsubscribe", "s2", ws.UnsubscribeFrame{Topic: topic})
	env = read(t, c)
	require.Equal(t, "unsubscribed", env.Type)

	send(t, c, "teleport", "s3", nil)
	env = read(t, c)
	require.Equal(t, "error", env.Type)
	var p ws.ErrorPayload
	require.NoError(t, json.Unmarshal(env.Payload, &p))
	assert.Equal(t, ws.CodeValidation, p.Code)
}

func TestHandler_Shutdown(t *testing.T) {
	h := newHarness(t)
	c := h.dial(t, nil)

	ctx, cancel := context.WithTimeout(t.Context(), 2*time.Second)
	defer cancel()
	require.NoError(t, h.handler.Shutdown(ctx))

	require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := c.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
	assert.Zero(t, h.registry.Stats().Connections)
}

func TestHandler_ShutdownRefusesNewSessions(t *testing.T) {
	h := newHarness(t)
	h.dial(t, nil)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, resp, err := websocket.DefaultDialer.Dial(h.url, nil)
			if resp != nil && resp.Body != nil {
				_ = resp.Body.Close()
			}
			if err == nil {
				_ = c.Close()
			}
		}()
	}

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()
	require.NoError(t, h.handler.Shutdown(ctx))
	wg.Wait()

	_, resp, err := websocket.DefaultDialer.Dial(h.url, nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.NoError(t, h.handler.Shutdown(ctx))
}
