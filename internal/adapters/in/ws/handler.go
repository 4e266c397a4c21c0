// Package ws serves the realtime socket. Each client gets a session with a
// read pump that turns inbound frames into use-case calls and a write pump
// that drains the connection's outbound queue.
//
// Identity is taken from the userId query parameter at connect time and stays
// bound for the life of the session. Credential checks happen in front of
// this service.
package ws

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"fueldelivery/internal/adapters/out/realtime"
	"fueldelivery/internal/core/application/notifications"
	"fueldelivery/internal/core/application/usecases/commands"
	"fueldelivery/internal/core/domain/model/kernel"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Subscriptions authorizes topic membership for connections.
type Subscriptions interface {
	Connect(connectionID string) error
	Subscribe(ctx context.Context, connectionID string, scope notifications.Scope, id kernel.UUID) (string, error)
	Unsubscribe(connectionID, topic string) error
}

type ChatSender interface {
	Handle(ctx context.Context, cmd commands.SendChatMessageCommand) (commands.MessageDetails, error)
}

type StatusChanger interface {
	Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (commands.OrderDetails, error)
}

type Config struct {
	WriteTimeout   time.Duration
	PingInterval   time.Duration
	PongTimeout    time.Duration
	MaxMessageSize int64
	// AllowedOrigins restricts the Origin header; empty allows any origin.
	AllowedOrigins []string
}

// DefaultConfig pings every 30s and drops a peer silent for 60s.
func DefaultConfig() Config {
	return Config{
		WriteTimeout:   10 * time.Second,
		PingInterval:   30 * time.Second,
		PongTimeout:    60 * time.Second,
		MaxMessageSize: 16 << 10,
	}
}

type Handler struct {
	registry *realtime.Registry
	bus      *realtime.Bus
	subs     Subscriptions
	chat     ChatSender
	status   StatusChanger
	cfg      Config
	upgrader websocket.Upgrader
	logger   *slog.Logger

	// mu orders sessions.Add against the Wait in Shutdown.
	mu       sync.Mutex
	closing  bool
	shutdown chan struct{}
	sessions sync.WaitGroup
}

func NewHandler(
	registry *realtime.Registry,
	bus *realtime.Bus,
	subs Subscriptions,
	chat ChatSender,
	status StatusChanger,
	cfg Config,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultConfig()
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = def.PingInterval
	}
	if cfg.PongTimeout <= cfg.PingInterval {
		cfg.PongTimeout = 2 * cfg.PingInterval
	}
	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = def.MaxMessageSize
	}

	h := &Handler{
		registry: registry,
		bus:      bus,
		subs:     subs,
		chat:     chat,
		status:   status,
		cfg:      cfg,
		logger:   logger.With("component", "ws"),
		shutdown: make(chan struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// Serve handles GET /ws[?userId=]. It blocks for the life of the session.
func (h *Handler) Serve(c echo.Context) error {
	identity, err := identityOf(c.QueryParam("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}

	if !h.beginSession() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "shutting down")
	}
	defer h.sessions.Done()

	socket, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already answered the request.
		h.logger.DebugContext(c.Request().Context(), "websocket upgrade failed", "error", err)
		return nil
	}

	conn := h.registry.Register(identity)
	if err = h.subs.Connect(conn.ID()); err != nil {
		h.logger.WarnContext(c.Request().Context(), "implicit subscriptions failed", "connection_id", conn.ID(), "error", err)
	}

	s := &session{h: h, socket: socket, conn: conn, logger: h.logger.With("connection_id", conn.ID())}
	s.run(context.WithoutCancel(c.Request().Context()))
	return nil
}

// Shutdown closes every live session with a going-away frame and waits for
// them to finish or for ctx to expire.
func (h *Handler) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	if !h.closing {
		h.closing = true
		close(h.shutdown)
	}
	h.mu.Unlock()

	done := make(chan struct{})
	go func() {
		h.sessions.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// beginSession counts a new session unless Shutdown has started.
func (h *Handler) beginSession() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closing {
		return false
	}
	h.sessions.Add(1)
	return true
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	if len(h.cfg.AllowedOrigins) == 0 {
		return true
	}
	return slices.Contains(h.cfg.AllowedOrigins, r.Header.Get("Origin"))
}

func identityOf(raw string) (*kernel.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
