package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"fueldelivery/internal/adapters/out/realtime"
	"fueldelivery/internal/core/application/notifications"
	"fueldelivery/internal/core/application/usecases/commands"
	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"
	"fueldelivery/internal/core/ports"
	"fueldelivery/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

var (
	errOutboundClosed = errors.New("outbound queue closed")
	errShuttingDown   = errors.New("server shutting down")
)

type session struct {
	h      *Handler
	socket *websocket.Conn
	conn   *realtime.Connection
	logger *slog.Logger
}

// run pumps until either side stops. Deregistration releases every
// subscription and closes the outbound queue.
func (s *session) run(ctx context.Context) {
	defer s.h.registry.Deregister(s.conn.ID())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.readPump(gctx) })
	g.Go(func() error { return s.writePump(gctx) })

	err := g.Wait()
	s.logger.DebugContext(ctx, "session closed", "reason", err)
}

func (s *session) readPump(ctx context.Context) error {
	s.socket.SetReadLimit(s.h.cfg.MaxMessageSize)
	_ = s.socket.SetReadDeadline(time.Now().Add(s.h.cfg.PongTimeout))
	s.socket.SetPongHandler(func(string) error {
		s.h.registry.Touch(s.conn.ID())
		return s.socket.SetReadDeadline(time.Now().Add(s.h.cfg.PongTimeout))
	})

	for {
		_, raw, err := s.socket.ReadMessage()
		if err != nil {
			return err
		}
		s.h.registry.Touch(s.conn.ID())
		_ = s.socket.SetReadDeadline(time.Now().Add(s.h.cfg.PongTimeout))
		s.handle(ctx, raw)
	}
}

// writePump is the only writer of data frames. It closes the socket on exit,
// which unblocks readPump.
func (s *session) writePump(ctx context.Context) error {
	ticker := time.NewTicker(s.h.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		_ = s.socket.Close()
	}()

	for {
		select {
		case msg, ok := <-s.conn.Outbound():
			if !ok {
				s.closeWith(websocket.CloseNormalClosure, "")
				return errOutboundClosed
			}
			_ = s.socket.SetWriteDeadline(time.Now().Add(s.h.cfg.WriteTimeout))
			if err := s.socket.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}

		case <-ticker.C:
			if err := s.socket.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.h.cfg.WriteTimeout)); err != nil {
				return err
			}

		case <-s.h.shutdown:
			s.closeWith(websocket.CloseGoingAway, "server shutting down")
			return errShuttingDown

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *session) closeWith(code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	_ = s.socket.WriteControl(websocket.CloseMessage, msg, time.Now().Add(s.h.cfg.WriteTimeout))
}

func (s *session) handle(ctx context.Context, raw []byte) {
	var frame InboundFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		s.fail(ctx, frame, errs.NewValueIsInvalidErrorWithCause("frame", err))
		return
	}

	var err error
	switch frame.Type {
	case frameChat:
		err = s.sendChat(ctx, frame)
	case frameOrderStatusUpdate:
		err = s.changeStatus(ctx, frame)
	case frameSubscribe:
		err = s.subscribe(ctx, frame)
	case frameUnsubscribe:
		err = s.unsubscribe(frame)
	default:
		err = errs.NewValueIsInvalidError("frame type")
	}
	if err != nil {
		s.fail(ctx, frame, err)
	}
}

func (s *session) sendChat(ctx context.Context, frame InboundFrame) error {
	sender, err := s.requireIdentity(frameChat)
	if err != nil {
		return err
	}
	var p ChatFrame
	if err = decodePayload(frame.Payload, &p); err != nil {
		return err
	}
	if p.SenderID != "" && p.SenderID != sender.String() {
		return errs.NewAccessIsDeniedError(sender, "chat as "+p.SenderID)
	}
	receiver, err := kernel.UUIDFromString(p.ReceiverID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewSendChatMessageCommand(kernel.NewUUID(), sender, receiver, p.Content)
	if err != nil {
		return err
	}
	_, err = s.h.chat.Handle(ctx, cmd)
	return err
}

func (s *session) changeStatus(ctx context.Context, frame InboundFrame) error {
	actor, err := s.requireIdentity(frameOrderStatusUpdate)
	if err != nil {
		return err
	}
	var p StatusUpdateFrame
	if err = decodePayload(frame.Payload, &p); err != nil {
		return err
	}
	orderID, err := kernel.UUIDFromString(p.OrderID)
	if err != nil {
		return err
	}
	status, err := order.ParseStatus(p.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status, p.ExpectedVersion, &actor)
	if err != nil {
		return err
	}
	_, err = s.h.status.Handle(ctx, cmd)
	return err
}

func (s *session) subscribe(ctx context.Context, frame InboundFrame) error {
	var p SubscribeFrame
	if err := decodePayload(frame.Payload, &p); err != nil {
		return err
	}
	id, err := kernel.UUIDFromString(p.ID)
	if err != nil {
		return err
	}

	topic, err := s.h.subs.Subscribe(ctx, s.conn.ID(), notifications.Scope(p.Scope), id)
	if err != nil {
		return err
	}
	s.reply(typeSubscribed, topic, AckPayload{RequestID: frame.RequestID, Topic: topic})
	return nil
}

func (s *session) unsubscribe(frame InboundFrame) error {
	var p UnsubscribeFrame
	if err := decodePayload(frame.Payload, &p); err != nil {
		return err
	}
	if err := s.h.subs.Unsubscribe(s.conn.ID(), p.Topic); err != nil {
		return err
	}
	s.reply(typeUnsubscribed, p.Topic, AckPayload{RequestID: frame.RequestID, Topic: p.Topic})
	return nil
}

func (s *session) requireIdentity(request string) (kernel.UUID, error) {
	identity, ok := s.conn.Identity()
	if !ok {
		return kernel.UUID{}, errs.NewAccessIsDeniedError("anonymous", request)
	}
	return identity, nil
}

func (s *session) fail(ctx context.Context, frame InboundFrame, err error) {
	code := codeOf(err)
	msg := err.Error()
	if code == CodeInternal {
		s.logger.ErrorContext(ctx, "frame failed", "type", frame.Type, "error", err)
		msg = "internal error"
	}
	s.reply(typeError, "", ErrorPayload{
		RequestID: frame.RequestID,
		Request:   frame.Type,
		Code:      code,
		Message:   msg,
	})
}

func (s *session) reply(msgType, topic string, payload any) {
	if !s.h.bus.Send(s.conn.ID(), ports.Notification{Type: msgType, Topic: topic, Payload: payload}) {
		s.logger.Warn("reply dropped", "type", msgType)
	}
}
