package ws

import (
	"encoding/json"
	"errors"

	"fueldelivery/internal/pkg/errs"
)

// Inbound frame types. chat and orderStatusUpdate share their names with the
// outbound notifications they eventually produce.
const (
	frameChat              = "chat"
	frameOrderStatusUpdate = "orderStatusUpdate"
	frameSubscribe         = "subscribe"
	frameUnsubscribe       = "unsubscribe"

	typeError        = "error"
	typeSubscribed   = "subscribed"
	typeUnsubscribed = "unsubscribed"
)

// InboundFrame is what clients send. RequestID is echoed on acks and errors.
type InboundFrame struct {
	Type      string          `json:"type"`
	RequestID string          `json:"requestId,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

// ChatFrame sends a direct message. SenderID is optional and must match
// the connection's identity when given.
type ChatFrame struct {
	SenderID   string `json:"senderId,omitempty"`
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

type StatusUpdateFrame struct {
	OrderID         string `json:"orderId"`
	Status          string `json:"status"`
	ExpectedVersion *int64 `json:"expectedVersion,omitempty"`
}

type SubscribeFrame struct {
	Scope string `json:"scope"`
	ID    string `json:"id"`
}

type UnsubscribeFrame struct {
	Topic string `json:"topic"`
}

type AckPayload struct {
	RequestID string `json:"requestId,omitempty"`
	Topic     string `json:"topic"`
}

type ErrorPayload struct {
	RequestID string `json:"requestId,omitempty"`
	Request   string `json:"request,omitempty"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// Error codes carried by error frames.
const (
	CodeValidation        = "validation"
	CodeForbidden         = "forbidden"
	CodeNotFound          = "not_found"
	CodeConflict          = "conflict"
	CodeInvalidTransition = "invalid_transition"
	CodeInternal          = "internal"
)

func codeOf(err error) string {
	switch {
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return CodeValidation
	case errors.Is(err, errs.ErrAccessIsDenied):
		return CodeForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return CodeNotFound
	case errors.Is(err, errs.ErrVersionConflict):
		return CodeConflict
	case errors.Is(err, errs.ErrTransitionIsInvalid):
		return CodeInvalidTransition
	default:
		return CodeInternal
	}
}

func decodePayload(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return errs.NewValueIsRequiredError("payload")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("payload", err)
	}
	return nil
}
