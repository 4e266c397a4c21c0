package chat

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/pkg/errs"
)

// MaxContentLength bounds a single message in runes.
const MaxContentLength = 4000

var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage constructor")

// Message is an immutable chat line between two users.
type Message struct {
	kernel.EventRecorder

	id         kernel.UUID
	senderID   kernel.UUID
	receiverID kernel.UUID
	content    string
	createdAt  time.Time

	isConstructed bool
}

// NewMessage validates and creates a message, recording MessageSent.
func NewMessage(id, senderID, receiverID kernel.UUID, content string, now time.Time) (*Message, error) {
	m, err := build(id, senderID, receiverID, content, now)
	if err != nil {
		return nil, err
	}

	m.Record(MessageSent{
		MessageID:  m.id,
		SenderID:   m.senderID,
		ReceiverID: m.receiverID,
		Content:    m.content,
		CreatedAt:  m.createdAt,
	})
	return m, nil
}

// RestoreMessage rebuilds a stored message without recording events.
func RestoreMessage(id, senderID, receiverID kernel.UUID, content string, createdAt time.Time) (*Message, error) {
	return build(id, senderID, receiverID, content, createdAt)
}

func build(id, senderID, receiverID kernel.UUID, content string, createdAt time.Time) (*Message, error) {
	content = strings.TrimSpace(content)

	if err := errors.Join(
		id.Validate(),
		senderID.Validate(),
		receiverID.Validate(),
		validateParticipants(senderID, receiverID),
		validateContent(content),
	); err != nil {
		return nil, err
	}

	return &Message{
		id:            id,
		senderID:      senderID,
		receiverID:    receiverID,
		content:       content,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}
	return nil
}

func (m *Message) ID() kernel.UUID         { return m.id }
func (m *Message) SenderID() kernel.UUID   { return m.senderID }
func (m *Message) ReceiverID() kernel.UUID { return m.receiverID }
func (m *Message) Content() string         { return m.content }
func (m *Message) CreatedAt() time.Time    { return m.createdAt }

// Conversation returns the unordered pair the message belongs to.
func (m *Message) Conversation() Conversation {
	return NewConversation(m.senderID, m.receiverID)
}

// Involves reports whether userID is the sender or the receiver.
func (m *Message) Involves(userID kernel.UUID) bool {
	return m.senderID.IsEqual(userID) || m.receiverID.IsEqual(userID)
}

func validateParticipants(senderID, receiverID kernel.UUID) error {
	if senderID.IsEqual(receiverID) && senderID.Validate() == nil {
		return errs.NewValueIsInvalidErrorWithCause("receiverId", fmt.Errorf("sender and receiver must differ"))
	}
	return nil
}

func validateContent(content string) error {
	if content == "" {
		return errs.NewValueIsRequiredError("content")
	}
	if n := utf8.RuneCountInString(content); n > MaxContentLength {
		return errs.NewValueIsOutOfRangeError("content length", n, 1, MaxContentLength)
	}
	return nil
}
