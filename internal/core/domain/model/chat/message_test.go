package chat_test

import (
	"strings"
	"testing"
	"time"

	"fueldelivery/internal/core/domain/model/chat"
	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sentAt = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func TestNewMessage(t *testing.T) {
	alice, bob := kernel.NewUUID(), kernel.NewUUID()

	t.Run("should create a message and record MessageSent", func(t *testing.T) {
		m, err := chat.NewMessage(kernel.NewUUID(), alice, bob, "  on my way  ", sentAt)

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.Equal(t, "on my way", m.Content())
		assert.True(t, m.Involves(alice))
		assert.True(t, m.Involves(bob))
		assert.False(t, m.Involves(kernel.NewUUID()))

		events := m.PullDomainEvents()
		require.Len(t, events, 1)
		sent, ok := events[0].(chat.MessageSent)
		require.True(t, ok)
		assert.Equal(t, "on my way", sent.Content)
		assert.Equal(t, m.Conversation(), sent.Conversation())
	})

	t.Run("should reject empty content", func(t *testing.T) {
		_, err := chat.NewMessage(kernel.NewUUID(), alice, bob, "   ", sentAt)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject oversized content", func(t *testing.T) {
		_, err := chat.NewMessage(kernel.NewUUID(), alice, bob, strings.Repeat("a", chat.MaxContentLength+1), sentAt)

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject messages to oneself", func(t *testing.T) {
		_, err := chat.NewMessage(kernel.NewUUID(), alice, alice, "hi", sentAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "sender and receiver must differ")
	})

	t.Run("should reject missing participants", func(t *testing.T) {
		_, err := chat.NewMessage(kernel.NewUUID(), kernel.UUID{}, bob, "hi", sentAt)

		assert.Error(t, err)
	})
}

func TestRestoreMessage(t *testing.T) {
	m, err := chat.RestoreMessage(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "hello", sentAt)

	require.NoError(t, err)
	assert.Empty(t, m.PendingDomainEvents())
	assert.Equal(t, sentAt, m.CreatedAt())
}

func TestConversation(t *testing.T) {
	a, b := kernel.NewUUID(), kernel.NewUUID()

	t.Run("should ignore argument order", func(t *testing.T) {
		assert.Equal(t, chat.NewConversation(a, b), chat.NewConversation(b, a))
		assert.Equal(t, chat.NewConversation(a, b).String(), chat.NewConversation(b, a).String())
	})

	t.Run("should resolve the peer", func(t *testing.T) {
		c := chat.NewConversation(a, b)

		peer, ok := c.Peer(a)
		require.True(t, ok)
		assert.True(t, peer.IsEqual(b))

		_, ok = c.Peer(kernel.NewUUID())
		assert.False(t, ok)
		assert.True(t, c.Includes(b))
	})

	t.Run("should put the lower id first", func(t *testing.T) {
		c := chat.NewConversation(a, b)

		assert.True(t, c.Low().Less(c.High()))
	})
}
