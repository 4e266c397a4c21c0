// Package messagerepo is the append-only store for chat messages.
package messagerepo

import (
	"time"

	"fueldelivery/internal/core/domain/model/chat"
	"fueldelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// MessageDTO represents a stored chat message.
type MessageDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null;index"`
	Content    string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime:false;not null;index"`
}

func (MessageDTO) TableName() string {
	return "messages"
}

func fromDomain(m *chat.Message) MessageDTO {
	return MessageDTO{
		ID:         m.ID().Bytes(),
		SenderID:   m.SenderID().Bytes(),
		ReceiverID: m.ReceiverID().Bytes(),
		Content:    m.Content(),
		CreatedAt:  m.CreatedAt(),
	}
}

func toDomain(dto MessageDTO) (*chat.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	senderID, err := kernel.UUIDFromBytes(dto.SenderID[:])
	if err != nil {
		return nil, err
	}
	receiverID, err := kernel.UUIDFromBytes(dto.ReceiverID[:])
	if err != nil {
		return nil, err
	}

	return chat.RestoreMessage(id, senderID, receiverID, dto.Content, dto.CreatedAt)
}
