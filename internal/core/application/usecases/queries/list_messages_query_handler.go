package queries

import (
	"context"
	"time"

	"fueldelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListMessagesQueryHandler reads chat history for one user.
type ListMessagesQueryHandler struct {
	db *gorm.DB
}

func NewListMessagesQueryHandler(db *gorm.DB) ListMessagesQueryHandler {
	return ListMessagesQueryHandler{db: db}
}

type messageRow struct {
	ID         uuid.UUID
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	Content    string
	CreatedAt  time.Time
}

// Handle returns an empty slice, not an error, when the user has no messages.
func (h ListMessagesQueryHandler) Handle(ctx context.Context, query ListMessagesQuery) ([]MessageView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	userID := query.UserID().Bytes()
	var rows []messageRow
	err := h.db.WithContext(ctx).
		Table("messages").
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at ASC").
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]MessageView, 0, len(rows))
	for _, row := range rows {
		ids := make([]kernel.UUID, 3)
		for i, raw := range []uuid.UUID{row.ID, row.SenderID, row.ReceiverID} {
			if ids[i], err = kernel.UUIDFromBytes(raw[:]); err != nil {
				return nil, err
			}
		}
		views = append(views, MessageView{
			ID:         ids[0],
			SenderID:   ids[1],
			ReceiverID: ids[2],
			Content:    row.Content,
			CreatedAt:  row.CreatedAt.UTC(),
		})
	}
	return views, nil
}
