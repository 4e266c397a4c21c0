package messagerepo

import (
	"context"
	"errors"

	"fueldelivery/internal/core/domain/model/chat"
	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormMessageRepository implements MessageRepository using GORM.
type GormMessageRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormMessageRepository(db *gorm.DB, tracker aggregateTracker) *GormMessageRepository {
	return &GormMessageRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add appends a message. Messages are never updated.
func (r *GormMessageRepository) Add(ctx context.Context, message *chat.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := fromDomain(message)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(message.ID(), message)
	return nil
}

// Get retrieves a stored message by ID.
func (r *GormMessageRepository) Get(ctx context.Context, id kernel.UUID) (*chat.Message, error) {
	var dto MessageDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("message", id)
		}
		return nil, err
	}

	return toDomain(dto)
}
