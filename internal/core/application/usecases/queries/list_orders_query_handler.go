package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler serves the customer, station and global order lists.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := liveOrders(ctx, h.db)
	switch query.scope {
	case scopeUser:
		tx = tx.Where("user_id = ?", query.ownerID.Bytes())
	case scopeStation:
		tx = tx.Where("station_id = ?", query.ownerID.Bytes())
	case scopeAll:
	}
	if query.status != nil {
		tx = tx.Where("status = ?", query.status.String())
	}

	return listOrders(tx)
}
