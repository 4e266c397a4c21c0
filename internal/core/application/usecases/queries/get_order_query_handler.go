package queries

import (
	"context"
	"errors"

	"fueldelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(orderID)
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown or deleted
//	}
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	var row orderRow
	err := liveOrders(ctx, h.db).Where("id = ?", query.OrderID().Bytes()).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	if err != nil {
		return OrderView{}, err
	}

	return row.toView()
}
