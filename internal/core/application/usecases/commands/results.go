package commands

import (
	"time"

	"fueldelivery/internal/core/domain/model/chat"
	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDetails is the full stored state of an order after a write.
type OrderDetails struct {
	ID         kernel.UUID
	UserID     kernel.UUID
	StationID  kernel.UUID
	DriverID   *kernel.UUID
	FuelTypeID kernel.UUID
	Quantity   decimal.Decimal
	TotalCost  decimal.Decimal
	Latitude   float64
	Longitude  float64
	Address    string
	Phone      string
	Status     order.Status
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderState is the minimal shape returned by cancel and delete.
type OrderState struct {
	ID        kernel.UUID
	Status    order.Status
	Version   int64
	UpdatedAt time.Time
}

// MessageDetails is a stored chat message.
type MessageDetails struct {
	ID         kernel.UUID
	SenderID   kernel.UUID
	ReceiverID kernel.UUID
	Content    string
	CreatedAt  time.Time
}

func orderDetailsOf(o *order.Order) OrderDetails {
	return OrderDetails{
		ID:         o.ID(),
		UserID:     o.UserID(),
		StationID:  o.StationID(),
		DriverID:   o.Driver(),
		FuelTypeID: o.FuelTypeID(),
		Quantity:   o.Quantity(),
		TotalCost:  o.TotalCost(),
		Latitude:   o.Location().Latitude(),
		Longitude:  o.Location().Longitude(),
		Address:    o.Location().Address(),
		Phone:      o.Phone().String(),
		Status:     o.Status(),
		Version:    o.Version(),
		CreatedAt:  o.CreatedAt(),
		UpdatedAt:  o.UpdatedAt(),
	}
}

func orderStateOf(o *order.Order) OrderState {
	return OrderState{
		ID:        o.ID(),
		Status:    o.Status(),
		Version:   o.Version(),
		UpdatedAt: o.UpdatedAt(),
	}
}

func messageDetailsOf(m *chat.Message) MessageDetails {
	return MessageDetails{
		ID:         m.ID(),
		SenderID:   m.SenderID(),
		ReceiverID: m.ReceiverID(),
		Content:    m.Content(),
		CreatedAt:  m.CreatedAt(),
	}
}
