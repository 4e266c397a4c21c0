package notifications

import (
	"time"

	"fueldelivery/internal/core/domain/model/chat"
	"fueldelivery/internal/core/domain/model/order"
)

type ChatPayload struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

type OrderStatusPayload struct {
	OrderID        string    `json:"orderId"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	Version        int64     `json:"version"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type OrderPlacedPayload struct {
	OrderID   string    `json:"orderId"`
	UserID    string    `json:"userId"`
	StationID string    `json:"stationId"`
	Status    string    `json:"status"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
}

type DriverAssignedPayload struct {
	OrderID   string    `json:"orderId"`
	DriverID  string    `json:"driverId"`
	Status    string    `json:"status"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func chatPayloadOf(e chat.MessageSent) ChatPayload {
	return ChatPayload{
		ID:         e.MessageID.String(),
		SenderID:   e.SenderID.String(),
		ReceiverID: e.ReceiverID.String(),
		Content:    e.Content,
		CreatedAt:  e.CreatedAt.UTC(),
	}
}

func statusPayloadOf(e order.StatusChanged) OrderStatusPayload {
	return OrderStatusPayload{
		OrderID:        e.OrderID.String(),
		Status:         e.To.String(),
		PreviousStatus: e.From.String(),
		Version:        e.Version,
		UpdatedAt:      e.UpdatedAt.UTC(),
	}
}

func placedPayloadOf(e order.Placed) OrderPlacedPayload {
	return OrderPlacedPayload{
		OrderID:   e.OrderID.String(),
		UserID:    e.UserID.String(),
		StationID: e.StationID.String(),
		Status:    e.Status.String(),
		Version:   e.Version,
		CreatedAt: e.PlacedAt.UTC(),
	}
}

func driverPayloadOf(e order.DriverAssigned) DriverAssignedPayload {
	return DriverAssignedPayload{
		OrderID:   e.OrderID.String(),
		DriverID:  e.DriverID.String(),
		Status:    e.Status.String(),
		Version:   e.Version,
		UpdatedAt: e.UpdatedAt.UTC(),
	}
}
