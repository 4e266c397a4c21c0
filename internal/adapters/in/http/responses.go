package http

import (
	"fueldelivery/internal/core/application/usecases/commands"
	"fueldelivery/internal/core/application/usecases/queries"
	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func orderFromDetails(d commands.OrderDetails) servers.Order {
	return servers.Order{
		Id:         d.ID.Bytes(),
		UserId:     d.UserID.Bytes(),
		StationId:  d.StationID.Bytes(),
		DriverId:   optionalID(d.DriverID),
		FuelTypeId: d.FuelTypeID.Bytes(),
		Quantity:   d.Quantity,
		TotalCost:  d.TotalCost,
		Location:   location(d.Latitude, d.Longitude, d.Address),
		Phone:      d.Phone,
		Status:     servers.OrderStatus(d.Status.String()),
		Version:    d.Version,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func orderFromView(v queries.OrderView) servers.Order {
	return servers.Order{
		Id:         v.ID.Bytes(),
		UserId:     v.UserID.Bytes(),
		StationId:  v.StationID.Bytes(),
		DriverId:   optionalID(v.DriverID),
		FuelTypeId: v.FuelTypeID.Bytes(),
		Quantity:   v.Quantity,
		TotalCost:  v.TotalCost,
		Location:   location(v.Latitude, v.Longitude, v.Address),
		Phone:      v.Phone,
		Status:     servers.OrderStatus(v.Status.String()),
		Version:    v.Version,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

func ordersFromViews(views []queries.OrderView) []servers.Order {
	out := make([]servers.Order, len(views))
	for i, v := range views {
		out[i] = orderFromView(v)
	}
	return out
}

func orderStateFrom(s commands.OrderState) servers.OrderState {
	return servers.OrderState{
		Id:        s.ID.Bytes(),
		Status:    servers.OrderStateStatus(s.Status.String()),
		UpdatedAt: s.UpdatedAt,
		Version:   s.Version,
	}
}

func messageFromDetails(d commands.MessageDetails) servers.Message {
	return servers.Message{
		Id:         d.ID.Bytes(),
		SenderId:   d.SenderID.Bytes(),
		ReceiverId: d.ReceiverID.Bytes(),
		Content:    d.Content,
		CreatedAt:  d.CreatedAt,
	}
}

func messagesFromViews(views []queries.MessageView) []servers.Message {
	out := make([]servers.Message, len(views))
	for i, v := range views {
		out[i] = servers.Message{
			Id:         v.ID.Bytes(),
			SenderId:   v.SenderID.Bytes(),
			ReceiverId: v.ReceiverID.Bytes(),
			Content:    v.Content,
			CreatedAt:  v.CreatedAt,
		}
	}
	return out
}

func location(lat, lng float64, address string) servers.Location {
	loc := servers.Location{Latitude: lat, Longitude: lng}
	if address != "" {
		loc.Address = &address
	}
	return loc
}

func optionalID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	b := id.Bytes()
	return &b
}
