package http

import (
	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"
	"fueldelivery/internal/generated/servers"
)

// orderSpecFrom converts a validated request; only domain rules can fail here.
func orderSpecFrom(r servers.PlaceOrderRequest) (order.Spec, error) {
	var address string
	if r.Location.Address != nil {
		address = *r.Location.Address
	}
	location, err := kernel.NewGeoPoint(r.Location.Latitude, r.Location.Longitude, address)
	if err != nil {
		return order.Spec{}, err
	}
	phone, err := kernel.NewPhone(r.Phone)
	if err != nil {
		return order.Spec{}, err
	}

	spec := order.Spec{
		Quantity:  r.Quantity,
		TotalCost: r.TotalCost,
		Location:  location,
		Phone:     phone,
	}
	if spec.UserID, err = idFrom("userId", r.UserId); err != nil {
		return order.Spec{}, err
	}
	if spec.StationID, err = idFrom("stationId", r.StationId); err != nil {
		return order.Spec{}, err
	}
	if spec.FuelTypeID, err = idFrom("fuelTypeId", r.FuelTypeId); err != nil {
		return order.Spec{}, err
	}
	if r.DriverId != nil {
		driverID, err := idFrom("driverId", *r.DriverId)
		if err != nil {
			return order.Spec{}, err
		}
		spec.DriverID = &driverID
	}
	return spec, nil
}
