package kernel

import (
	"errors"
	"fmt"
	"strings"

	"fueldelivery/internal/pkg/errs"
	"fueldelivery/internal/pkg/guard"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	// MaxAddressLength bounds the optional human-readable address.
	MaxAddressLength = 255
)

// ErrGeoPointIsNotConstructed is returned when a GeoPoint skipped NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError("delivery location must be created via NewGeoPoint")

// GeoPoint is a delivery destination: WGS84 coordinates plus an optional street address.
// It is an immutable value object; the zero value fails validation.
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	address   string
	guard     guard.ConstructorGuard
}

// NewGeoPoint validates coordinate ranges and trims the address.
// All violations are reported together.
//
//	point, err := kernel.NewGeoPoint(27.7172, 85.3240, "Thamel, Kathmandu")
func NewGeoPoint(latitude, longitude float64, address string) (GeoPoint, error) {
	p := GeoPoint{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		p.setLatitude(latitude),
		p.setLongitude(longitude),
		p.setAddress(address),
	); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate reports whether the point was built by NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// Address returns the optional street address, empty when unknown.
func (p GeoPoint) Address() string {
	return p.address
}

func (p GeoPoint) String() string {
	if p.address == "" {
		return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.latitude, p.longitude)
	}
	return fmt.Sprintf("GeoPoint(%.6f,%.6f %q)", p.latitude, p.longitude, p.address)
}

// IsEqual compares coordinates and address; both points must be constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}
	return p.latitude == other.latitude && p.longitude == other.longitude && p.address == other.address, nil
}

func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < MinLatitude || latitude > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}
	p.latitude = latitude
	return nil
}

func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < MinLongitude || longitude > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}
	p.longitude = longitude
	return nil
}

func (p *GeoPoint) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if len(address) > MaxAddressLength {
		return errs.NewValueIsOutOfRangeError("address length", len(address), 0, MaxAddressLength)
	}
	p.address = address
	return nil
}
