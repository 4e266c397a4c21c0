package http

import (
	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"
	"fueldelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return c.Validate(req)
}

// idFrom rejects the nil UUID, which the generated binders accept.
func idFrom(name string, id openapi_types.UUID) (kernel.UUID, error) {
	parsed, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return parsed, nil
}

func statusFilter(raw *string) (*order.Status, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	status, err := order.ParseStatus(*raw)
	if err != nil {
		return nil, err
	}
	return &status, nil
}
