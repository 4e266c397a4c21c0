package http

import (
	"errors"
	"reflect"
	"strings"

	"fueldelivery/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// RequestValidator plugs validator/v10 into echo.Context.Validate.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return &RequestValidator{validate: v}
}

// Validate reports the first failing field as a ValueIsInvalidError so it
// maps to 400 like every other malformed input.
func (rv *RequestValidator) Validate(i any) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errs.NewValueIsInvalidErrorWithCause("request", err)
	}
	fe := fieldErrs[0]
	return errs.NewValueIsInvalidErrorWithCause(fieldPath(fe), errors.New(validationMessage(fe)))
}

// fieldPath drops the root struct name: "PlaceOrderRequest.location.latitude" -> "location.latitude".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	}
	return "is invalid"
}
