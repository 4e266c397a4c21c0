package http

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"fueldelivery/internal/generated/servers"
	"fueldelivery/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// Contract is the embedded OpenAPI document of the API together with the
// router that matches requests against it.
type Contract struct {
	doc    *openapi3.T
	raw    string
	router routers.Router
}

// LoadContract decodes and validates the embedded OpenAPI document.
func LoadContract(ctx context.Context) (*Contract, error) {
	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("load openapi contract: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi contract: %w", err)
	}
	// Match paths on whatever host serves them.
	doc.Servers = nil

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode openapi contract: %w", err)
	}
	return &Contract{doc: doc, raw: string(raw), router: router}, nil
}

// Doc returns the loaded document.
func (c *Contract) Doc() *openapi3.T {
	return c.doc
}

// ValidateRequests rejects requests whose parameters or body break the
// contract. Paths outside the contract (/metrics, /ws, /swagger) pass through.
func (c *Contract) ValidateRequests() echo.MiddlewareFunc {
	options := &openapi3filter.Options{MultiError: false}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()
			route, pathParams, err := c.router.FindRoute(req)
			if err != nil {
				return next(ctx)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return contractViolation(err)
			}
			return next(ctx)
		}
	}
}

// contractViolation reports the offending field as a ValueIsInvalidError so
// it renders as 400 like any other malformed input.
func contractViolation(err error) error {
	var reqErr *openapi3filter.RequestError
	if !errors.As(err, &reqErr) {
		return errs.NewValueIsInvalidErrorWithCause("request", err)
	}

	field := "request body"
	if reqErr.Parameter != nil {
		field = reqErr.Parameter.Name
	}
	reason := reqErr.Reason

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
			field = strings.Join(pointer, ".")
		}
		reason = schemaErr.Reason
	}
	if reason == "" {
		reason = reqErr.Error()
	}
	return errs.NewValueIsInvalidErrorWithCause(field, errors.New(reason))
}

var registerDocOnce sync.Once

type contractDoc string

func (d contractDoc) ReadDoc() string {
	return string(d)
}

// DocsHandler serves Swagger UI and /swagger/doc.json for the contract.
// swag keeps a process-wide registry, so only the first contract is published.
func (c *Contract) DocsHandler() echo.HandlerFunc {
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, contractDoc(c.raw))
	})
	return echoSwagger.WrapHandler
}
