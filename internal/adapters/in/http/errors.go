package http

import (
	"errors"
	"log/slog"
	"net/http"

	"fueldelivery/internal/generated/servers"
	"fueldelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps the error taxonomy onto HTTP status codes.
func statusOf(err error) int {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrAccessIsDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrTransitionIsInvalid):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorHandler renders every handler error as Error. Internal failures are
// logged and their message is hidden from the caller.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := statusOf(err)
		msg := err.Error()

		var he *echo.HTTPError
		if errors.As(err, &he) {
			if m, ok := he.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(code)
			}
		}
		if code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
			msg = http.StatusText(code)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, servers.Error{Code: code, Message: msg})
		}
		if writeErr != nil {
			logger.WarnContext(c.Request().Context(), "failed to write error response", "error", writeErr)
		}
	}
}
