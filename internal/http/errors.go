package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/luna/internal/analytics"
	"github.com/fyrsmithlabs/luna/internal/cycle"
	"github.com/fyrsmithlabs/luna/internal/forecast"
	"github.com/fyrsmithlabs/luna/internal/logbook"
	"github.com/fyrsmithlabs/luna/internal/logging"
	"github.com/fyrsmithlabs/luna/internal/risk"
	"github.com/fyrsmithlabs/luna/internal/trends"
	"github.com/fyrsmithlabs/luna/internal/validation"
)

var badRequest = []error{
	cycle.ErrInvalidCycleLength,
	risk.ErrEmptySelection,
	forecast.ErrDivisionGuard,
	forecast.ErrInvalidInput,
	validation.ErrInvalid,
	logbook.ErrInvalidEntry,
	logbook.ErrEmptyUserID,
	analytics.ErrUserRequired,
}

// statusFor maps a service error to an HTTP status.
func statusFor(err error) int {
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	switch {
	case errors.Is(err, trends.ErrInsufficientData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, forecast.ErrModelUnavailable), errors.Is(err, logbook.ErrStoreClosed):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// httpError converts a service error into an echo.HTTPError. Client errors carry the error
// text. Server errors are logged and answered with a generic message.
func (s *Server) httpError(c echo.Context, err error) error {
	status := statusFor(err)
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return echo.NewHTTPError(status, err.Error()).SetInternal(err)
	case http.StatusServiceUnavailable:
		if errors.Is(err, forecast.ErrModelUnavailable) {
			return echo.NewHTTPError(status, forecast.ErrModelUnavailable.Error()).SetInternal(err)
		}
		return echo.NewHTTPError(status, "service unavailable").SetInternal(err)
	default:
		ctx := c.Request().Context()
		s.logger.Error("request failed",
			append(logging.ContextFields(ctx),
				zap.String("path", c.Path()),
				zap.Error(err),
			)...,
		)
		return echo.NewHTTPError(status, http.StatusText(status)).SetInternal(err)
	}
}
