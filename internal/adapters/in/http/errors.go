package http

import (
	"errors"
	"net/http"

	"shipping/internal/core/domain/model/batch"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/generated/servers"
	"shipping/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var conflictErrors = []error{
	batch.ErrInvalidPhase,
	batch.ErrRunCancelled,
	batch.ErrOrderAlreadyShipped,
	batch.ErrManualPickNotAllowed,
	shipment.ErrRateTokenConsumed,
}

var validationErrors = []error{
	errs.ErrValueIsRequired,
	errs.ErrValueIsInvalid,
	errs.ErrValueIsOutOfRange,
	shipment.ErrRateNotChosen,
}

// toHTTPError maps a use case error to the response body and status.
func toHTTPError(err error) servers.Error {
	var balanceErr *batch.InsufficientBalanceError
	if errors.As(err, &balanceErr) {
		shortfall := balanceErr.Shortfall().Float64()
		return servers.Error{Code: http.StatusConflict, Message: err.Error(), Shortfall: &shortfall}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		return servers.Error{Code: httpErr.Code, Message: msg}
	}

	if errors.Is(err, errs.ErrObjectNotFound) {
		return servers.Error{Code: http.StatusNotFound, Message: err.Error()}
	}

	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return servers.Error{Code: http.StatusConflict, Message: err.Error()}
		}
	}

	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return servers.Error{Code: http.StatusUnprocessableEntity, Message: err.Error()}
		}
	}

	return servers.Error{Code: http.StatusInternalServerError, Message: "Internal server error"}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	body := toHTTPError(err)
	if body.Code >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
	}
	return ctx.JSON(body.Code, body)
}

// errorHandler renders errors that never reached a handler, such as unknown
// routes or rejected parameters, in the same body as handler errors.
func errorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}
	body := toHTTPError(err)
	if ctx.Request().Method == http.MethodHead {
		_ = ctx.NoContent(body.Code)
		return
	}
	_ = ctx.JSON(body.Code, body)
}
