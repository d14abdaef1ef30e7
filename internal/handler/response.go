package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/petriapp/petri-backend/internal/service"
)

type ErrorResponse struct {
	Error      string `json:"error"`
	Detail     string `json:"detail,omitempty"`
	StatusCode int    `json:"status_code"`
}

func NewErrorResponse(status int, code, detail string) ErrorResponse {
	return ErrorResponse{
		Error:      code,
		Detail:     detail,
		StatusCode: status,
	}
}

// respondServiceError maps the service sentinel errors onto the wire format.
// Unknown errors become opaque 500s; the detail never leaks internals.
func respondServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, "validation_error", err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, NewErrorResponse(http.StatusUnauthorized, "unauthorized", "invalid credentials"))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, NewErrorResponse(http.StatusForbidden, "forbidden", "you do not have access to this resource"))
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse(http.StatusNotFound, "not_found", "resource not found"))
	case errors.Is(err, service.ErrInsufficientHoldings):
		return c.JSON(http.StatusConflict, NewErrorResponse(http.StatusConflict, "insufficient_holdings", "you do not hold enough shares to sell"))
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, NewErrorResponse(http.StatusConflict, "conflict", err.Error()))
	case errors.Is(err, service.ErrUpstream):
		return c.JSON(http.StatusBadGateway, NewErrorResponse(http.StatusBadGateway, "upstream_error", "an external service failed"))
	default:
		return c.JSON(http.StatusInternalServerError, NewErrorResponse(http.StatusInternalServerError, "internal_error", "something went wrong"))
	}
}
