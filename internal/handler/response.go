package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bazaar/internal/errors"
)

// PageResponse is the envelope for paginated list endpoints.
type PageResponse struct {
	Data        interface{} `json:"data"`
	CurrentPage int         `json:"current_page"`
	PerPage     int         `json:"per_page"`
	LastPage    int         `json:"last_page"`
	Total       int64       `json:"total"`
}

// bindError is returned when the request body cannot be decoded at all.
func bindError() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: "invalid request body",
		Code:  "INVALID_REQUEST",
	})
}

// validationError surfaces validator failures as 422 with field messages.
func validationError(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnprocessableEntity, errors.ErrorResponse{
		Error: err.Error(),
		Code:  "VALIDATION_ERROR",
	})
}

// domainError translates service errors through the shared mapping table.
func domainError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
