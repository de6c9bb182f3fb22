package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrNotOwner is returned when the caller does not own the resource.
	ErrNotOwner = errors.New("unauthorized")
	// ErrSellerOnly is returned when a non-seller tries to create a product.
	ErrSellerOnly = errors.New("only sellers can create products")
	// ErrInvalidPrice is returned when a product price is negative.
	ErrInvalidPrice = errors.New("price must not be negative")
	// ErrInvalidQuantity is returned when a quantity is out of range.
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Ownership failures map
// to 401 and the seller role gate to 403, matching the behavior the API's
// consumers already depend on.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrProductNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "PRODUCT_NOT_FOUND")
	case ErrOrderNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "ORDER_NOT_FOUND")
	case ErrNotOwner:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "NOT_OWNER")
	case ErrSellerOnly:
		return NewHTTPError(http.StatusForbidden, err.Error(), "SELLER_ROLE_REQUIRED")
	case ErrInvalidPrice:
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "INVALID_PRICE")
	case ErrInvalidQuantity:
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "INVALID_QUANTITY")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
