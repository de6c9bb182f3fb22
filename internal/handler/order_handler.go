package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bazaar/internal/auth"
	"bazaar/internal/errors"
	"bazaar/internal/service"
)

// OrderHandler handles order endpoints. All of them require a principal.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrderRequest represents an order creation request.
type CreateOrderRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// UpdateOrderRequest represents an order quantity update.
type UpdateOrderRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

func (h *OrderHandler) principal(c echo.Context) (auth.Principal, *echo.HTTPError) {
	principal, err := auth.CurrentPrincipal(c)
	if err != nil {
		return auth.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "unauthorized",
			Code:  "UNAUTHORIZED",
		})
	}
	return principal, nil
}

// List godoc
// @Summary List the caller's orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Success 200 {object} PageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	principal, httpErr := h.principal(c)
	if httpErr != nil {
		return httpErr
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))

	result, err := h.orderService.List(c.Request().Context(), principal, page)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, PageResponse{
		Data:        result.Items,
		CurrentPage: result.Page,
		PerPage:     result.PerPage,
		LastPage:    result.Pages,
		Total:       result.Total,
	})
}

// Create godoc
// @Summary Place an order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateOrderRequest true "Order data"
// @Success 201 {object} model.Order
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	principal, httpErr := h.principal(c)
	if httpErr != nil {
		return httpErr
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return validationError(err)
	}

	order, err := h.orderService.Create(c.Request().Context(), principal, service.CreateOrderInput{
		ProductID: productID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, order)
}

// Show godoc
// @Summary Get one of the caller's orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} model.Order
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) Show(c echo.Context) error {
	principal, httpErr := h.principal(c)
	if httpErr != nil {
		return httpErr
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainError(errors.ErrOrderNotFound)
	}

	order, err := h.orderService.Get(c.Request().Context(), principal, id)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, order)
}

// Update godoc
// @Summary Update an owned order's quantity
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body UpdateOrderRequest true "New quantity"
// @Success 200 {object} model.Order
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /orders/{id} [put]
func (h *OrderHandler) Update(c echo.Context) error {
	principal, httpErr := h.principal(c)
	if httpErr != nil {
		return httpErr
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainError(errors.ErrOrderNotFound)
	}

	var req UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	order, err := h.orderService.UpdateQuantity(c.Request().Context(), principal, id, req.Quantity)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, order)
}

// Delete godoc
// @Summary Delete an owned order
// @Tags orders
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	principal, httpErr := h.principal(c)
	if httpErr != nil {
		return httpErr
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainError(errors.ErrOrderNotFound)
	}

	if err := h.orderService.Delete(c.Request().Context(), principal, id); err != nil {
		return domainError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
