package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"bazaar/internal/auth"
	"bazaar/internal/errors"
	"bazaar/internal/service"
)

// ProductHandler handles product catalog endpoints.
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProductRequest represents a product creation request.
type CreateProductRequest struct {
	Name        string           `json:"name" validate:"required,max=255"`
	Description string           `json:"description" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Quantity    *int             `json:"quantity" validate:"required"`
}

// UpdateProductRequest represents a partial product update. Absent fields
// are left unchanged.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,max=255"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
}

// List godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page (default 10)"
// @Success 200 {object} PageResponse
// @Router /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))

	result, err := h.productService.List(c.Request().Context(), page, perPage)
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
// @Summary Create a product listing
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProductRequest true "Product data"
// @Success 201 {object} model.Product
// @Failure 403 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	principal, err := auth.CurrentPrincipal(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "unauthorized",
			Code:  "UNAUTHORIZED",
		})
	}

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	product, err := h.productService.Create(c.Request().Context(), principal, service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Quantity:    *req.Quantity,
	})
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, product)
}

// Show godoc
// @Summary Get a product by id
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} model.Product
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) Show(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainError(errors.ErrProductNotFound)
	}

	product, err := h.productService.Get(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, product)
}

// Update godoc
// @Summary Update an owned product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body UpdateProductRequest true "Fields to change"
// @Success 200 {object} model.Product
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	principal, err := auth.CurrentPrincipal(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "unauthorized",
			Code:  "UNAUTHORIZED",
		})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainError(errors.ErrProductNotFound)
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	product, err := h.productService.Update(c.Request().Context(), principal, id, service.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, product)
}

// Delete godoc
// @Summary Delete an owned product
// @Tags products
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	principal, err := auth.CurrentPrincipal(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "unauthorized",
			Code:  "UNAUTHORIZED",
		})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainError(errors.ErrProductNotFound)
	}

	if err := h.productService.Delete(c.Request().Context(), principal, id); err != nil {
		return domainError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
