package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"bazaar/internal/errors"
	"bazaar/internal/model"
)

func TestOrderService_Create(t *testing.T) {
	buyer := buyerPrincipal()
	productID := uuid.New()
	product := &model.Product{
		ID:       productID,
		UserID:   uuid.New(),
		Name:     "Product 1",
		Price:    decimal.RequireFromString("100.00"),
		Quantity: 10,
	}

	t.Run("total is price times quantity", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockProducts := new(MockProductRepository)
		mockProducts.On("FindByID", mock.Anything, productID).Return(product, nil)
		mockOrders.On("Create", mock.Anything, mock.AnythingOfType("*model.Order")).Return(nil)

		svc := NewOrderService(mockOrders, mockProducts, nil)
		order, err := svc.Create(context.Background(), buyer, CreateOrderInput{
			ProductID: productID,
			Quantity:  2,
		})

		assert.NoError(t, err)
		assert.Equal(t, buyer.ID, order.UserID)
		assert.Equal(t, productID, order.ProductID)
		assert.Equal(t, model.OrderStatusPending, order.Status)
		assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("200.00")),
			"got total %s", order.TotalPrice)
		mockOrders.AssertExpectations(t)
	})

	t.Run("missing product yields not found", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockProducts := new(MockProductRepository)
		mockProducts.On("FindByID", mock.Anything, productID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewOrderService(mockOrders, mockProducts, nil)
		_, err := svc.Create(context.Background(), buyer, CreateOrderInput{
			ProductID: productID,
			Quantity:  2,
		})

		assert.Equal(t, errors.ErrProductNotFound, err)
		mockOrders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockProducts := new(MockProductRepository)

		svc := NewOrderService(mockOrders, mockProducts, nil)
		_, err := svc.Create(context.Background(), buyer, CreateOrderInput{
			ProductID: productID,
			Quantity:  0,
		})

		assert.Equal(t, errors.ErrInvalidQuantity, err)
	})
}

func TestOrderService_OwnershipGate(t *testing.T) {
	owner := buyerPrincipal()
	other := buyerPrincipal()
	orderID := uuid.New()

	existing := func() *model.Order {
		return &model.Order{
			ID:         orderID,
			UserID:     owner.ID,
			ProductID:  uuid.New(),
			Quantity:   2,
			TotalPrice: decimal.RequireFromString("200.00"),
			Status:     model.OrderStatusPending,
		}
	}

	t.Run("owner can view own order", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockProducts := new(MockProductRepository)
		mockOrders.On("FindByID", mock.Anything, orderID).Return(existing(), nil)

		svc := NewOrderService(mockOrders, mockProducts, nil)
		order, err := svc.Get(context.Background(), owner, orderID)

		assert.NoError(t, err)
		assert.Equal(t, orderID, order.ID)
	})

	t.Run("show by non-owner is rejected", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockProducts := new(MockProductRepository)
		mockOrders.On("FindByID", mock.Anything, orderID).Return(existing(), nil)

		svc := NewOrderService(mockOrders, mockProducts, nil)
		_, err := svc.Get(context.Background(), other, orderID)

		assert.Equal(t, errors.ErrNotOwner, err)
	})

	t.Run("update by non-owner leaves order unchanged", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockProducts := new(MockProductRepository)
		mockOrders.On("FindByID", mock.Anything, orderID).Return(existing(), nil)

		svc := NewOrderService(mockOrders, mockProducts, nil)
		_, err := svc.UpdateQuantity(context.Background(), other, orderID, 3)

		assert.Equal(t, errors.ErrNotOwner, err)
		mockOrders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("delete by non-owner leaves order unchanged", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockProducts := new(MockProductRepository)
		mockOrders.On("FindByID", mock.Anything, orderID).Return(existing(), nil)

		svc := NewOrderService(mockOrders, mockProducts, nil)
		err := svc.Delete(context.Background(), other, orderID)

		assert.Equal(t, errors.ErrNotOwner, err)
		mockOrders.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing order yields not found", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockProducts := new(MockProductRepository)
		mockOrders.On("FindByID", mock.Anything, orderID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewOrderService(mockOrders, mockProducts, nil)
		_, err := svc.Get(context.Background(), owner, orderID)

		assert.Equal(t, errors.ErrOrderNotFound, err)
	})
}

func TestOrderService_UpdateQuantityUsesLivePrice(t *testing.T) {
	owner := buyerPrincipal()
	orderID := uuid.New()
	productID := uuid.New()

	// order was placed when the product cost 100.00
	order := &model.Order{
		ID:         orderID,
		UserID:     owner.ID,
		ProductID:  productID,
		Quantity:   2,
		TotalPrice: decimal.RequireFromString("200.00"),
		Status:     model.OrderStatusPending,
	}
	// the seller has since repriced it
	product := &model.Product{
		ID:     productID,
		UserID: uuid.New(),
		Price:  decimal.RequireFromString("150.00"),
	}

	mockOrders := new(MockOrderRepository)
	mockProducts := new(MockProductRepository)
	mockOrders.On("FindByID", mock.Anything, orderID).Return(order, nil)
	mockProducts.On("FindByID", mock.Anything, productID).Return(product, nil)
	mockOrders.On("Update", mock.Anything, mock.AnythingOfType("*model.Order")).Return(nil)

	svc := NewOrderService(mockOrders, mockProducts, nil)
	updated, err := svc.UpdateQuantity(context.Background(), owner, orderID, 3)

	assert.NoError(t, err)
	assert.Equal(t, 3, updated.Quantity)
	assert.True(t, updated.TotalPrice.Equal(decimal.RequireFromString("450.00")),
		"expected live price recompute, got %s", updated.TotalPrice)
	mockOrders.AssertExpectations(t)
}

func TestOrderService_ListIsScopedToCaller(t *testing.T) {
	buyer := buyerPrincipal()
	orders := []model.Order{
		{ID: uuid.New(), UserID: buyer.ID},
		{ID: uuid.New(), UserID: buyer.ID},
	}

	mockOrders := new(MockOrderRepository)
	mockProducts := new(MockProductRepository)
	mockOrders.On("ListByUser", mock.Anything, buyer.ID, 0, 10).Return(orders, int64(2), nil)

	svc := NewOrderService(mockOrders, mockProducts, nil)
	result, err := svc.List(context.Background(), buyer, 1)

	assert.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(2), result.Total)
	assert.Equal(t, 10, result.PerPage)
	assert.Equal(t, 1, result.Pages)
	mockOrders.AssertExpectations(t)
}
