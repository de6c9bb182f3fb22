package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"bazaar/internal/auth"
	"bazaar/internal/errors"
	"bazaar/internal/model"
)

func sellerPrincipal() auth.Principal {
	return auth.Principal{ID: uuid.New(), Email: "seller@example.com", Role: model.RoleSeller}
}

func buyerPrincipal() auth.Principal {
	return auth.Principal{ID: uuid.New(), Email: "buyer@example.com", Role: model.RoleBuyer}
}

func TestProductService_Create(t *testing.T) {
	price := decimal.RequireFromString("100.00")
	negative := decimal.RequireFromString("-1.00")

	tests := []struct {
		name          string
		principal     auth.Principal
		input         CreateProductInput
		setupMock     func(*MockProductRepository)
		expectedError error
	}{
		{
			name:      "seller creates product",
			principal: sellerPrincipal(),
			input: CreateProductInput{
				Name:        "Product 1",
				Description: "Description of Product 1",
				Price:       price,
				Quantity:    10,
			},
			setupMock: func(m *MockProductRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:      "buyer cannot create product",
			principal: buyerPrincipal(),
			input: CreateProductInput{
				Name:        "Product 1",
				Description: "Description of Product 1",
				Price:       price,
				Quantity:    10,
			},
			setupMock:     func(m *MockProductRepository) {},
			expectedError: errors.ErrSellerOnly,
		},
		{
			name:      "negative price rejected",
			principal: sellerPrincipal(),
			input: CreateProductInput{
				Name:        "Product 1",
				Description: "Description of Product 1",
				Price:       negative,
				Quantity:    10,
			},
			setupMock:     func(m *MockProductRepository) {},
			expectedError: errors.ErrInvalidPrice,
		},
		{
			name:      "negative quantity rejected",
			principal: sellerPrincipal(),
			input: CreateProductInput{
				Name:        "Product 1",
				Description: "Description of Product 1",
				Price:       price,
				Quantity:    -5,
			},
			setupMock:     func(m *MockProductRepository) {},
			expectedError: errors.ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			tt.setupMock(mockRepo)

			svc := NewProductService(mockRepo, nil)
			product, err := svc.Create(context.Background(), tt.principal, tt.input)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, product)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, product)
				assert.Equal(t, tt.principal.ID, product.UserID)
				assert.Equal(t, "product-1", product.Slug)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProductService_Update(t *testing.T) {
	owner := sellerPrincipal()
	productID := uuid.New()

	newName := "Updated Product"
	newQuantity := 20
	newPrice := decimal.RequireFromString("150.00")

	existing := func() *model.Product {
		return &model.Product{
			ID:          productID,
			UserID:      owner.ID,
			Name:        "Product 1",
			Slug:        "product-1",
			Description: "Description of Product 1",
			Price:       decimal.RequireFromString("100.00"),
			Quantity:    10,
		}
	}

	t.Run("owner applies partial update", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByID", mock.Anything, productID).Return(existing(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)

		svc := NewProductService(mockRepo, nil)
		product, err := svc.Update(context.Background(), owner, productID, UpdateProductInput{
			Name:     &newName,
			Quantity: &newQuantity,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Updated Product", product.Name)
		assert.Equal(t, "updated-product", product.Slug)
		assert.Equal(t, 20, product.Quantity)
		// untouched fields keep their values
		assert.Equal(t, "Description of Product 1", product.Description)
		assert.True(t, product.Price.Equal(decimal.RequireFromString("100.00")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("non-owner is rejected without mutation", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByID", mock.Anything, productID).Return(existing(), nil)

		svc := NewProductService(mockRepo, nil)
		product, err := svc.Update(context.Background(), buyerPrincipal(), productID, UpdateProductInput{
			Name: &newName,
		})

		assert.Equal(t, errors.ErrNotOwner, err)
		assert.Nil(t, product)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("negative price update rejected", func(t *testing.T) {
		bad := decimal.RequireFromString("-150.00")
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByID", mock.Anything, productID).Return(existing(), nil)

		svc := NewProductService(mockRepo, nil)
		_, err := svc.Update(context.Background(), owner, productID, UpdateProductInput{Price: &bad})

		assert.Equal(t, errors.ErrInvalidPrice, err)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing product yields not found", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByID", mock.Anything, productID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewProductService(mockRepo, nil)
		_, err := svc.Update(context.Background(), owner, productID, UpdateProductInput{Price: &newPrice})

		assert.Equal(t, errors.ErrProductNotFound, err)
	})
}

func TestProductService_Delete(t *testing.T) {
	owner := sellerPrincipal()
	productID := uuid.New()
	existing := &model.Product{ID: productID, UserID: owner.ID, Name: "Product 1"}

	t.Run("owner deletes product", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByID", mock.Anything, productID).Return(existing, nil)
		mockRepo.On("Delete", mock.Anything, productID).Return(nil)

		svc := NewProductService(mockRepo, nil)
		err := svc.Delete(context.Background(), owner, productID)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByID", mock.Anything, productID).Return(existing, nil)

		svc := NewProductService(mockRepo, nil)
		err := svc.Delete(context.Background(), buyerPrincipal(), productID)

		assert.Equal(t, errors.ErrNotOwner, err)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestProductService_Get(t *testing.T) {
	productID := uuid.New()

	t.Run("missing product yields not found", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByID", mock.Anything, productID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewProductService(mockRepo, nil)
		_, err := svc.Get(context.Background(), productID)

		assert.Equal(t, errors.ErrProductNotFound, err)
	})
}

func TestProductService_ListPagination(t *testing.T) {
	tests := []struct {
		name          string
		page          int
		perPage       int
		total         int64
		expectedPages int
		expectedOff   int
		expectedLim   int
	}{
		{name: "defaults", page: 0, perPage: 0, total: 25, expectedPages: 3, expectedOff: 0, expectedLim: 10},
		{name: "exact division", page: 1, perPage: 5, total: 25, expectedPages: 5, expectedOff: 0, expectedLim: 5},
		{name: "remainder adds a page", page: 2, perPage: 10, total: 21, expectedPages: 3, expectedOff: 10, expectedLim: 10},
		{name: "empty listing still has one page", page: 1, perPage: 10, total: 0, expectedPages: 1, expectedOff: 0, expectedLim: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			mockRepo.On("List", mock.Anything, tt.expectedOff, tt.expectedLim).
				Return([]model.Product{}, tt.total, nil)

			svc := NewProductService(mockRepo, nil)
			result, err := svc.List(context.Background(), tt.page, tt.perPage)

			assert.NoError(t, err)
			assert.Equal(t, tt.total, result.Total)
			assert.Equal(t, tt.expectedPages, result.Pages)
			mockRepo.AssertExpectations(t)
		})
	}
}
