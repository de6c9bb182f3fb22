package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bazaar/internal/auth"
	"bazaar/internal/cache"
	"bazaar/internal/errors"
	"bazaar/internal/model"
	"bazaar/internal/repository"
)

const (
	productCacheTTL    = 5 * time.Minute
	defaultProductPage = 10
)

// CreateProductInput carries validated product creation data.
type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
}

// UpdateProductInput carries a partial product update. Nil fields are left
// unchanged.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Quantity    *int
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Items   []model.Product
	Total   int64
	Page    int
	PerPage int
	Pages   int
}

// ProductService exposes product catalog operations.
type ProductService interface {
	List(ctx context.Context, page, perPage int) (*ProductPage, error)
	Create(ctx context.Context, principal auth.Principal, input CreateProductInput) (*model.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Update(ctx context.Context, principal auth.Principal, id uuid.UUID, input UpdateProductInput) (*model.Product, error)
	Delete(ctx context.Context, principal auth.Principal, id uuid.UUID) error
}

type productService struct {
	repo  repository.ProductRepository
	cache *cache.Client
}

// NewProductService builds a ProductService with repository and cache.
func NewProductService(repo repository.ProductRepository, cache *cache.Client) ProductService {
	return &productService{repo: repo, cache: cache}
}

func (s *productService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("product:%s", id.String())
}

// List returns a page of all products. Listing is public and unfiltered.
func (s *productService) List(ctx context.Context, page, perPage int) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultProductPage
	}

	items, total, err := s.repo.List(ctx, (page-1)*perPage, perPage)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return &ProductPage{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   pageCount(total, perPage),
	}, nil
}

// Create persists a new product owned by the principal. Only sellers may
// create listings.
func (s *productService) Create(ctx context.Context, principal auth.Principal, input CreateProductInput) (*model.Product, error) {
	if principal.Role != model.RoleSeller {
		return nil, errors.ErrSellerOnly
	}
	if input.Price.IsNegative() {
		return nil, errors.ErrInvalidPrice
	}
	if input.Quantity < 0 {
		return nil, errors.ErrInvalidQuantity
	}

	product := &model.Product{
		UserID:      principal.ID,
		Name:        input.Name,
		Slug:        slug.Make(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// Get returns a single product, serving repeated reads from cache.
func (s *productService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Product
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	if payload, err := json.Marshal(product); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, productCacheTTL)
	}
	return product, nil
}

// Update applies a partial update after the ownership check. The slug tracks
// the name.
func (s *productService) Update(ctx context.Context, principal auth.Principal, id uuid.UUID, input UpdateProductInput) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	if err := checkOwnership(principal.ID, product.UserID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
		product.Slug = slug.Make(*input.Name)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, errors.ErrInvalidPrice
		}
		product.Price = *input.Price
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, errors.ErrInvalidQuantity
		}
		product.Quantity = *input.Quantity
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return product, nil
}

// Delete hard-deletes the product after the ownership check.
func (s *productService) Delete(ctx context.Context, principal auth.Principal, id uuid.UUID) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrProductNotFound
		}
		return fmt.Errorf("find product: %w", err)
	}

	if err := checkOwnership(principal.ID, product.UserID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// pageCount mirrors paginator semantics: an empty result still has one page.
func pageCount(total int64, perPage int) int {
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	if pages < 1 {
		pages = 1
	}
	return pages
}
