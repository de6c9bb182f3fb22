package service

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bazaar/internal/auth"
	"bazaar/internal/errors"
	"bazaar/internal/events"
	"bazaar/internal/model"
	"bazaar/internal/repository"
)

// Order listings always use a fixed page size.
const orderPageSize = 10

var orderLogger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "orders").Logger()

// CreateOrderInput carries validated order creation data.
type CreateOrderInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// OrderPage is one page of the caller's own orders.
type OrderPage struct {
	Items   []model.Order
	Total   int64
	Page    int
	PerPage int
	Pages   int
}

// OrderService exposes order operations. Every operation on an existing
// order applies the ownership check before any other processing.
type OrderService interface {
	List(ctx context.Context, principal auth.Principal, page int) (*OrderPage, error)
	Create(ctx context.Context, principal auth.Principal, input CreateOrderInput) (*model.Order, error)
	Get(ctx context.Context, principal auth.Principal, id uuid.UUID) (*model.Order, error)
	UpdateQuantity(ctx context.Context, principal auth.Principal, id uuid.UUID, quantity int) (*model.Order, error)
	Delete(ctx context.Context, principal auth.Principal, id uuid.UUID) error
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	publisher   *events.Publisher
}

// NewOrderService creates a new order service.
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, publisher *events.Publisher) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// List returns a page of the principal's own orders.
func (s *orderService) List(ctx context.Context, principal auth.Principal, page int) (*OrderPage, error) {
	if page < 1 {
		page = 1
	}

	items, total, err := s.orderRepo.ListByUser(ctx, principal.ID, (page-1)*orderPageSize, orderPageSize)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return &OrderPage{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: orderPageSize,
		Pages:   pageCount(total, orderPageSize),
	}, nil
}

// Create places an order for an existing product. The total is the product
// price at this moment times the ordered quantity.
func (s *orderService) Create(ctx context.Context, principal auth.Principal, input CreateOrderInput) (*model.Order, error) {
	if input.Quantity < 1 {
		return nil, errors.ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	order := &model.Order{
		UserID:     principal.ID,
		ProductID:  product.ID,
		Quantity:   input.Quantity,
		TotalPrice: product.Price.Mul(decimal.NewFromInt(int64(input.Quantity))),
		Status:     model.OrderStatusPending,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		orderLogger.Error().Err(err).Str("product_id", product.ID.String()).Msg("create order")
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.publisher.PublishOrderEvent(ctx, order, events.ActionCreated)
	return order, nil
}

// Get returns one order after the ownership check.
func (s *orderService) Get(ctx context.Context, principal auth.Principal, id uuid.UUID) (*model.Order, error) {
	order, err := s.findOwned(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateQuantity changes the quantity and recomputes the total from the
// current product price, not the price at order creation.
func (s *orderService) UpdateQuantity(ctx context.Context, principal auth.Principal, id uuid.UUID, quantity int) (*model.Order, error) {
	order, err := s.findOwned(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if quantity < 1 {
		return nil, errors.ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(ctx, order.ProductID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	order.Quantity = quantity
	order.TotalPrice = product.Price.Mul(decimal.NewFromInt(int64(quantity)))

	if err := s.orderRepo.Update(ctx, order); err != nil {
		orderLogger.Error().Err(err).Str("order_id", id.String()).Msg("update order")
		return nil, fmt.Errorf("update order: %w", err)
	}

	s.publisher.PublishOrderEvent(ctx, order, events.ActionUpdated)
	return order, nil
}

// Delete hard-deletes the order after the ownership check.
func (s *orderService) Delete(ctx context.Context, principal auth.Principal, id uuid.UUID) error {
	order, err := s.findOwned(ctx, principal, id)
	if err != nil {
		return err
	}

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		orderLogger.Error().Err(err).Str("order_id", id.String()).Msg("delete order")
		return fmt.Errorf("delete order: %w", err)
	}

	s.publisher.PublishOrderEvent(ctx, order, events.ActionDeleted)
	return nil
}

// findOwned loads an order and aborts with ErrNotOwner unless the principal
// owns it.
func (s *orderService) findOwned(ctx context.Context, principal auth.Principal, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	if err := checkOwnership(principal.ID, order.UserID); err != nil {
		return nil, err
	}
	return order, nil
}
