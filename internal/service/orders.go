package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hansshop/storefront/internal/models"
)

// OrderRepository defines the persistence operations required by the
// orders service.
type OrderRepository interface {
	// Create stores a new order with its items.
	Create(ctx context.Context, o models.Order) error
	// List returns all orders, newest first.
	List(ctx context.Context) ([]models.Order, error)
	// Get returns the order with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*models.Order, error)
	// ByCustomerEmail returns a customer's orders, newest first.
	ByCustomerEmail(ctx context.Context, email string) ([]models.Order, error)
	// UpdateStatus moves an order to a new status, or returns ErrNotFound.
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
}

// OrdersService turns carts into orders and manages their lifecycle.
type OrdersService struct {
	orders OrderRepository
	carts  CartRepository
}

// NewOrdersService constructs an OrdersService.
func NewOrdersService(orders OrderRepository, carts CartRepository) *OrdersService {
	return &OrdersService{orders: orders, carts: carts}
}

// Create places an order from the session's cart and clears the cart.
func (s *OrdersService) Create(ctx context.Context, sessionID, customerName, customerEmail string) (*models.Order, error) {
	if customerName == "" || customerEmail == "" {
		return nil, fmt.Errorf("%w: customer name and email are required", ErrValidation)
	}

	lines, err := s.carts.Items(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	items := make([]models.OrderItem, 0, len(lines))
	subtotal := 0.0
	for _, l := range lines {
		sub := l.Price * float64(l.Quantity)
		items = append(items, models.OrderItem{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Price:       l.Price,
			Quantity:    l.Quantity,
			Subtotal:    sub,
		})
		subtotal += sub
	}

	order := models.Order{
		ID:            uuid.NewString(),
		OrderNumber:   "ORD-" + strings.ToUpper(uuid.NewString()[:8]),
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		Items:         items,
		Subtotal:      subtotal,
		Tax:           0,
		Total:         subtotal,
		Status:        models.OrderPending,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// The cart is spent once the order exists; a failed clear leaves
	// at worst a cart the customer empties on the next checkout.
	_ = s.carts.Clear(ctx, sessionID)

	return &order, nil
}

// List returns all orders.
func (s *OrdersService) List(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx)
}

// Get returns one order.
func (s *OrdersService) Get(ctx context.Context, id string) (*models.Order, error) {
	return s.orders.Get(ctx, id)
}

// ByCustomerEmail returns the orders placed under an email.
func (s *OrdersService) ByCustomerEmail(ctx context.Context, email string) ([]models.Order, error) {
	return s.orders.ByCustomerEmail(ctx, email)
}

// UpdateStatus moves an order to a new lifecycle state.
func (s *OrdersService) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("%w: unknown order status %q", ErrValidation, status)
	}
	return s.orders.UpdateStatus(ctx, id, status)
}
