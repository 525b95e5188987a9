package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hansshop/storefront/internal/models"
)

// CartRepository defines the persistence operations required by the
// cart service. Every mutation also refreshes the cart's last-activity
// timestamp so stale anonymous carts can be swept.
type CartRepository interface {
	// Items returns the cart lines for a session; an unknown session
	// yields an empty slice, carts exist lazily.
	Items(ctx context.Context, sessionID string) ([]models.CartItem, error)
	// InsertItem appends a new line.
	InsertItem(ctx context.Context, sessionID string, item models.CartItem) error
	// UpdateQuantity sets a line's quantity, or returns ErrNotFound.
	UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) error
	// DeleteItem removes a line, or returns ErrNotFound.
	DeleteItem(ctx context.Context, sessionID, itemID string) error
	// Clear removes all lines of a session.
	Clear(ctx context.Context, sessionID string) error
}

// CartService implements session-scoped cart operations. Every call
// returns the authoritative cart with its server-computed total.
type CartService struct {
	carts    CartRepository
	products ProductRepository
}

// NewCartService constructs a CartService.
func NewCartService(carts CartRepository, products ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

func buildCart(items []models.CartItem) *models.Cart {
	if items == nil {
		items = []models.CartItem{}
	}
	total := 0.0
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return &models.Cart{Items: items, Total: total}
}

// Get returns the session's cart, empty when none exists yet.
func (s *CartService) Get(ctx context.Context, sessionID string) (*models.Cart, error) {
	items, err := s.carts.Items(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return buildCart(items), nil
}

// AddItem puts quantity units of a product into the cart, merging into
// an existing line for the same product.
func (s *CartService) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	items, err := s.carts.Items(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	merged := false
	for _, it := range items {
		if it.ProductID == productID {
			if err := s.carts.UpdateQuantity(ctx, sessionID, it.ID, it.Quantity+quantity); err != nil {
				return nil, err
			}
			merged = true
			break
		}
	}
	if !merged {
		line := models.CartItem{
			ID:          uuid.NewString(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Price:       product.Price,
			Quantity:    quantity,
		}
		if err := s.carts.InsertItem(ctx, sessionID, line); err != nil {
			return nil, fmt.Errorf("insert item: %w", err)
		}
	}
	return s.Get(ctx, sessionID)
}

// UpdateItem sets a line's quantity. Non-positive quantities are
// rejected; the client issues removals instead.
func (s *CartService) UpdateItem(ctx context.Context, sessionID, itemID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	if err := s.carts.UpdateQuantity(ctx, sessionID, itemID, quantity); err != nil {
		return nil, err
	}
	return s.Get(ctx, sessionID)
}

// RemoveItem deletes a line from the cart.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, itemID string) (*models.Cart, error) {
	if err := s.carts.DeleteItem(ctx, sessionID, itemID); err != nil {
		return nil, err
	}
	return s.Get(ctx, sessionID)
}

// Clear empties the session's cart.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.carts.Clear(ctx, sessionID)
}
