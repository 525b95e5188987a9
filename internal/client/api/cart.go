package api

import (
	"context"
	"net/url"

	"github.com/hansshop/storefront/internal/models"
)

// CartAPI wraps the session-scoped cart endpoints. Every mutating call
// returns the server's authoritative cart.
type CartAPI struct {
	c *Client
}

func (a *CartAPI) base() string {
	return "/cart/" + url.PathEscape(a.c.id.SessionID())
}

// Get fetches the current cart for this session.
func (a *CartAPI) Get(ctx context.Context) (*models.Cart, error) {
	var out models.Cart
	if err := a.c.do(ctx, "GET", a.base(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddItem adds quantity units of a product and returns the new cart.
func (a *CartAPI) AddItem(ctx context.Context, productID string, quantity int) (*models.Cart, error) {
	body := map[string]any{"productId": productID, "quantity": quantity}
	var out models.Cart
	if err := a.c.do(ctx, "POST", a.base()+"/items", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateItem sets the quantity of a cart line. quantity must be >= 1;
// the synchronizer turns lower targets into removals before this call.
func (a *CartAPI) UpdateItem(ctx context.Context, itemID string, quantity int) (*models.Cart, error) {
	body := map[string]any{"quantity": quantity}
	var out models.Cart
	if err := a.c.do(ctx, "PUT", a.base()+"/items/"+url.PathEscape(itemID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveItem deletes a cart line and returns the new cart.
func (a *CartAPI) RemoveItem(ctx context.Context, itemID string) (*models.Cart, error) {
	var out models.Cart
	if err := a.c.do(ctx, "DELETE", a.base()+"/items/"+url.PathEscape(itemID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Clear empties the whole cart server-side.
func (a *CartAPI) Clear(ctx context.Context) error {
	return a.c.do(ctx, "DELETE", a.base(), nil, nil)
}
