package api

import (
	"context"
	"net/url"

	"github.com/hansshop/storefront/internal/models"
)

// OrdersAPI wraps the order endpoints.
type OrdersAPI struct {
	c *Client
}

// OrderReceipt is the response of a successful order creation.
type OrderReceipt struct {
	Message string        `json:"message,omitempty"`
	Order   *models.Order `json:"order"`
}

// Create places an order from the session's cart.
func (o *OrdersAPI) Create(ctx context.Context, customerName, customerEmail string) (*OrderReceipt, error) {
	body := map[string]any{
		"customerName":  customerName,
		"customerEmail": customerEmail,
		"sessionId":     o.c.id.SessionID(),
	}
	var out OrderReceipt
	if err := o.c.do(ctx, "POST", "/orders", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List fetches all orders. Requires an admin token.
func (o *OrdersAPI) List(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	if err := o.c.do(ctx, "GET", "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single order by id.
func (o *OrdersAPI) Get(ctx context.Context, id string) (*models.Order, error) {
	var out models.Order
	if err := o.c.do(ctx, "GET", "/orders/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByCustomerEmail fetches the orders placed under the given email.
func (o *OrdersAPI) ByCustomerEmail(ctx context.Context, email string) ([]models.Order, error) {
	var out []models.Order
	if err := o.c.do(ctx, "GET", "/orders/customer/"+url.PathEscape(email), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus moves an order to a new lifecycle state. Admin only.
func (o *OrdersAPI) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	body := map[string]any{"status": status}
	return o.c.do(ctx, "PUT", "/orders/"+url.PathEscape(id)+"/status", body, nil)
}
