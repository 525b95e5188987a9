// Package orders loads the customer's order history.
package orders

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/hansshop/storefront/internal/client/api"
	"github.com/hansshop/storefront/internal/models"
)

// ErrNotAuthenticated means there is no logged-in user to load orders
// for; the view shows a login prompt instead of fetching.
var ErrNotAuthenticated = errors.New("orders: not authenticated")

// ErrNoEmail means neither the cached user nor the session memory holds
// an email to filter orders by. Distinct from plain auth failure so the
// shell can tell the user to log in again.
var ErrNoEmail = errors.New("orders: no customer email resolvable")

// Identity is the slice of the session store the loader needs.
type Identity interface {
	CurrentUser() *models.User
	CustomerEmail() string
}

// History owns the last-loaded order list for the current customer.
type History struct {
	api *api.OrdersAPI
	id  Identity
	log *zap.Logger

	orders []models.Order
}

// New creates an empty History.
func New(ordersAPI *api.OrdersAPI, id Identity, log *zap.Logger) *History {
	if log == nil {
		log = zap.NewNop()
	}
	return &History{api: ordersAPI, id: id, log: log}
}

// Reload fetches the orders for the current customer's email. The email
// comes from the cached user when it carries one, otherwise from the
// remembered login email.
func (h *History) Reload(ctx context.Context) error {
	if h.id.CurrentUser() == nil {
		return ErrNotAuthenticated
	}
	email := h.id.CustomerEmail()
	if email == "" {
		return ErrNoEmail
	}
	list, err := h.api.ByCustomerEmail(ctx, email)
	if err != nil {
		h.log.Warn("order history reload failed", zap.Error(err))
		return err
	}
	h.orders = list
	return nil
}

// Orders returns the last-loaded history.
func (h *History) Orders() []models.Order {
	return h.orders
}
