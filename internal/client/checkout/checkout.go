// Package checkout turns the current cart into an order.
package checkout

import (
	"context"

	"github.com/hansshop/storefront/internal/client/api"
	"github.com/hansshop/storefront/internal/client/cart"
	"github.com/hansshop/storefront/internal/models"
)

// ValidationError is a missing or invalid form field, caught before any
// network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Field + ": " + e.Reason
}

// Identity is the slice of the session store checkout needs.
type Identity interface {
	CurrentUser() *models.User
	CustomerEmail() string
	RememberEmail(email string) error
}

// Form holds the checkout fields the customer fills in.
type Form struct {
	Name  string
	Email string
}

// Prefill fills empty form fields from the current identity. Fields the
// customer already typed into are never overwritten.
func Prefill(f *Form, id Identity) {
	user := id.CurrentUser()
	if f.Name == "" && user != nil {
		f.Name = user.Name
	}
	if f.Email == "" {
		f.Email = id.CustomerEmail()
	}
}

// Flow places orders from the cart snapshot.
type Flow struct {
	api  *api.OrdersAPI
	cart *cart.Synchronizer
	id   Identity
}

// New creates a checkout Flow.
func New(ordersAPI *api.OrdersAPI, sync *cart.Synchronizer, id Identity) *Flow {
	return &Flow{api: ordersAPI, cart: sync, id: id}
}

// Confirm validates the form, places the order and clears the cart.
// Validation failures never reach the network layer.
func (f *Flow) Confirm(ctx context.Context, form Form) (*models.Order, error) {
	if form.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	if form.Email == "" {
		return nil, &ValidationError{Field: "email", Reason: "required"}
	}
	if f.cart.Snapshot().Empty() {
		return nil, &ValidationError{Field: "cart", Reason: "cart is empty"}
	}

	receipt, err := f.api.Create(ctx, form.Name, form.Email)
	if err != nil {
		return nil, err
	}
	_ = f.id.RememberEmail(form.Email)

	// The order is already placed at this point; a failed clear is
	// reported but does not undo the checkout.
	if _, err := f.cart.Clear(ctx); err != nil {
		return receipt.Order, err
	}
	return receipt.Order, nil
}
