// Package cart owns the client-visible cart snapshot and serializes all
// cart mutations through the API gateway. The server's response is the
// sole source of truth: every mutation replaces the snapshot wholesale.
package cart

import (
	"context"

	"go.uber.org/zap"

	"github.com/hansshop/storefront/internal/client/api"
	"github.com/hansshop/storefront/internal/models"
)

// PolicyError is a client-side policy violation, e.g. an admin trying
// to transact. It is always raised before any network call.
type PolicyError struct {
	Reason string
}

func (e *PolicyError) Error() string { return "policy: " + e.Reason }

// Identity is the slice of the session store the synchronizer needs.
type Identity interface {
	IsAdmin() bool
}

// Synchronizer keeps a single cart snapshot in sync with the server.
//
// There is no request sequencing: when two mutations are issued in
// quick succession the response that arrives last wins, even if it
// belongs to the earlier request. The shell drives one operation at a
// time, which keeps that harmless.
type Synchronizer struct {
	api *api.CartAPI
	id  Identity
	log *zap.Logger

	snapshot *models.Cart
}

// New creates a Synchronizer with an empty local snapshot; the cart is
// created lazily server-side on the first mutation.
func New(cartAPI *api.CartAPI, id Identity, log *zap.Logger) *Synchronizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Synchronizer{api: cartAPI, id: id, log: log}
}

// Snapshot returns the current cart. It is never nil: before the first
// load (and after a clear) it is an empty cart.
func (s *Synchronizer) Snapshot() *models.Cart {
	if s.snapshot == nil {
		return &models.Cart{Items: []models.CartItem{}}
	}
	return s.snapshot
}

// replace installs the server's authoritative cart.
func (s *Synchronizer) replace(c *models.Cart) *models.Cart {
	if c.Items == nil {
		c.Items = []models.CartItem{}
	}
	s.snapshot = c
	return c
}

// reset drops to an empty local cart.
func (s *Synchronizer) reset() *models.Cart {
	return s.replace(&models.Cart{Items: []models.CartItem{}})
}

// Load fetches the current cart. On failure it falls back to an empty
// cart locally - the client stays usable in a degraded state - and
// still returns the error so the caller can surface it.
func (s *Synchronizer) Load(ctx context.Context) (*models.Cart, error) {
	c, err := s.api.Get(ctx)
	if err != nil {
		s.log.Warn("cart load failed, using empty cart", zap.Error(err))
		return s.reset(), err
	}
	return s.replace(c), nil
}

// AddItem adds qty units of a product. Admins cannot transact: the call
// fails with a *PolicyError before any network traffic.
func (s *Synchronizer) AddItem(ctx context.Context, productID string, qty int) (*models.Cart, error) {
	if s.id.IsAdmin() {
		return s.Snapshot(), &PolicyError{Reason: "admins cannot place orders; use a regular user account to shop"}
	}
	if qty < 1 {
		qty = 1
	}
	c, err := s.api.AddItem(ctx, productID, qty)
	if err != nil {
		return s.Snapshot(), err
	}
	return s.replace(c), nil
}

// ChangeQuantity adjusts a line's quantity by delta. A target of zero
// or below becomes a removal, so a non-positive quantity never reaches
// the API. An unknown itemID is a no-op: the UI may race a concurrent
// removal and that must not fail.
func (s *Synchronizer) ChangeQuantity(ctx context.Context, itemID string, delta int) (*models.Cart, error) {
	var current *models.CartItem
	for i := range s.Snapshot().Items {
		if s.Snapshot().Items[i].ID == itemID {
			current = &s.Snapshot().Items[i]
			break
		}
	}
	if current == nil {
		return s.Snapshot(), nil
	}

	target := current.Quantity + delta
	if target <= 0 {
		return s.RemoveItem(ctx, itemID)
	}
	c, err := s.api.UpdateItem(ctx, itemID, target)
	if err != nil {
		return s.Snapshot(), err
	}
	return s.replace(c), nil
}

// RemoveItem deletes a line from the cart.
func (s *Synchronizer) RemoveItem(ctx context.Context, itemID string) (*models.Cart, error) {
	c, err := s.api.RemoveItem(ctx, itemID)
	if err != nil {
		return s.Snapshot(), err
	}
	return s.replace(c), nil
}

// Clear empties the cart server-side and locally. Used after checkout.
func (s *Synchronizer) Clear(ctx context.Context) (*models.Cart, error) {
	if err := s.api.Clear(ctx); err != nil {
		return s.Snapshot(), err
	}
	return s.reset(), nil
}

// Drop discards the local snapshot without touching the server. Used on
// logout, when the session keeps its server-side cart but the UI state
// is rebuilt from scratch.
func (s *Synchronizer) Drop() {
	s.snapshot = nil
}
