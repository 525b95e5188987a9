// Package router is the client-side view state machine. It maps a route
// name to the single visible view, enforces role-based access, triggers
// the right data reload for each transition and keeps a navigable
// history so back/forward reproduce prior views.
package router

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hansshop/storefront/internal/client/orders"
	"github.com/hansshop/storefront/internal/models"
)

// View names one of the fixed set of client views.
type View string

const (
	ViewHome     View = "home"
	ViewProducts View = "products"
	ViewCart     View = "cart"
	ViewOrders   View = "orders"
	ViewAdmin    View = "admin"
	ViewAbout    View = "about"
	ViewContact  View = "contact"
)

// ParseView resolves a URL fragment to a view. An empty fragment means
// home; an unknown one is an error.
func ParseView(fragment string) (View, error) {
	if fragment == "" {
		return ViewHome, nil
	}
	v := View(fragment)
	switch v {
	case ViewHome, ViewProducts, ViewCart, ViewOrders, ViewAdmin, ViewAbout, ViewContact:
		return v, nil
	}
	return "", fmt.Errorf("unknown view %q", fragment)
}

// Identity is the slice of the session store the router needs for
// access policy.
type Identity interface {
	IsAuthenticated() bool
	IsAdmin() bool
}

// Notifier receives the user-visible notices the router emits. The
// presentation layer implements it.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

// Reloader is a view's data-reload action.
type Reloader interface {
	Reload(ctx context.Context) error
}

// CartLoader is the cart view's reload action.
type CartLoader interface {
	Load(ctx context.Context) (*models.Cart, error)
}

// Router owns the current view, the navigation history and the wiring
// to each view's reload action. It is driven cooperatively from the
// event loop of the shell; it is not safe for concurrent use.
type Router struct {
	id      Identity
	notify  Notifier
	catalog Reloader
	cart    CartLoader
	orders  Reloader
	admin   Reloader
	// prefill runs on cart entry to populate checkout fields from the
	// identity. May be nil.
	prefill func()
	log     *zap.Logger

	current View
	history []View
	cursor  int
}

// Config wires a Router's collaborators.
type Config struct {
	Identity Identity
	Notifier Notifier
	Catalog  Reloader
	Cart     CartLoader
	Orders   Reloader
	Admin    Reloader
	Prefill  func()
	Logger   *zap.Logger
}

// New creates a Router with no visible view yet; call Init to show the
// first one.
func New(cfg Config) *Router {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Router{
		id:      cfg.Identity,
		notify:  cfg.Notifier,
		catalog: cfg.Catalog,
		cart:    cfg.Cart,
		orders:  cfg.Orders,
		admin:   cfg.Admin,
		prefill: cfg.Prefill,
		log:     log,
		cursor:  -1,
	}
}

// Init shows the view named by the initial URL fragment, falling back
// to home when the fragment is empty or unknown.
func (r *Router) Init(ctx context.Context, fragment string) {
	v, err := ParseView(fragment)
	if err != nil {
		v = ViewHome
	}
	r.Navigate(ctx, v)
}

// Active returns the currently visible view. Exactly one view is
// visible at any time.
func (r *Router) Active() View { return r.current }

// NavActive reports whether v's nav link should be highlighted; it
// always agrees with the visible view.
func (r *Router) NavActive(v View) bool { return v == r.current }

// Fragment returns the URL fragment for the visible view.
func (r *Router) Fragment() string { return "#" + string(r.current) }

// Navigate performs an explicit transition to target and records it in
// the history.
func (r *Router) Navigate(ctx context.Context, target View) {
	r.transition(ctx, target, true)
}

// Back moves one entry back in the history, if there is one. Access
// policy is re-enforced: a view the current identity may no longer see
// redirects exactly as an explicit navigation would.
func (r *Router) Back(ctx context.Context) bool {
	if r.cursor <= 0 {
		return false
	}
	r.cursor--
	r.transition(ctx, r.history[r.cursor], false)
	return true
}

// Forward moves one entry forward in the history, if there is one.
func (r *Router) Forward(ctx context.Context) bool {
	if r.cursor < 0 || r.cursor >= len(r.history)-1 {
		return false
	}
	r.cursor++
	r.transition(ctx, r.history[r.cursor], false)
	return true
}

// Refresh re-runs the current view's transition without touching the
// history. Used after login/logout, when the same route may resolve to
// a different view under the new identity.
func (r *Router) Refresh(ctx context.Context) {
	if r.cursor < 0 {
		r.Init(ctx, "")
		return
	}
	r.transition(ctx, r.history[r.cursor], false)
}

// transition is the single transition path: policy, visibility, reload,
// history. push is false for transitions originating from back/forward
// so they are not double-recorded.
func (r *Router) transition(ctx context.Context, target View, push bool) {
	effective := r.applyPolicy(target)

	// Exactly one view visible; nav state follows via NavActive.
	r.current = effective

	// A policy redirect is a programmatic transition of the router
	// itself and leaves the history alone.
	if push && effective == target {
		r.push(effective)
	}

	// Reload failures degrade the view, they never block the switch.
	r.reload(ctx, effective)
}

// applyPolicy resolves the access policy for target, emitting the
// notice and returning the redirect target on violation.
func (r *Router) applyPolicy(target View) View {
	switch target {
	case ViewAdmin:
		if !r.id.IsAdmin() {
			r.notify.Error("Access denied. Admin privileges required.")
			return ViewHome
		}
	case ViewCart:
		if r.id.IsAdmin() {
			r.notify.Error("Admins cannot place orders. Use the Admin panel to manage products.")
			return ViewAdmin
		}
	case ViewOrders:
		if r.id.IsAdmin() {
			r.notify.Error("Admins manage products, not orders. Use the Admin panel.")
			return ViewAdmin
		}
	}
	return target
}

// push records v as the newest history entry, truncating any forward
// entries the way a browser does after navigating from a mid-stack
// position.
func (r *Router) push(v View) {
	r.history = append(r.history[:r.cursor+1], v)
	r.cursor = len(r.history) - 1
}

// reload triggers the data action for the view that just became
// visible.
func (r *Router) reload(ctx context.Context, v View) {
	switch v {
	case ViewHome, ViewProducts:
		if err := r.catalog.Reload(ctx); err != nil {
			r.log.Warn("catalog reload failed", zap.String("view", string(v)), zap.Error(err))
			r.notify.Error("Failed to load products. Please try again later.")
		}
	case ViewCart:
		if _, err := r.cart.Load(ctx); err != nil {
			r.log.Warn("cart reload failed", zap.Error(err))
			r.notify.Error("Failed to load your cart.")
		}
		if r.prefill != nil {
			r.prefill()
		}
	case ViewOrders:
		if !r.id.IsAuthenticated() {
			r.notify.Info("Please log in to view your orders.")
			return
		}
		if err := r.orders.Reload(ctx); err != nil {
			switch {
			case errors.Is(err, orders.ErrNoEmail):
				r.notify.Error("Unable to load orders. Please log out and log in again.")
			case errors.Is(err, orders.ErrNotAuthenticated):
				r.notify.Info("Please log in to view your orders.")
			default:
				r.log.Warn("order history reload failed", zap.Error(err))
				r.notify.Error("Failed to load orders.")
			}
		}
	case ViewAdmin:
		if err := r.admin.Reload(ctx); err != nil {
			r.log.Warn("admin reload failed", zap.Error(err))
			r.notify.Error("Failed to load the admin panel.")
		}
	}
}
