// Package admin drives the administrative panel: product management and
// order management against the bearer-protected endpoints.
package admin

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/hansshop/storefront/internal/client/api"
	"github.com/hansshop/storefront/internal/models"
)

// Panel owns the product-management and order-management listings.
type Panel struct {
	products *api.ProductsAPI
	orders   *api.OrdersAPI
	auth     *api.AuthAPI
	log      *zap.Logger

	productList []models.Product
	orderList   []models.Order
}

// New creates an empty Panel.
func New(c *api.Client, log *zap.Logger) *Panel {
	if log == nil {
		log = zap.NewNop()
	}
	return &Panel{products: c.Products, orders: c.Orders, auth: c.Auth, log: log}
}

// Reload refreshes both the product-management list and the
// order-management list. Each list degrades independently: a failure on
// one side does not discard the other, and both errors are reported.
func (p *Panel) Reload(ctx context.Context) error {
	var errs []error

	// The unfiltered listing, not the shopper's filtered one.
	products, err := p.products.List(ctx, "", "")
	if err != nil {
		p.log.Warn("admin product reload failed", zap.Error(err))
		errs = append(errs, err)
	} else {
		p.productList = products
	}

	orders, err := p.orders.List(ctx)
	if err != nil {
		p.log.Warn("admin order reload failed", zap.Error(err))
		errs = append(errs, err)
	} else {
		p.orderList = orders
	}

	return errors.Join(errs...)
}

// Products returns the last-loaded management listing.
func (p *Panel) Products() []models.Product { return p.productList }

// Orders returns the last-loaded management listing.
func (p *Panel) Orders() []models.Order { return p.orderList }

// SaveProduct creates the product when id is empty and updates it
// otherwise. image may be nil.
func (p *Panel) SaveProduct(ctx context.Context, id string, form api.ProductForm, image io.Reader, imageName string) (*models.Product, error) {
	if id == "" {
		return p.products.Create(ctx, form, image, imageName)
	}
	return p.products.Update(ctx, id, form, image, imageName)
}

// DeleteProduct removes a product from the catalog.
func (p *Panel) DeleteProduct(ctx context.Context, id string) error {
	return p.products.Delete(ctx, id)
}

// UpdateOrderStatus moves an order to a new lifecycle state.
func (p *Panel) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	if !models.ValidOrderStatus(status) {
		return errors.New("unknown order status: " + string(status))
	}
	return p.orders.UpdateStatus(ctx, id, status)
}

// CreateUser registers an account on behalf of the admin. The returned
// credentials are discarded so the admin's own identity never switches.
func (p *Panel) CreateUser(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	creds, err := p.auth.Register(ctx, name, email, password, role)
	if err != nil {
		return nil, err
	}
	return creds.User, nil
}
