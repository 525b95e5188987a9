package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hansshop/storefront/internal/models"
	"github.com/hansshop/storefront/internal/repository"
	"github.com/hansshop/storefront/internal/service"
)

type ordersFixture struct {
	orders *service.OrdersService
	carts  *service.CartService
}

func newOrdersFixture(t *testing.T) *ordersFixture {
	t.Helper()
	products := repository.NewMemoryProductRepository()
	if err := products.Create(context.Background(), models.Product{ID: "p1", Name: "Lamp", Price: 10, Stock: 5}); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	cartRepo := repository.NewMemoryCartRepository()
	return &ordersFixture{
		orders: service.NewOrdersService(repository.NewMemoryOrderRepository(), cartRepo),
		carts:  service.NewCartService(cartRepo, products),
	}
}

func TestOrderCreate_CapturesCartAndClearsIt(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()

	if _, err := f.carts.AddItem(ctx, "s1", "p1", 3); err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	order, err := f.orders.Create(ctx, "s1", "Hans", "hans@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(order.OrderNumber, "ORD-") || len(order.OrderNumber) != 12 {
		t.Errorf("unexpected order number %q", order.OrderNumber)
	}
	if order.Status != models.OrderPending {
		t.Errorf("expected pending status, got %q", order.Status)
	}
	if order.Subtotal != 30 || order.Total != 30 {
		t.Errorf("unexpected totals: %+v", order)
	}
	if len(order.Items) != 1 || order.Items[0].Subtotal != 30 {
		t.Errorf("unexpected items: %+v", order.Items)
	}

	cart, err := f.carts.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("expected cart cleared after checkout, got %+v", cart)
	}
}

func TestOrderCreate_Rejections(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()

	if _, err := f.orders.Create(ctx, "s1", "Hans", "hans@example.com"); !errors.Is(err, service.ErrCartEmpty) {
		t.Errorf("expected ErrCartEmpty, got %v", err)
	}

	if _, err := f.carts.AddItem(ctx, "s1", "p1", 1); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	if _, err := f.orders.Create(ctx, "s1", "", "hans@example.com"); !errors.Is(err, service.ErrValidation) {
		t.Errorf("expected ErrValidation for missing name, got %v", err)
	}
	if _, err := f.orders.Create(ctx, "s1", "Hans", ""); !errors.Is(err, service.ErrValidation) {
		t.Errorf("expected ErrValidation for missing email, got %v", err)
	}
}

func TestOrderQueriesAndStatus(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()

	if _, err := f.carts.AddItem(ctx, "s1", "p1", 1); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	first, err := f.orders.Create(ctx, "s1", "Hans", "hans@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.carts.AddItem(ctx, "s2", "p1", 2); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	if _, err := f.orders.Create(ctx, "s2", "Greta", "greta@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all, err := f.orders.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(all))
	}

	mine, err := f.orders.ByCustomerEmail(ctx, "hans@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != first.ID {
		t.Errorf("unexpected history: %+v", mine)
	}

	if err := f.orders.UpdateStatus(ctx, first.ID, models.OrderCompleted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := f.orders.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.OrderCompleted {
		t.Errorf("expected completed, got %q", got.Status)
	}

	if err := f.orders.UpdateStatus(ctx, first.ID, models.OrderStatus("shipped-to-mars")); !errors.Is(err, service.ErrValidation) {
		t.Errorf("expected ErrValidation for unknown status, got %v", err)
	}
	if err := f.orders.UpdateStatus(ctx, "ghost", models.OrderCancelled); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
