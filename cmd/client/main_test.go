package main

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hansshop/storefront/internal/client/admin"
	"github.com/hansshop/storefront/internal/client/api"
	"github.com/hansshop/storefront/internal/client/cart"
	"github.com/hansshop/storefront/internal/client/catalog"
	"github.com/hansshop/storefront/internal/client/checkout"
	"github.com/hansshop/storefront/internal/client/orders"
	"github.com/hansshop/storefront/internal/client/router"
	"github.com/hansshop/storefront/internal/client/session"
	"github.com/hansshop/storefront/internal/models"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}
}

// newTestShell wires a shell over a fake transport that accepts order
// creation and empty follow-up reloads, with one item already loaded
// into the cart.
func newTestShell(t *testing.T) (*shell, *[]string) {
	t.Helper()
	calls := &[]string{}
	httpc := &http.Client{Timeout: time.Second, Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		*calls = append(*calls, req.Method+" "+req.URL.Path)
		switch {
		case req.Method == http.MethodPost && req.URL.Path == "/orders":
			body := `{"message":"Order created successfully","order":{"id":"o1","orderNumber":"ORD-TEST-1","total":20,"status":"pending"}}`
			return jsonResponse(http.StatusCreated, body), nil
		case strings.HasPrefix(req.URL.Path, "/orders/customer/"):
			return jsonResponse(http.StatusOK, `[]`), nil
		case req.Method == http.MethodGet && strings.HasPrefix(req.URL.Path, "/cart/"):
			body := `{"items":[{"id":"i1","productId":"p1","price":10,"quantity":2}],"total":20}`
			return jsonResponse(http.StatusOK, body), nil
		case req.Method == http.MethodDelete && strings.HasPrefix(req.URL.Path, "/cart/"):
			return jsonResponse(http.StatusOK, `{}`), nil
		case req.URL.Path == "/products":
			return jsonResponse(http.StatusOK, `[]`), nil
		}
		return jsonResponse(http.StatusNotFound, `{"message":"Not found"}`), nil
	})}

	store, err := session.Open(t.TempDir())
	require.NoError(t, err)

	log := zap.NewNop()
	client := api.New("http://api.test", store, httpc, log)

	s := &shell{
		store:   store,
		client:  client,
		cart:    cart.New(client.Cart, store, log),
		catalog: catalog.New(client.Products, log),
	}
	s.history = orders.New(client.Orders, store, log)
	s.checkout = checkout.New(client.Orders, s.cart, store)
	s.panel = admin.New(client, log)
	s.router = router.New(router.Config{
		Identity: store,
		Notifier: consoleNotifier{},
		Catalog:  s.catalog,
		Cart:     s.cart,
		Orders:   s.history,
		Admin:    s.panel,
		Logger:   log,
	})
	s.router.Init(context.Background(), "")

	_, err = s.cart.Load(context.Background())
	require.NoError(t, err)
	return s, calls
}

func TestCheckoutCmd_AuthenticatedLandsOnOrders(t *testing.T) {
	s, calls := newTestShell(t)
	user := &models.User{ID: "u1", Name: "Hans", Email: "hans@example.com", Role: models.RoleUser}
	require.NoError(t, s.store.SetIdentity("tok-1", user))
	s.form = checkout.Form{Name: "Hans", Email: "hans@example.com"}

	s.checkoutCmd(context.Background(), nil)

	assert.Equal(t, router.ViewOrders, s.router.Active(), "a logged-in customer is taken to their orders")
	assert.Equal(t, checkout.Form{}, s.form, "the form is blank after the order is placed")
	assert.Contains(t, *calls, "GET /orders/customer/hans@example.com")
}

func TestCheckoutCmd_AnonymousReturnsHome(t *testing.T) {
	s, _ := newTestShell(t)

	s.checkoutCmd(context.Background(), []string{"Hans", "hans@example.com"})

	assert.Equal(t, router.ViewHome, s.router.Active())
	assert.Equal(t, checkout.Form{}, s.form)
}
