package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hansshop/storefront/internal/middleware"
)

// NewRouter constructs the HTTP handler serving the storefront API.
//
// Routes:
//
//	POST   /auth/register                    → account creation
//	POST   /auth/login                       → login
//	GET    /products                         → catalog listing (filters: category, search)
//	GET    /products/{id}                    → single product
//	POST   /products                         → create product (admin, multipart)
//	PUT    /products/{id}                    → update product (admin, multipart)
//	DELETE /products/{id}                    → delete product (admin)
//	GET    /cart/{sessionID}                 → session cart
//	POST   /cart/{sessionID}/items           → add item
//	PUT    /cart/{sessionID}/items/{itemID}  → change quantity
//	DELETE /cart/{sessionID}/items/{itemID}  → remove item
//	DELETE /cart/{sessionID}                 → clear cart
//	POST   /orders                           → checkout
//	GET    /orders                           → all orders (admin)
//	GET    /orders/customer/{email}          → a customer's orders (authenticated)
//	GET    /orders/{id}                      → single order (authenticated)
//	PUT    /orders/{id}/status               → status change (admin)
//
// Cart and checkout endpoints stay anonymous: the session id in the
// path or body is the cart's identity. BearerAuth resolves a token into
// the request user when one is sent; the admin and authenticated groups
// enforce it.
func NewRouter(
	authHandler *AuthHandler,
	productsHandler *ProductsHandler,
	cartHandler *CartHandler,
	ordersHandler *OrdersHandler,
	resolver middleware.TokenResolver,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.BearerAuth(resolver))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", productsHandler.List)
		r.Get("/{id}", productsHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Post("/", productsHandler.Create)
			r.Put("/{id}", productsHandler.Update)
			r.Delete("/{id}", productsHandler.Delete)
		})
	})

	r.Route("/cart/{sessionID}", func(r chi.Router) {
		r.Get("/", cartHandler.Get)
		r.Delete("/", cartHandler.Clear)
		r.Post("/items", cartHandler.AddItem)
		r.Put("/items/{itemID}", cartHandler.UpdateItem)
		r.Delete("/items/{itemID}", cartHandler.RemoveItem)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", ordersHandler.Create)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/", ordersHandler.List)
			r.Put("/{id}/status", ordersHandler.UpdateStatus)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/customer/{email}", ordersHandler.ByCustomerEmail)
			r.Get("/{id}", ordersHandler.Get)
		})
	})

	return r
}
