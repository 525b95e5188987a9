package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hansshop/storefront/internal/models"
)

// OrdersService defines the order operations required by the HTTP
// handlers.
type OrdersService interface {
	Create(ctx context.Context, sessionID, customerName, customerEmail string) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	ByCustomerEmail(ctx context.Context, email string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
}

// OrdersHandler handles checkout and order management requests.
type OrdersHandler struct {
	OrdersService OrdersService
}

// CreateOrderRequest is the JSON payload for placing an order.
type CreateOrderRequest struct {
	SessionID     string `json:"sessionId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
}

// UpdateStatusRequest is the JSON payload for an order status change.
type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// Create places an order from the session's cart.
func (h *OrdersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	order, err := h.OrdersService.Create(r.Context(), req.SessionID, req.CustomerName, req.CustomerEmail)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Order created successfully",
		"order":   order,
	})
}

// List returns all orders, newest first. Admin only.
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.OrdersService.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// Get returns a single order by id.
func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.OrdersService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// ByCustomerEmail returns the orders placed under an email.
func (h *OrdersHandler) ByCustomerEmail(w http.ResponseWriter, r *http.Request) {
	orders, err := h.OrdersService.ByCustomerEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// UpdateStatus moves an order to a new lifecycle state. Admin only.
func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.OrdersService.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Order status updated"})
}
