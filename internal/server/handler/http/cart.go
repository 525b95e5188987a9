package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hansshop/storefront/internal/models"
)

// CartService defines the cart operations required by the HTTP handlers.
type CartService interface {
	Get(ctx context.Context, sessionID string) (*models.Cart, error)
	AddItem(ctx context.Context, sessionID, productID string, quantity int) (*models.Cart, error)
	UpdateItem(ctx context.Context, sessionID, itemID string, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, sessionID, itemID string) (*models.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

// CartHandler handles session-scoped cart requests. No authentication
// is required; the session id in the path is the cart's identity.
type CartHandler struct {
	CartService CartService
}

// AddItemRequest is the JSON payload for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateItemRequest is the JSON payload for changing a line's quantity.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// Get returns the session's cart, empty when none exists yet.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.CartService.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// AddItem adds a product to the cart and returns the new cart.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	cart, err := h.CartService.AddItem(r.Context(), chi.URLParam(r, "sessionID"), req.ProductID, req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// UpdateItem sets a line's quantity and returns the new cart.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	cart, err := h.CartService.UpdateItem(r.Context(), chi.URLParam(r, "sessionID"), chi.URLParam(r, "itemID"), req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// RemoveItem deletes a line and returns the new cart.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.CartService.RemoveItem(r.Context(), chi.URLParam(r, "sessionID"), chi.URLParam(r, "itemID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// Clear empties the session's cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.CartService.Clear(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Cart cleared"})
}
