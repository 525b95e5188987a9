// Package models defines the core data structures shared between the
// storefront client and the reference API server.
package models

import "time"

// Role identifies the access level of a user account.
type Role string

const (
	// RoleUser is a regular shopper account.
	RoleUser Role = "User"
	// RoleAdmin is an administrator account. Admins manage the catalog
	// and orders and are barred from transacting themselves.
	RoleAdmin Role = "Admin"
)

// User represents an authenticated account as returned by the API.
type User struct {
	// ID is the unique identifier of the user.
	ID string `json:"id"`
	// Name is the display name chosen at registration.
	Name string `json:"name"`
	// Email is the login email. The API does not always include it,
	// so it may be empty on a cached copy.
	Email string `json:"email,omitempty"`
	// Role is either "User" or "Admin".
	Role Role `json:"role"`
}

// Product is a catalog entry. The client never persists products; the
// listing is re-fetched on every relevant view entry.
type Product struct {
	// ID is the unique identifier of the product.
	ID string `json:"id"`
	// Name is the product title.
	Name string `json:"name"`
	// Description is the marketing copy shown on the card.
	Description string `json:"description,omitempty"`
	// Price is the unit price.
	Price float64 `json:"price"`
	// Stock is the number of units available.
	Stock int `json:"stock"`
	// Category groups products for filtering.
	Category string `json:"category,omitempty"`
	// Image is a URL or server-relative path to the product image.
	Image string `json:"image,omitempty"`
}

// CartItem is a single line in a cart. Quantity is always >= 1; a change
// that would drive it to zero is issued as a removal instead.
type CartItem struct {
	// ID is the identifier of the cart line, not of the product.
	ID string `json:"id"`
	// ProductID references the product this line holds.
	ProductID string `json:"productId"`
	// ProductName is denormalized for display.
	ProductName string `json:"productName,omitempty"`
	// Price is the unit price captured when the line was created.
	Price float64 `json:"price"`
	// Quantity is the number of units, at least 1.
	Quantity int `json:"quantity"`
}

// Cart is the session-scoped shopping cart. The server owns the truth;
// the client holds at most one snapshot and replaces it wholesale after
// every mutating call.
type Cart struct {
	// Items are the cart lines.
	Items []CartItem `json:"items"`
	// Total is the server-computed sum of price*quantity over Items.
	Total float64 `json:"total"`
}

// Empty reports whether the cart has no items.
func (c *Cart) Empty() bool {
	return c == nil || len(c.Items) == 0
}

// Units returns the total number of units across all lines.
func (c *Cart) Units() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	// OrderPending is the initial status of a new order.
	OrderPending OrderStatus = "pending"
	// OrderProcessing means the order is being prepared.
	OrderProcessing OrderStatus = "processing"
	// OrderCompleted means the order has been fulfilled.
	OrderCompleted OrderStatus = "completed"
	// OrderCancelled means the order was cancelled.
	OrderCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known lifecycle states.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderProcessing, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// OrderItem is a line captured into an order at checkout time.
type OrderItem struct {
	// ProductID references the ordered product.
	ProductID string `json:"productId"`
	// ProductName is denormalized for display after the product changes.
	ProductName string `json:"productName"`
	// Price is the unit price at checkout time.
	Price float64 `json:"price"`
	// Quantity is the number of units ordered.
	Quantity int `json:"quantity"`
	// Subtotal is Price * Quantity.
	Subtotal float64 `json:"subtotal"`
}

// Order is a placed order.
type Order struct {
	// ID is the unique identifier of the order.
	ID string `json:"id"`
	// OrderNumber is the human-facing reference shown to the customer.
	OrderNumber string `json:"orderNumber"`
	// CustomerName and CustomerEmail come from the checkout form.
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	// Items are the captured cart lines.
	Items []OrderItem `json:"items"`
	// Subtotal is the sum of item subtotals, Total includes Tax.
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
	// Status is the current lifecycle state.
	Status OrderStatus `json:"status"`
	// CreatedAt is the server-side creation timestamp.
	CreatedAt time.Time `json:"createdAt"`
}
