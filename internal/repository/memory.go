// Package repository provides persistence implementations for the
// reference API server: in-memory stores for development and tests,
// and PostgreSQL-backed ones for real deployments.
package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hansshop/storefront/internal/models"
	"github.com/hansshop/storefront/internal/service"
)

// MemoryAuthRepository keeps users and tokens in process memory.
type MemoryAuthRepository struct {
	mu     sync.Mutex
	users  map[string]models.User // by id
	hashes map[string]string      // user id -> password hash
	emails map[string]string      // lowercased email -> user id
	tokens map[string]string      // token -> user id
}

// NewMemoryAuthRepository returns an empty auth store.
func NewMemoryAuthRepository() *MemoryAuthRepository {
	return &MemoryAuthRepository{
		users:  map[string]models.User{},
		hashes: map[string]string{},
		emails: map[string]string{},
		tokens: map[string]string{},
	}
}

// CreateUser stores a new user and password hash.
func (m *MemoryAuthRepository) CreateUser(ctx context.Context, user models.User, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	m.hashes[user.ID] = passwordHash
	m.emails[strings.ToLower(user.Email)] = user.ID
	return nil
}

// UserByEmail resolves an email to a user and password hash.
func (m *MemoryAuthRepository) UserByEmail(ctx context.Context, email string) (*models.User, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.emails[strings.ToLower(email)]
	if !ok {
		return nil, "", service.ErrNotFound
	}
	u := m.users[id]
	return &u, m.hashes[id], nil
}

// SaveToken associates a bearer token with a user.
func (m *MemoryAuthRepository) SaveToken(ctx context.Context, token, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token] = userID
	return nil
}

// UserByToken resolves a bearer token.
func (m *MemoryAuthRepository) UserByToken(ctx context.Context, token string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.tokens[token]
	if !ok {
		return nil, service.ErrNotFound
	}
	u := m.users[id]
	return &u, nil
}

// MemoryProductRepository keeps the catalog in process memory,
// preserving insertion order so listings are stable.
type MemoryProductRepository struct {
	mu       sync.Mutex
	products map[string]models.Product
	order    []string
}

// NewMemoryProductRepository returns an empty catalog store.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{products: map[string]models.Product{}}
}

// List returns products filtered by exact category and case-insensitive
// name match.
func (m *MemoryProductRepository) List(ctx context.Context, category, search string) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Product{}
	for _, id := range m.order {
		p, ok := m.products[id]
		if !ok {
			continue
		}
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Get returns one product.
func (m *MemoryProductRepository) Get(ctx context.Context, id string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return &p, nil
}

// Create stores a new product.
func (m *MemoryProductRepository) Create(ctx context.Context, p models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
	m.order = append(m.order, p.ID)
	return nil
}

// Update replaces an existing product.
func (m *MemoryProductRepository) Update(ctx context.Context, p models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID]; !ok {
		return service.ErrNotFound
	}
	m.products[p.ID] = p
	return nil
}

// Delete removes a product.
func (m *MemoryProductRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return service.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

// MemoryCartRepository keeps session carts in process memory.
type MemoryCartRepository struct {
	mu    sync.Mutex
	carts map[string][]models.CartItem
	touch map[string]time.Time // session id -> last activity
}

// NewMemoryCartRepository returns an empty cart store.
func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{
		carts: map[string][]models.CartItem{},
		touch: map[string]time.Time{},
	}
}

// Items returns the lines of a session's cart; unknown sessions yield
// an empty slice, carts exist lazily.
func (m *MemoryCartRepository) Items(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := m.carts[sessionID]
	out := make([]models.CartItem, len(lines))
	copy(out, lines)
	return out, nil
}

// InsertItem appends a line, lazily creating the cart.
func (m *MemoryCartRepository) InsertItem(ctx context.Context, sessionID string, item models.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[sessionID] = append(m.carts[sessionID], item)
	m.touch[sessionID] = time.Now()
	return nil
}

// UpdateQuantity sets a line's quantity.
func (m *MemoryCartRepository) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := m.carts[sessionID]
	for i := range lines {
		if lines[i].ID == itemID {
			lines[i].Quantity = quantity
			m.touch[sessionID] = time.Now()
			return nil
		}
	}
	return service.ErrNotFound
}

// DeleteItem removes a line.
func (m *MemoryCartRepository) DeleteItem(ctx context.Context, sessionID, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := m.carts[sessionID]
	for i := range lines {
		if lines[i].ID == itemID {
			m.carts[sessionID] = append(lines[:i], lines[i+1:]...)
			m.touch[sessionID] = time.Now()
			return nil
		}
	}
	return service.ErrNotFound
}

// Clear removes all lines of a session.
func (m *MemoryCartRepository) Clear(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
	delete(m.touch, sessionID)
	return nil
}

// SweepIdle drops carts with no activity since the cutoff and returns
// how many were removed. The Postgres deployment does this with the
// db-level cleaner instead.
func (m *MemoryCartRepository) SweepIdle(cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for sid, last := range m.touch {
		if last.Before(cutoff) {
			delete(m.carts, sid)
			delete(m.touch, sid)
			removed++
		}
	}
	return removed
}

// MemoryOrderRepository keeps orders in process memory.
type MemoryOrderRepository struct {
	mu     sync.Mutex
	orders map[string]models.Order
	order  []string
}

// NewMemoryOrderRepository returns an empty order store.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: map[string]models.Order{}}
}

// Create stores a new order.
func (m *MemoryOrderRepository) Create(ctx context.Context, o models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = o
	m.order = append(m.order, o.ID)
	return nil
}

// List returns all orders, newest first.
func (m *MemoryOrderRepository) List(ctx context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Order{}
	for _, id := range m.order {
		out = append(out, m.orders[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Get returns one order.
func (m *MemoryOrderRepository) Get(ctx context.Context, id string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return &o, nil
}

// ByCustomerEmail returns a customer's orders, newest first.
func (m *MemoryOrderRepository) ByCustomerEmail(ctx context.Context, email string) ([]models.Order, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Order{}
	for _, o := range all {
		if strings.EqualFold(o.CustomerEmail, email) {
			out = append(out, o)
		}
	}
	return out, nil
}

// UpdateStatus moves an order to a new status.
func (m *MemoryOrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return service.ErrNotFound
	}
	o.Status = status
	m.orders[id] = o
	return nil
}
