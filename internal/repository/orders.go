package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hansshop/storefront/internal/models"
	"github.com/hansshop/storefront/internal/service"
)

// PostgresOrderRepository implements order persistence against a
// PostgreSQL database.
type PostgresOrderRepository struct {
	DB *sql.DB
}

// NewPostgresOrderRepository creates a PostgresOrderRepository using
// the provided *sql.DB.
func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{DB: db}
}

// Create stores the order and its items in one transaction.
func (r *PostgresOrderRepository) Create(ctx context.Context, o models.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Create order begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, order_number, customer_name, customer_email, subtotal, tax, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, o.ID, o.OrderNumber, o.CustomerName, o.CustomerEmail, o.Subtotal, o.Tax, o.Total, o.Status, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("Create order: %w", err)
	}
	for _, it := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, price, quantity, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, o.ID, it.ProductID, it.ProductName, it.Price, it.Quantity, it.Subtotal)
		if err != nil {
			return fmt.Errorf("Create order item: %w", err)
		}
	}
	return tx.Commit()
}

// scanOrders reads order rows and attaches each order's items.
func (r *PostgresOrderRepository) scanOrders(ctx context.Context, rows *sql.Rows) ([]models.Order, error) {
	out := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerEmail,
			&o.Subtotal, &o.Tax, &o.Total, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()
	for i := range out {
		items, err := r.itemsFor(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (r *PostgresOrderRepository) itemsFor(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT product_id, product_name, price, quantity, subtotal FROM order_items WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("order items: %w", err)
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.Price, &it.Quantity, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("order items scan: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// List fetches all orders, newest first.
func (r *PostgresOrderRepository) List(ctx context.Context) ([]models.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, order_number, customer_name, customer_email, subtotal, tax, total, status, created_at
		  FROM orders ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("List orders: %w", err)
	}
	defer rows.Close()
	return r.scanOrders(ctx, rows)
}

// Get fetches a single order with its items.
func (r *PostgresOrderRepository) Get(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, order_number, customer_name, customer_email, subtotal, tax, total, status, created_at
		  FROM orders WHERE id = $1
	`, id).Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerEmail,
		&o.Subtotal, &o.Tax, &o.Total, &o.Status, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, service.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Get order: %w", err)
	}
	items, err := r.itemsFor(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

// ByCustomerEmail fetches a customer's orders, newest first.
func (r *PostgresOrderRepository) ByCustomerEmail(ctx context.Context, email string) ([]models.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, order_number, customer_name, customer_email, subtotal, tax, total, status, created_at
		  FROM orders WHERE lower(customer_email) = lower($1) ORDER BY created_at DESC
	`, email)
	if err != nil {
		return nil, fmt.Errorf("ByCustomerEmail: %w", err)
	}
	defer rows.Close()
	return r.scanOrders(ctx, rows)
}

// UpdateStatus moves an order to a new lifecycle state.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("UpdateStatus: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return service.ErrNotFound
	}
	return nil
}
