package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hansshop/storefront/internal/models"
	"github.com/hansshop/storefront/internal/service"
)

// PostgresCartRepository implements session-cart persistence against a
// PostgreSQL database. Carts are created lazily on the first mutation
// and every mutation refreshes the cart's updated_at so the stale-cart
// cleaner can sweep abandoned sessions.
type PostgresCartRepository struct {
	DB *sql.DB
}

// NewPostgresCartRepository creates a PostgresCartRepository using the
// provided *sql.DB.
func NewPostgresCartRepository(db *sql.DB) *PostgresCartRepository {
	return &PostgresCartRepository{DB: db}
}

// touch upserts the cart row and refreshes its activity timestamp.
func (r *PostgresCartRepository) touch(ctx context.Context, sessionID string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO carts (session_id, updated_at) VALUES ($1, now())
		ON CONFLICT (session_id) DO UPDATE SET updated_at = now()
	`, sessionID)
	return err
}

// Items fetches the lines of a session's cart.
func (r *PostgresCartRepository) Items(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, product_id, product_name, price, quantity
		  FROM cart_items WHERE session_id = $1 ORDER BY added_at
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("Items: %w", err)
	}
	defer rows.Close()

	out := []models.CartItem{}
	for rows.Next() {
		var it models.CartItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.ProductName, &it.Price, &it.Quantity); err != nil {
			return nil, fmt.Errorf("Items scan: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// InsertItem appends a line, creating the cart row if needed.
func (r *PostgresCartRepository) InsertItem(ctx context.Context, sessionID string, item models.CartItem) error {
	if err := r.touch(ctx, sessionID); err != nil {
		return fmt.Errorf("InsertItem touch: %w", err)
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO cart_items (id, session_id, product_id, product_name, price, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, item.ID, sessionID, item.ProductID, item.ProductName, item.Price, item.Quantity)
	if err != nil {
		return fmt.Errorf("InsertItem: %w", err)
	}
	return nil
}

// UpdateQuantity sets a line's quantity.
func (r *PostgresCartRepository) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE cart_items SET quantity = $3 WHERE session_id = $1 AND id = $2
	`, sessionID, itemID, quantity)
	if err != nil {
		return fmt.Errorf("UpdateQuantity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return service.ErrNotFound
	}
	return r.touch(ctx, sessionID)
}

// DeleteItem removes a line from the cart.
func (r *PostgresCartRepository) DeleteItem(ctx context.Context, sessionID, itemID string) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM cart_items WHERE session_id = $1 AND id = $2
	`, sessionID, itemID)
	if err != nil {
		return fmt.Errorf("DeleteItem: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return service.ErrNotFound
	}
	return r.touch(ctx, sessionID)
}

// Clear drops the whole cart; cart_items cascade with the cart row.
func (r *PostgresCartRepository) Clear(ctx context.Context, sessionID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM carts WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("Clear: %w", err)
	}
	return nil
}
