package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hansshop/storefront/internal/models"
	"github.com/hansshop/storefront/internal/service"
)

// PostgresProductRepository implements catalog persistence against a
// PostgreSQL database.
type PostgresProductRepository struct {
	DB *sql.DB
}

// NewPostgresProductRepository creates a PostgresProductRepository
// using the provided *sql.DB.
func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{DB: db}
}

// List fetches products, optionally filtered by category (exact,
// case-insensitive) and search term (name substring). Results come in
// insertion order.
func (r *PostgresProductRepository) List(ctx context.Context, category, search string) ([]models.Product, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, description, price, stock, category, image
		  FROM products
		 WHERE ($1 = '' OR lower(category) = lower($1))
		   AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		 ORDER BY created_at
	`, category, search)
	if err != nil {
		return nil, fmt.Errorf("List products: %w", err)
	}
	defer rows.Close()

	out := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Category, &p.Image); err != nil {
			return nil, fmt.Errorf("List products scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get fetches a single product by id.
func (r *PostgresProductRepository) Get(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, description, price, stock, category, image FROM products WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Category, &p.Image)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, service.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Get product: %w", err)
	}
	return &p, nil
}

// Create inserts a new product.
func (r *PostgresProductRepository) Create(ctx context.Context, p models.Product) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO products (id, name, description, price, stock, category, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.ID, p.Name, p.Description, p.Price, p.Stock, p.Category, p.Image)
	if err != nil {
		return fmt.Errorf("Create product: %w", err)
	}
	return nil
}

// Update replaces an existing product.
func (r *PostgresProductRepository) Update(ctx context.Context, p models.Product) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE products SET name = $2, description = $3, price = $4, stock = $5, category = $6, image = $7
		 WHERE id = $1
	`, p.ID, p.Name, p.Description, p.Price, p.Stock, p.Category, p.Image)
	if err != nil {
		return fmt.Errorf("Update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return service.ErrNotFound
	}
	return nil
}

// Delete removes a product by id.
func (r *PostgresProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("Delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return service.ErrNotFound
	}
	return nil
}
