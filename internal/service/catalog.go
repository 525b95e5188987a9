package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hansshop/storefront/internal/models"
)

// ProductRepository defines the persistence operations required by the
// catalog service.
type ProductRepository interface {
	// List returns products, optionally filtered by exact category and
	// case-insensitive name search.
	List(ctx context.Context, category, search string) ([]models.Product, error)
	// Get returns the product with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*models.Product, error)
	// Create stores a new product.
	Create(ctx context.Context, p models.Product) error
	// Update replaces the product with p.ID, or returns ErrNotFound.
	Update(ctx context.Context, p models.Product) error
	// Delete removes the product, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// CatalogService implements product management.
type CatalogService struct {
	repo ProductRepository
}

// NewCatalogService constructs a CatalogService with the given repository.
func NewCatalogService(repo ProductRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func validateProduct(p models.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if p.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}
	return nil
}

// List returns the filtered catalog.
func (s *CatalogService) List(ctx context.Context, category, search string) ([]models.Product, error) {
	return s.repo.List(ctx, category, search)
}

// Get returns one product.
func (s *CatalogService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and stores a new product, assigning its id.
func (s *CatalogService) Create(ctx context.Context, p models.Product) (*models.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	p.ID = uuid.NewString()
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &p, nil
}

// Update validates and replaces an existing product.
func (s *CatalogService) Update(ctx context.Context, p models.Product) (*models.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a product from the catalog.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
