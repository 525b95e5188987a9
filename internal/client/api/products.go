package api

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/hansshop/storefront/internal/models"
)

// ProductsAPI wraps the catalog endpoints.
type ProductsAPI struct {
	c *Client
}

// ProductForm carries the fields of a product create or update. An
// ImageURL is sent as a plain field; a file upload goes through the
// image parameter of Create/Update instead.
type ProductForm struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
	ImageURL    string
}

func (f ProductForm) fields() map[string]string {
	m := map[string]string{
		"name":        f.Name,
		"description": f.Description,
		"price":       strconv.FormatFloat(f.Price, 'f', -1, 64),
		"stock":       strconv.Itoa(f.Stock),
		"category":    f.Category,
	}
	if f.ImageURL != "" {
		m["image"] = f.ImageURL
	}
	return m
}

// List fetches the catalog, optionally filtered by category and search
// term. Empty filters are omitted from the query string.
func (p *ProductsAPI) List(ctx context.Context, category, search string) ([]models.Product, error) {
	endpoint := "/products"
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if search != "" {
		q.Set("search", search)
	}
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	var out []models.Product
	if err := p.c.do(ctx, "GET", endpoint, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single product by id.
func (p *ProductsAPI) Get(ctx context.Context, id string) (*models.Product, error) {
	var out models.Product
	if err := p.c.do(ctx, "GET", "/products/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create adds a product. image may be nil; when set it is uploaded as a
// multipart file part named "image".
func (p *ProductsAPI) Create(ctx context.Context, form ProductForm, image io.Reader, imageName string) (*models.Product, error) {
	var out models.Product
	if err := p.c.upload(ctx, "POST", "/products", form.fields(), "image", imageName, image, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces the product with the given id.
func (p *ProductsAPI) Update(ctx context.Context, id string, form ProductForm, image io.Reader, imageName string) (*models.Product, error) {
	var out models.Product
	if err := p.c.upload(ctx, "PUT", "/products/"+url.PathEscape(id), form.fields(), "image", imageName, image, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a product.
func (p *ProductsAPI) Delete(ctx context.Context, id string) error {
	return p.c.do(ctx, "DELETE", "/products/"+url.PathEscape(id), nil, nil)
}
