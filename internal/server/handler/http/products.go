package http

import (
	"context"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hansshop/storefront/internal/models"
)

// CatalogService defines the product operations required by the HTTP
// handlers.
type CatalogService interface {
	List(ctx context.Context, category, search string) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p models.Product) (*models.Product, error)
	Update(ctx context.Context, p models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductsHandler handles catalog requests. Create and Update accept
// multipart forms so an image file can ride along with the fields.
type ProductsHandler struct {
	CatalogService CatalogService
}

// List returns the catalog, filtered by the category and search query
// parameters when present.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := h.CatalogService.List(r.Context(), q.Get("category"), q.Get("search"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// Get returns a single product by id.
func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.CatalogService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// productFromForm reads the multipart fields of a create or update.
// A file part named "image" wins over the plain image field.
func productFromForm(r *http.Request) (models.Product, error) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return models.Product{}, err
	}
	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	stock, _ := strconv.Atoi(r.FormValue("stock"))
	p := models.Product{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       price,
		Stock:       stock,
		Category:    r.FormValue("category"),
		Image:       r.FormValue("image"),
	}
	if file, header, err := r.FormFile("image"); err == nil {
		file.Close()
		p.Image = "/uploads/" + path.Base(header.Filename)
	}
	return p, nil
}

// Create adds a product to the catalog.
func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := productFromForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	created, err := h.CatalogService.Create(r.Context(), p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update replaces an existing product.
func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, err := productFromForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	p.ID = chi.URLParam(r, "id")
	updated, err := h.CatalogService.Update(r.Context(), p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a product from the catalog.
func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.CatalogService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}
