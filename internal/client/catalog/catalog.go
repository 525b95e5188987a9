// Package catalog holds the in-memory product listing together with the
// search, category and sort state that survives view reloads. The
// listing is considered stale and re-fetched on every relevant view
// entry; nothing here is persisted.
package catalog

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/hansshop/storefront/internal/client/api"
	"github.com/hansshop/storefront/internal/models"
)

// SortOrder selects how the listing is presented.
type SortOrder string

const (
	// SortFeatured keeps the server order.
	SortFeatured SortOrder = "featured"
	// SortPriceAsc orders cheapest first.
	SortPriceAsc SortOrder = "price-asc"
	// SortPriceDesc orders most expensive first.
	SortPriceDesc SortOrder = "price-desc"
	// SortStockDesc orders highest stock first.
	SortStockDesc SortOrder = "stock-desc"
)

// Catalog owns the last-fetched product listing and the filter state.
type Catalog struct {
	api *api.ProductsAPI
	log *zap.Logger

	products []models.Product
	search   string
	category string
	sortBy   SortOrder
}

// New creates an empty catalog with the featured sort order.
func New(productsAPI *api.ProductsAPI, log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{api: productsAPI, log: log, sortBy: SortFeatured}
}

// SetSearch updates the search filter; it takes effect on the next Reload.
func (c *Catalog) SetSearch(s string) { c.search = s }

// SetCategory updates the category filter.
func (c *Catalog) SetCategory(cat string) { c.category = cat }

// SetSort changes the presentation order without refetching.
func (c *Catalog) SetSort(s SortOrder) { c.sortBy = s }

// Search returns the current search filter.
func (c *Catalog) Search() string { return c.search }

// Category returns the current category filter.
func (c *Catalog) Category() string { return c.category }

// Sort returns the current sort order.
func (c *Catalog) Sort() SortOrder { return c.sortBy }

// ResetFilters clears search, category and sort back to defaults.
func (c *Catalog) ResetFilters() {
	c.search = ""
	c.category = ""
	c.sortBy = SortFeatured
}

// Reload fetches the listing with the current filters. On failure the
// previous listing is kept; the error is returned for display.
func (c *Catalog) Reload(ctx context.Context) error {
	products, err := c.api.List(ctx, c.category, c.search)
	if err != nil {
		c.log.Warn("product reload failed", zap.Error(err))
		return err
	}
	c.products = products
	return nil
}

// Products returns the listing in the current sort order. The internal
// slice is never exposed; callers get a copy they may reorder freely.
func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	switch c.sortBy {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortStockDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Stock > out[j].Stock })
	}
	return out
}

// Featured returns up to n products in server order, for the home view.
func (c *Catalog) Featured(n int) []models.Product {
	if n > len(c.products) {
		n = len(c.products)
	}
	out := make([]models.Product, n)
	copy(out, c.products[:n])
	return out
}
