package catalog

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/hansshop/storefront/internal/client/api"
	"github.com/hansshop/storefront/internal/models"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

type anonIdentity struct{}

func (anonIdentity) Token() string     { return "" }
func (anonIdentity) SessionID() string { return "s1" }

func newCatalog(fn roundTripperFunc) *Catalog {
	httpc := &http.Client{Transport: fn, Timeout: time.Second}
	c := api.New("http://api.test/api", anonIdentity{}, httpc, nil)
	return New(c.Products, nil)
}

const listing = `[
	{"id":"p1","name":"Mug","price":12,"stock":4,"category":"kitchen"},
	{"id":"p2","name":"Lamp","price":30,"stock":1,"category":"home"},
	{"id":"p3","name":"Desk","price":20,"stock":9,"category":"home"}
]`

func TestReload_PassesFiltersAsQuery(t *testing.T) {
	var seen *http.Request
	cat := newCatalog(func(req *http.Request) (*http.Response, error) {
		seen = req
		return &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(listing))}, nil
	})

	cat.SetSearch("lamp")
	cat.SetCategory("home")
	if err := cat.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	q := seen.URL.Query()
	if q.Get("search") != "lamp" || q.Get("category") != "home" {
		t.Errorf("filters not forwarded, got query %q", seen.URL.RawQuery)
	}

	// Filters must survive a reload untouched.
	if cat.Search() != "lamp" || cat.Category() != "home" {
		t.Error("filter state lost across reload")
	}
}

func TestReload_FailureKeepsPreviousListing(t *testing.T) {
	fail := false
	cat := newCatalog(func(req *http.Request) (*http.Response, error) {
		if fail {
			return nil, errors.New("down")
		}
		return &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(listing))}, nil
	})

	if err := cat.Reload(context.Background()); err != nil {
		t.Fatalf("first reload failed: %v", err)
	}
	fail = true
	if err := cat.Reload(context.Background()); err == nil {
		t.Fatal("expected an error from the failed reload")
	}
	if len(cat.Products()) != 3 {
		t.Errorf("listing clobbered by failed reload: %d products", len(cat.Products()))
	}
}

func TestProducts_SortOrders(t *testing.T) {
	cat := newCatalog(func(req *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(listing))}, nil
	})
	if err := cat.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}

	ids := func(list []models.Product) string {
		var b strings.Builder
		for _, p := range list {
			b.WriteString(p.ID)
		}
		return b.String()
	}

	cases := []struct {
		order SortOrder
		want  string
	}{
		{SortFeatured, "p1p2p3"},
		{SortPriceAsc, "p1p3p2"},
		{SortPriceDesc, "p2p3p1"},
		{SortStockDesc, "p3p1p2"},
	}
	for _, tc := range cases {
		cat.SetSort(tc.order)
		if got := ids(cat.Products()); got != tc.want {
			t.Errorf("%s: got %s want %s", tc.order, got, tc.want)
		}
	}
}

func TestFeatured_CapsAtListingSize(t *testing.T) {
	cat := newCatalog(func(req *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(listing))}, nil
	})
	_ = cat.Reload(context.Background())

	if got := len(cat.Featured(8)); got != 3 {
		t.Errorf("Featured(8) returned %d products", got)
	}
	if got := len(cat.Featured(2)); got != 2 {
		t.Errorf("Featured(2) returned %d products", got)
	}
}

func TestResetFilters(t *testing.T) {
	cat := newCatalog(func(req *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(`[]`))}, nil
	})
	cat.SetSearch("x")
	cat.SetCategory("y")
	cat.SetSort(SortPriceDesc)
	cat.ResetFilters()
	if cat.Search() != "" || cat.Category() != "" || cat.Sort() != SortFeatured {
		t.Error("ResetFilters left stale state")
	}
}
