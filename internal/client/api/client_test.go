package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

// roundTripperFunc makes it easy to fake the http.Client transport.
type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(fn roundTripperFunc) *http.Client {
	return &http.Client{Transport: fn, Timeout: time.Second}
}

// fakeIdentity implements Identity with fixed values.
type fakeIdentity struct {
	token   string
	session string
}

func (f fakeIdentity) Token() string     { return f.token }
func (f fakeIdentity) SessionID() string { return f.session }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestDo_AttachesBearerToken(t *testing.T) {
	var seen *http.Request
	httpc := newTestClient(func(req *http.Request) (*http.Response, error) {
		seen = req
		return jsonResponse(200, `[]`), nil
	})
	c := New("http://api.test/api", fakeIdentity{token: "tok-1", session: "s1"}, httpc, nil)

	if _, err := c.Products.List(context.Background(), "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := seen.Header.Get("Authorization"); got != "Bearer tok-1" {
		t.Errorf("missing bearer header, got %q", got)
	}
	if got := seen.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("expected JSON content type, got %q", got)
	}
}

func TestDo_AnonymousOmitsAuthHeader(t *testing.T) {
	var seen *http.Request
	httpc := newTestClient(func(req *http.Request) (*http.Response, error) {
		seen = req
		return jsonResponse(200, `{"items":[],"total":0}`), nil
	})
	c := New("http://api.test/api", fakeIdentity{session: "s1"}, httpc, nil)

	if _, err := c.Cart.Get(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := seen.Header["Authorization"]; ok {
		t.Error("anonymous request must not carry an Authorization header")
	}
	if seen.URL.Path != "/api/cart/s1" {
		t.Errorf("unexpected path %q", seen.URL.Path)
	}
}

func TestDo_NetworkFailureIsTyped(t *testing.T) {
	httpc := newTestClient(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})
	c := New("http://api.test/api", fakeIdentity{session: "s1"}, httpc, nil)

	_, err := c.Products.List(context.Background(), "", "")
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected *NetworkError, got %T: %v", err, err)
	}
	if ne.Op != "GET /products" {
		t.Errorf("unexpected op: %q", ne.Op)
	}
}

func TestDo_ErrorBodyMessageExtraction(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"product not found"}`, "product not found"},
		{"error field", `{"error":"invalid token"}`, "invalid token"},
		{"no body", ``, "API request failed"},
		{"non-json body", `boom`, "API request failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			httpc := newTestClient(func(req *http.Request) (*http.Response, error) {
				return jsonResponse(404, tc.body), nil
			})
			c := New("http://api.test/api", fakeIdentity{session: "s1"}, httpc, nil)

			_, err := c.Products.Get(context.Background(), "p1")
			var ae *Error
			if !errors.As(err, &ae) {
				t.Fatalf("expected *Error, got %T: %v", err, err)
			}
			if ae.Status != 404 || ae.Message != tc.want {
				t.Errorf("got status=%d message=%q, want 404/%q", ae.Status, ae.Message, tc.want)
			}
		})
	}
}

func TestUpload_MultipartCarriesAuthButNotJSONContentType(t *testing.T) {
	var seen *http.Request
	var body []byte
	httpc := newTestClient(func(req *http.Request) (*http.Response, error) {
		seen = req
		body, _ = io.ReadAll(req.Body)
		return jsonResponse(201, `{"id":"p1","name":"Lamp","price":10,"stock":3}`), nil
	})
	c := New("http://api.test/api", fakeIdentity{token: "admin-tok", session: "s1"}, httpc, nil)

	form := ProductForm{Name: "Lamp", Description: "desk lamp", Price: 10, Stock: 3, Category: "home"}
	p, err := c.Products.Create(context.Background(), form, strings.NewReader("png-bytes"), "lamp.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "p1" {
		t.Errorf("unexpected product: %+v", p)
	}
	if got := seen.Header.Get("Authorization"); got != "Bearer admin-tok" {
		t.Errorf("multipart request lost the auth header: %q", got)
	}
	ct := seen.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "multipart/form-data; boundary=") {
		t.Errorf("expected multipart content type, got %q", ct)
	}
	if !strings.Contains(string(body), `name="image"; filename="lamp.png"`) {
		t.Error("file part missing from multipart body")
	}
	if !strings.Contains(string(body), "png-bytes") {
		t.Error("file content missing from multipart body")
	}
}

func TestCartEndpointsUseSessionScope(t *testing.T) {
	var paths []string
	httpc := newTestClient(func(req *http.Request) (*http.Response, error) {
		paths = append(paths, req.Method+" "+req.URL.Path)
		return jsonResponse(200, `{"items":[],"total":0}`), nil
	})
	c := New("http://api.test/api", fakeIdentity{session: "session_42_abc"}, httpc, nil)

	ctx := context.Background()
	_, _ = c.Cart.AddItem(ctx, "p1", 1)
	_, _ = c.Cart.UpdateItem(ctx, "i1", 2)
	_, _ = c.Cart.RemoveItem(ctx, "i1")
	_ = c.Cart.Clear(ctx)

	want := []string{
		"POST /api/cart/session_42_abc/items",
		"PUT /api/cart/session_42_abc/items/i1",
		"DELETE /api/cart/session_42_abc/items/i1",
		"DELETE /api/cart/session_42_abc",
	}
	if len(paths) != len(want) {
		t.Fatalf("got %d calls, want %d: %v", len(paths), len(want), paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("call %d: got %q want %q", i, paths[i], want[i])
		}
	}
}

func TestOrders_ByCustomerEmailEscapesPath(t *testing.T) {
	var seen *http.Request
	httpc := newTestClient(func(req *http.Request) (*http.Response, error) {
		seen = req
		return jsonResponse(200, `[]`), nil
	})
	c := New("http://api.test/api", fakeIdentity{token: "t", session: "s"}, httpc, nil)

	if _, err := c.Orders.ByCustomerEmail(context.Background(), "a b@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := seen.URL.EscapedPath(); got != "/api/orders/customer/a%20b@example.com" {
		t.Errorf("email not escaped in path: %q", got)
	}
}
