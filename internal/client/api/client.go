// Package api is the HTTP gateway to the storefront backend. It adds
// auth headers, serializes bodies and normalizes error responses; it
// never mutates identity or cart state - callers own that.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"go.uber.org/zap"
)

// Identity supplies the credentials attached to outgoing requests. The
// session store implements it.
type Identity interface {
	// Token returns the auth token, or "" when anonymous.
	Token() string
	// SessionID returns the stable session identifier scoping the cart.
	SessionID() string
}

// Client performs requests against the storefront API.
type Client struct {
	base string
	http *http.Client
	id   Identity
	log  *zap.Logger

	// Auth, Products, Cart and Orders group the typed endpoint wrappers.
	Auth     *AuthAPI
	Products *ProductsAPI
	Cart     *CartAPI
	Orders   *OrdersAPI
}

// New creates a Client for the API at base (e.g. "http://host:5000").
// httpClient may be nil, in which case http.DefaultClient is used.
func New(base string, id Identity, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	c := &Client{base: base, http: httpClient, id: id, log: log}
	c.Auth = &AuthAPI{c: c}
	c.Products = &ProductsAPI{c: c}
	c.Cart = &CartAPI{c: c}
	c.Orders = &OrdersAPI{c: c}
	return c
}

// errorBody is the shape error responses come in; the backend uses
// either "message" or "error" for the human-readable text.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do performs a JSON request and decodes the response into out when out
// is non-nil. body may be nil for requests without a payload.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	op := method + " " + endpoint

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+endpoint, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.id.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.send(req, op, out)
}

// upload performs a multipart request carrying form fields and an
// optional file. It attaches the auth header but intentionally sets no
// JSON content type; the multipart writer provides its own.
func (c *Client) upload(ctx context.Context, method, endpoint string, fields map[string]string, fileField, fileName string, file io.Reader, out any) error {
	op := method + " " + endpoint

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("%s: write field %s: %w", op, k, err)
		}
	}
	if file != nil {
		fw, err := w.CreateFormFile(fileField, fileName)
		if err != nil {
			return fmt.Errorf("%s: create file part: %w", op, err)
		}
		if _, err := io.Copy(fw, file); err != nil {
			return fmt.Errorf("%s: copy file: %w", op, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%s: finalize multipart: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+endpoint, &buf)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token := c.id.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.send(req, op, out)
}

// send executes the request, normalizes failures and decodes the
// response body into out when out is non-nil.
func (c *Client) send(req *http.Request, op string, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("op", op), zap.Error(err))
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := "API request failed"
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
			if eb.Message != "" {
				msg = eb.Message
			} else if eb.Error != "" {
				msg = eb.Error
			}
		}
		c.log.Warn("api error", zap.String("op", op), zap.Int("status", resp.StatusCode), zap.String("message", msg))
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: invalid response: %w", op, err)
	}
	return nil
}
