package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/beanmart/beanmart/pkg/domain"
)

// TokenSource supplies the bearer credential for each request.
// An empty token sends the request unauthenticated.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// LoginRequest is the payload for password login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the identity and bearer token issued on login.
type LoginResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// ProductFilter narrows a catalog listing.
type ProductFilter struct {
	Query  string
	Roast  string
	Limit  int
	Offset int
}

// Client is the Beanmart storefront API client.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// New creates a new API client. tokens may be nil for anonymous use.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Login exchanges email and password for an identity and bearer token.
// The returned token is not stored anywhere; hand it to the session store.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.post(ctx, "/api/auth/login", LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	if resp.User == nil || resp.Token == "" {
		return nil, fmt.Errorf("client.Login: incomplete response")
	}
	return &resp, nil
}

// GetMe returns the authenticated user's profile.
func (c *Client) GetMe(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/api/me", &u); err != nil {
		return nil, fmt.Errorf("client.GetMe: %w", err)
	}
	return &u, nil
}

// ListProducts fetches the catalog with optional search and roast filters.
func (c *Client) ListProducts(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	params := url.Values{}
	if f.Query != "" {
		params.Set("q", f.Query)
	}
	if f.Roast != "" {
		params.Set("roast", f.Roast)
	}
	if f.Limit > 0 {
		params.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		params.Set("offset", strconv.Itoa(f.Offset))
	}
	path := "/api/products"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var products []domain.Product
	if err := c.get(ctx, path, &products); err != nil {
		return nil, fmt.Errorf("client.ListProducts: %w", err)
	}
	return products, nil
}

// GetProduct fetches a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := c.get(ctx, "/api/products/"+url.PathEscape(id), &p); err != nil {
		return nil, fmt.Errorf("client.GetProduct: %w", err)
	}
	return &p, nil
}

// ListOrders returns the authenticated user's orders, newest first.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.get(ctx, "/api/orders", &orders); err != nil {
		return nil, fmt.Errorf("client.ListOrders: %w", err)
	}
	return orders, nil
}

// AdminListOrders returns orders across all customers. Requires an admin token.
func (c *Client) AdminListOrders(ctx context.Context, status string) ([]domain.Order, error) {
	path := "/api/admin/orders"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var orders []domain.Order
	if err := c.get(ctx, path, &orders); err != nil {
		return nil, fmt.Errorf("client.AdminListOrders: %w", err)
	}
	return orders, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
