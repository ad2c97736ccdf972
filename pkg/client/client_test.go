package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/beanmart/beanmart/pkg/domain"
)

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("login sent Authorization %q, want none", got)
		}
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Email != "a@b.com" || req.Password != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"}) //nolint:errcheck
			return
		}
		json.NewEncoder(w).Encode(LoginResponse{ //nolint:errcheck
			User:  &domain.User{ID: "1", Email: req.Email, IsAdmin: true},
			Token: "tok123",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	resp, err := c.Login(context.Background(), "a@b.com", "hunter2")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if resp.Token != "tok123" {
		t.Errorf("Token = %q, want %q", resp.Token, "tok123")
	}
	if resp.User == nil || !resp.User.IsAdmin {
		t.Errorf("User = %+v, want admin user", resp.User)
	}

	_, err = c.Login(context.Background(), "a@b.com", "wrong")
	if !IsUnauthorized(err) {
		t.Fatalf("Login() with bad password error = %v, want 401", err)
	}
	if !strings.Contains(err.Error(), "invalid credentials") {
		t.Errorf("error = %q, want API message", err.Error())
	}
}

func TestLogin_IncompleteResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(LoginResponse{User: &domain.User{ID: "1"}}) //nolint:errcheck
	}))
	defer srv.Close()

	if _, err := New(srv.URL, nil).Login(context.Background(), "a@b.com", "pw"); err == nil {
		t.Fatal("expected error when token is missing")
	}
}

// swappableToken lets a test change the token between requests, the way
// the session store does after login.
type swappableToken struct{ tok string }

func (s *swappableToken) Token() string { return s.tok }

func TestGetMe_UsesCurrentToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/me" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "not authenticated"}) //nolint:errcheck
			return
		}
		json.NewEncoder(w).Encode(domain.User{ID: "1", Email: "a@b.com"}) //nolint:errcheck
	}))
	defer srv.Close()

	src := &swappableToken{}
	c := New(srv.URL, src)

	_, err := c.GetMe(context.Background())
	if err == nil {
		t.Fatal("expected error without a token")
	}
	if got := err.Error(); !strings.Contains(got, "HTTP 401") {
		t.Errorf("error = %q, want it to contain 'HTTP 401'", got)
	}

	src.tok = "fresh-token"
	me, err := c.GetMe(context.Background())
	if err != nil {
		t.Fatalf("GetMe() error: %v", err)
	}
	if me.Email != "a@b.com" {
		t.Errorf("Email = %q, want %q", me.Email, "a@b.com")
	}
}

func TestRequestIDHeader(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("X-Request-ID"))
		json.NewEncoder(w).Encode([]domain.Product{}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	for i := 0; i < 2; i++ {
		if _, err := c.ListProducts(context.Background(), ProductFilter{}); err != nil {
			t.Fatalf("ListProducts() error: %v", err)
		}
	}
	if len(seen) != 2 {
		t.Fatalf("got %d requests, want 2", len(seen))
	}
	for _, id := range seen {
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("X-Request-ID %q is not a UUID", id)
		}
	}
	if seen[0] == seen[1] {
		t.Error("request IDs should differ per request")
	}
}

func TestListProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		if q.Get("q") != "ethiopia" || q.Get("roast") != "light" || q.Get("limit") != "10" {
			t.Errorf("query = %v", q)
		}
		products := []domain.Product{
			{Name: "Yirgacheffe", Roast: "light", PriceCents: 1850, InStock: true},
			{Name: "Guji", Roast: "light", PriceCents: 1700},
		}
		json.NewEncoder(w).Encode(products) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	products, err := c.ListProducts(context.Background(), ProductFilter{Query: "ethiopia", Roast: "light", Limit: 10})
	if err != nil {
		t.Fatalf("ListProducts() error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}
	if products[0].Name != "Yirgacheffe" {
		t.Errorf("products[0].Name = %q, want %q", products[0].Name, "Yirgacheffe")
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such product", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).GetProduct(context.Background(), "missing")
	if !IsStatus(err, http.StatusNotFound) {
		t.Fatalf("GetProduct() error = %v, want 404", err)
	}
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.Message != "no such product" {
		t.Errorf("HTTPError = %+v, want plain-text message", httpErr)
	}
}

func TestAdminListOrders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/orders" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer admin-tok" {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"error": "admin only"}) //nolint:errcheck
			return
		}
		if got := r.URL.Query().Get("status"); got != "paid" {
			t.Errorf("status = %q, want paid", got)
		}
		json.NewEncoder(w).Encode([]domain.Order{{Status: "paid", TotalCents: 3700}}) //nolint:errcheck
	}))
	defer srv.Close()

	orders, err := New(srv.URL, StaticToken("admin-tok")).AdminListOrders(context.Background(), "paid")
	if err != nil {
		t.Fatalf("AdminListOrders() error: %v", err)
	}
	if len(orders) != 1 || orders[0].TotalCents != 3700 {
		t.Errorf("orders = %+v", orders)
	}

	_, err = New(srv.URL, StaticToken("customer-tok")).AdminListOrders(context.Background(), "paid")
	if !IsStatus(err, http.StatusForbidden) {
		t.Errorf("error = %v, want 403", err)
	}
}

func TestIsStatus(t *testing.T) {
	err := &HTTPError{StatusCode: 401, Message: "unauthorized"}
	if !IsStatus(err, 401) {
		t.Error("IsStatus(401) = false, want true")
	}
	if IsStatus(err, 404) {
		t.Error("IsStatus(404) = true, want false")
	}
	if IsStatus(errors.New("plain"), 401) {
		t.Error("IsStatus on plain error = true, want false")
	}
}
