// ABOUTME: Tests for the bookstore API client
// ABOUTME: Uses httptest to mock backend responses

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBooks_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/books" {
			t.Errorf("expected path /books, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"bookId": 1, "title": "Dune", "author": "Frank Herbert", "price": 12.99, "stock": 7},
			{"bookId": 2, "title": "Emma", "author": "Jane Austen", "price": 9.5, "stock": 0},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	books, err := c.Books(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(books))
	}
	if books[0].Price != 1299 {
		t.Errorf("expected price 1299 cents, got %d", books[0].Price)
	}
	if books[1].Price != 950 {
		t.Errorf("expected price 950 cents, got %d", books[1].Price)
	}
}

func TestBooks_ConnectionError(t *testing.T) {
	c := New("http://localhost:1")
	_, err := c.Books(context.Background())
	if err == nil {
		t.Fatal("expected connection error, got nil")
	}
	if !strings.Contains(err.Error(), "cannot connect to backend") {
		t.Errorf("expected connection message, got %v", err)
	}
}

func TestDo_BearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]CartLine{})
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetToken("tok-123")
	if _, err := c.GetCart(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}

	c.SetToken("")
	if _, err := c.GetCart(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no auth header after clearing token, got %q", gotAuth)
	}
}

func TestDo_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Login(context.Background(), "a@b.com", "nope")
	if err == nil {
		t.Fatal("expected error for non-OK status, got nil")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "invalid credentials" {
		t.Errorf("expected server message, got %q", apiErr.Message)
	}
}

func TestLogin_SendsCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("expected path /auth/login, got %s", r.URL.Path)
		}
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["email"] != "a@b.com" || creds["password"] != "secret" {
			t.Errorf("unexpected credentials: %v", creds)
		}
		json.NewEncoder(w).Encode(AuthResponse{Token: "tok", UserID: "42", Name: "Ada", Role: "USER"})
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.Login(context.Background(), "a@b.com", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.UserID != "42" {
		t.Errorf("expected string userId 42, got %q", resp.UserID)
	}
}

func TestPostCartItem_Payload(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cart" || r.Method != http.MethodPost {
			t.Errorf("expected POST /cart, got %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(server.URL)
	if err := c.PostCartItem(context.Background(), 42, 7, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user := got["user"].(map[string]interface{})
	book := got["book"].(map[string]interface{})
	if user["userId"].(float64) != 42 {
		t.Errorf("expected userId 42, got %v", user["userId"])
	}
	if book["bookId"].(float64) != 7 {
		t.Errorf("expected bookId 7, got %v", book["bookId"])
	}
	if got["quantity"].(float64) != 3 {
		t.Errorf("expected quantity 3, got %v", got["quantity"])
	}
}

func TestUpdateOrderStatus_Path(t *testing.T) {
	var gotPath, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(server.URL)
	if err := c.UpdateOrderStatus(context.Background(), 9, "SHIPPED"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Errorf("expected PUT, got %s", gotMethod)
	}
	if !strings.Contains(gotPath, "/orders/9") {
		t.Errorf("unexpected path %s", gotPath)
	}
}
