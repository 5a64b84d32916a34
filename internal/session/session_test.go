// ABOUTME: Tests for the session store
// ABOUTME: Covers hydration formats, the admin login fallback, and persistence ordering

package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/inkwell-books/storefront/internal/client"
	"github.com/inkwell-books/storefront/internal/storage"
)

// makeJWT builds an unsigned token that parses; hydration never verifies
// signatures, only the exp claim.
func makeJWT(t *testing.T, claims map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	body, err := json.Marshal(claims)
	if err != nil {
		t.Fatal(err)
	}
	return header + "." + base64.RawURLEncoding.EncodeToString(body) + ".sig"
}

func newStore(t *testing.T, baseURL string) (*Store, *storage.Store) {
	t.Helper()
	st := storage.New(t.TempDir())
	return New(client.New(baseURL), st), st
}

func TestHydrate_NoToken(t *testing.T) {
	s, _ := newStore(t, "http://localhost:0")
	s.Hydrate()
	if st := s.State(); st.LoggedIn || st.User != nil {
		t.Errorf("expected logged out state, got %+v", st)
	}
	if s.Identity() != AnonymousIdentity {
		t.Errorf("expected anonymous identity, got %q", s.Identity())
	}
}

func TestHydrate_StructuredUser(t *testing.T) {
	s, st := newStore(t, "http://localhost:0")
	st.Set(storage.KeyToken, "opaque-token")
	st.SetJSON(storage.KeyUserData, User{ID: "42", Name: "Ada", Email: "ada@example.com", Role: "CUSTOMER"})

	s.Hydrate()

	got := s.State()
	if !got.LoggedIn || got.Token != "opaque-token" {
		t.Fatalf("expected logged in, got %+v", got)
	}
	if got.User == nil || got.User.ID != "42" || got.User.Name != "Ada" {
		t.Errorf("unexpected user %+v", got.User)
	}
	if s.Identity() != "42" {
		t.Errorf("expected identity 42, got %q", s.Identity())
	}
}

func TestHydrate_LegacyRoleUpgrade(t *testing.T) {
	s, st := newStore(t, "http://localhost:0")
	st.Set(storage.KeyToken, "opaque-token")
	st.Set(storage.KeyRole, "ADMIN")

	s.Hydrate()

	got := s.State()
	if !got.LoggedIn || got.User == nil || got.User.Role != "ADMIN" {
		t.Fatalf("expected upgraded admin session, got %+v", got)
	}

	// The upgrade writes the structured record back.
	var stored User
	if !st.GetJSON(storage.KeyUserData, &stored) || stored.Role != "ADMIN" {
		t.Errorf("expected structured record persisted, got %+v", stored)
	}
}

func TestHydrate_ExpiredTokenCleared(t *testing.T) {
	s, st := newStore(t, "http://localhost:0")
	expired := makeJWT(t, map[string]any{"exp": time.Now().Add(-time.Hour).Unix()})
	st.Set(storage.KeyToken, expired)
	st.SetJSON(storage.KeyUserData, User{ID: "42", Role: "CUSTOMER"})

	s.Hydrate()

	if st2 := s.State(); st2.LoggedIn {
		t.Errorf("expected logged out after expiry, got %+v", st2)
	}
	if _, ok := st.Get(storage.KeyToken); ok {
		t.Error("expected expired token removed from storage")
	}
	if _, ok := st.Get(storage.KeyUserData); ok {
		t.Error("expected user record removed with expired token")
	}
}

func TestHydrate_UnexpiredJWT(t *testing.T) {
	s, st := newStore(t, "http://localhost:0")
	token := makeJWT(t, map[string]any{"exp": time.Now().Add(time.Hour).Unix()})
	st.Set(storage.KeyToken, token)
	st.SetJSON(storage.KeyUserData, User{ID: "7", Role: "CUSTOMER"})

	s.Hydrate()
	if got := s.State(); !got.LoggedIn || got.Token != token {
		t.Errorf("expected live session, got %+v", got)
	}
}

func TestHydrate_TokenWithoutUserCleared(t *testing.T) {
	s, st := newStore(t, "http://localhost:0")
	st.Set(storage.KeyToken, "opaque-token")

	s.Hydrate()

	if got := s.State(); got.LoggedIn {
		t.Errorf("expected logged out, got %+v", got)
	}
	if _, ok := st.Get(storage.KeyToken); ok {
		t.Error("expected orphaned token removed")
	}
}

func TestLogin_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"token":"tok-1","userId":"42","name":"Ada","email":"ada@example.com","role":"CUSTOMER"}`)
	}))
	defer server.Close()

	s, st := newStore(t, server.URL)
	if err := s.Login(context.Background(), "ada@example.com", "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := s.State()
	if !got.LoggedIn || got.Token != "tok-1" || got.User.ID != "42" {
		t.Errorf("unexpected state %+v", got)
	}

	// Both the token and the structured record must be persisted.
	if tok, ok := st.Get(storage.KeyToken); !ok || tok != "tok-1" {
		t.Errorf("token not persisted, got %q", tok)
	}
	var stored User
	if !st.GetJSON(storage.KeyUserData, &stored) || stored.Name != "Ada" {
		t.Errorf("user record not persisted, got %+v", stored)
	}
}

func TestLogin_AdminFallback(t *testing.T) {
	var adminTried bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"message":"invalid credentials"}`)
		case "/auth/admin/login":
			adminTried = true
			fmt.Fprint(w, `{"token":"tok-admin","userId":"1","name":"Root","role":"ADMIN"}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	s, _ := newStore(t, server.URL)
	if err := s.Login(context.Background(), "root@example.com", "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !adminTried {
		t.Error("expected admin endpoint to be tried")
	}
	if got := s.State(); got.User == nil || got.User.Role != "ADMIN" {
		t.Errorf("expected admin session, got %+v", got)
	}
}

func TestLogin_BothFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"invalid credentials"}`)
	}))
	defer server.Close()

	s, st := newStore(t, server.URL)
	err := s.Login(context.Background(), "x@example.com", "bad")
	if err == nil || err.Error() != "invalid credentials" {
		t.Errorf("expected server message, got %v", err)
	}
	if got := s.State(); got.LoggedIn || got.Err != "invalid credentials" {
		t.Errorf("unexpected state %+v", got)
	}
	if _, ok := st.Get(storage.KeyToken); ok {
		t.Error("no token may be persisted on failure")
	}
}

func TestLogout_Idempotent(t *testing.T) {
	s, st := newStore(t, "http://localhost:0")
	st.Set(storage.KeyToken, "opaque-token")
	st.SetJSON(storage.KeyUserData, User{ID: "42"})
	s.Hydrate()

	s.Logout()
	if _, ok := st.Get(storage.KeyToken); ok {
		t.Error("expected token cleared")
	}
	if s.State().LoggedIn {
		t.Error("expected logged out")
	}

	// Logging out again must not panic or error.
	s.Logout()
}

func TestUpdateUser_MergesNonEmpty(t *testing.T) {
	s, st := newStore(t, "http://localhost:0")
	st.Set(storage.KeyToken, "opaque-token")
	st.SetJSON(storage.KeyUserData, User{ID: "42", Name: "Ada", Email: "ada@example.com", Role: "CUSTOMER"})
	s.Hydrate()

	s.UpdateUser(User{Name: "Ada L."})

	got := s.State().User
	if got.Name != "Ada L." || got.Email != "ada@example.com" || got.Role != "CUSTOMER" {
		t.Errorf("unexpected merge result %+v", got)
	}

	var stored User
	if !st.GetJSON(storage.KeyUserData, &stored) || stored.Name != "Ada L." {
		t.Errorf("update not persisted, got %+v", stored)
	}
}

func TestNumericUserID(t *testing.T) {
	s, st := newStore(t, "http://localhost:0")
	if _, err := s.NumericUserID(); err == nil {
		t.Error("expected error while logged out")
	}

	st.Set(storage.KeyToken, "opaque-token")
	st.SetJSON(storage.KeyUserData, User{ID: "42"})
	s.Hydrate()

	id, err := s.NumericUserID()
	if err != nil || id != 42 {
		t.Errorf("expected 42, got %d err=%v", id, err)
	}
}

func TestSubscribe_ReceivesStateChanges(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"token":"tok-1","userId":"42","name":"Ada","role":"CUSTOMER"}`)
	}))
	defer server.Close()

	s, _ := newStore(t, server.URL)
	ch := s.Subscribe()
	defer s.Dispose()

	if err := s.Login(context.Background(), "ada@example.com", "pw"); err != nil {
		t.Fatal(err)
	}

	// Login notifies before returning, so the snapshots are already buffered.
	var sawLoggedIn bool
	for len(ch) > 0 {
		if st := <-ch; st.LoggedIn {
			sawLoggedIn = true
		}
	}
	if !sawLoggedIn {
		t.Error("never observed logged-in snapshot")
	}
}
