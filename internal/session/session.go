// ABOUTME: Authentication state store backed by local storage
// ABOUTME: Handles login/logout, hydration with legacy upgrade, and profile updates

package session

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkwell-books/storefront/internal/client"
	"github.com/inkwell-books/storefront/internal/debuglog"
	"github.com/inkwell-books/storefront/internal/storage"
)

// AnonymousIdentity is the cart partition key for unauthenticated sessions.
const AnonymousIdentity = "anonymous"

// User is the locally persisted user record.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// State is a snapshot of the session. LoggedIn is true exactly when Token is
// non-empty; User is nil whenever Token is empty.
type State struct {
	LoggedIn bool
	User     *User
	Token    string
	Loading  bool
	Err      string
}

// Store holds authentication state, persists it, and exposes it to
// dependents. Construct one at application root and pass it down.
type Store struct {
	api *client.Client
	st  *storage.Store

	mu    sync.Mutex
	state State
	subs  []chan State
}

// New creates a session store. Call Hydrate before first use.
func New(api *client.Client, st *storage.Store) *Store {
	return &Store{api: api, st: st}
}

// Hydrate restores persisted session state. The structured userData record
// is preferred; a legacy token+role pair is upgraded to the structured
// format; malformed or expired entries are cleared and treated as absent.
func (s *Store) Hydrate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, hasToken := s.st.Get(storage.KeyToken)
	if !hasToken || token == "" {
		s.setLoggedOut("")
		return
	}

	if tokenExpired(token) {
		s.clearStorage()
		s.setLoggedOut("")
		return
	}

	var user User
	if s.st.GetJSON(storage.KeyUserData, &user) {
		s.setLoggedIn(token, &user)
		return
	}

	// Legacy format: token plus a bare role key.
	if role, ok := s.st.Get(storage.KeyRole); ok && role != "" {
		user = User{Role: role}
		if err := s.st.SetJSON(storage.KeyUserData, user); err != nil {
			debuglog.Error("session: upgrade legacy user record", err)
		}
		s.setLoggedIn(token, &user)
		return
	}

	// Token without any user record; treat the whole session as absent.
	s.clearStorage()
	s.setLoggedOut("")
}

// Login authenticates against the backend. Regular login is tried first and
// the admin endpoint is used as a fallback, matching the storefront's single
// login form. On success the user record is persisted before the token so a
// partial write can never produce a token without a user.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Err = ""
	s.mu.Unlock()
	s.notify()

	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		var adminErr error
		resp, adminErr = s.api.AdminLogin(ctx, email, password)
		if adminErr != nil {
			msg := loginErrorMessage(err, adminErr)
			s.mu.Lock()
			s.setLoggedOut(msg)
			s.mu.Unlock()
			s.notify()
			return errors.New(msg)
		}
	}

	user := &User{
		ID:    resp.UserID,
		Name:  resp.Name,
		Email: resp.Email,
		Role:  resp.Role,
	}

	// User record first, token last.
	if err := s.st.SetJSON(storage.KeyUserData, user); err != nil {
		s.mu.Lock()
		s.setLoggedOut(err.Error())
		s.mu.Unlock()
		s.notify()
		return err
	}
	if err := s.st.Set(storage.KeyRole, user.Role); err != nil {
		debuglog.Error("session: persist role", err)
	}
	if err := s.st.Set(storage.KeyToken, resp.Token); err != nil {
		// Roll back the user record so storage stays consistent.
		s.st.Delete(storage.KeyUserData)
		s.st.Delete(storage.KeyRole)
		s.mu.Lock()
		s.setLoggedOut(err.Error())
		s.mu.Unlock()
		s.notify()
		return err
	}

	s.mu.Lock()
	s.setLoggedIn(resp.Token, user)
	s.mu.Unlock()
	s.notify()
	return nil
}

// Logout clears persisted session keys, current and legacy, and resets
// in-memory state. Safe to call when already logged out.
func (s *Store) Logout() {
	s.mu.Lock()
	s.clearStorage()
	s.setLoggedOut("")
	s.mu.Unlock()
	s.notify()
}

// UpdateUser merges non-empty patch fields into the current user and
// re-persists the record. Storage failures are logged, not fatal.
func (s *Store) UpdateUser(patch User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.User == nil {
		return
	}

	if patch.Name != "" {
		s.state.User.Name = patch.Name
	}
	if patch.Email != "" {
		s.state.User.Email = patch.Email
	}
	if patch.Role != "" {
		s.state.User.Role = patch.Role
	}
	if patch.ID != "" {
		s.state.User.ID = patch.ID
	}

	if err := s.st.SetJSON(storage.KeyUserData, s.state.User); err != nil {
		debuglog.Error("session: persist user update", err)
	}
}

// State returns a snapshot of the current session.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Identity returns the cart partition key for the current session: the user
// id when authenticated, otherwise the anonymous sentinel.
func (s *Store) Identity() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.LoggedIn && s.state.User != nil && s.state.User.ID != "" {
		return s.state.User.ID
	}
	return AnonymousIdentity
}

// NumericUserID parses the backend's string user id for endpoints that take
// a numeric path segment.
func (s *Store) NumericUserID() (int64, error) {
	st := s.State()
	if !st.LoggedIn || st.User == nil || st.User.ID == "" {
		return 0, errors.New("not logged in")
	}
	id, err := strconv.ParseInt(st.User.ID, 10, 64)
	if err != nil {
		return 0, errors.New("invalid user id; log out and back in to refresh the session")
	}
	return id, nil
}

// Subscribe returns a channel receiving state snapshots after each change.
// Slow subscribers miss intermediate states rather than blocking the store.
func (s *Store) Subscribe() <-chan State {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan State, 8)
	s.subs = append(s.subs, ch)
	return ch
}

// Dispose closes all subscriber channels.
func (s *Store) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		close(ch)
	}
	s.subs = nil
}

// setLoggedIn and setLoggedOut maintain the LoggedIn/Token/User invariant.
// Callers hold s.mu.
func (s *Store) setLoggedIn(token string, user *User) {
	s.state = State{LoggedIn: true, User: user, Token: token}
	s.api.SetToken(token)
}

func (s *Store) setLoggedOut(errMsg string) {
	s.state = State{Err: errMsg}
	s.api.SetToken("")
}

func (s *Store) clearStorage() {
	s.st.Delete(storage.KeyToken)
	s.st.Delete(storage.KeyUserData)
	s.st.Delete(storage.KeyRole)
}

func (s *Store) snapshot() State {
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

func (s *Store) notify() {
	s.mu.Lock()
	st := s.snapshot()
	subs := s.subs
	s.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- st:
		default:
		}
	}
}

// tokenExpired reports whether a JWT carries an exp claim in the past. The
// signature is not verified here; the backend is the authority and rejects
// bad tokens anyway. Opaque tokens hydrate as valid.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// loginErrorMessage prefers the most specific server message from the two
// login attempts.
func loginErrorMessage(primary, fallback error) string {
	var apiErr *client.APIError
	if errors.As(primary, &apiErr) {
		return apiErr.Message
	}
	if errors.As(fallback, &apiErr) {
		return apiErr.Message
	}
	return primary.Error()
}
