// ABOUTME: Local key/value persistence for session and cart state
// ABOUTME: One file per key under the XDG config directory, JSON-valued where needed

package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Well-known keys. cart keys are derived per identity via CartKey.
const (
	KeyToken    = "token"
	KeyUserData = "userData"
	KeyRole     = "role" // legacy format, token+role only
)

// CartKey returns the storage key for a cart identity.
func CartKey(identity string) string {
	return "cart_" + identity
}

// Store persists string-keyed values as files in a single directory.
type Store struct {
	dir string
}

// New creates a store rooted at dir. The directory is created lazily on the
// first write.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the backing directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(key string) string {
	// Keys are fixed names or cart_<id>; strip anything path-like just in case.
	key = strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, key)
}

// Get returns the raw value for key, or ok=false if the key is absent.
func (s *Store) Get(key string) (string, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Set writes the raw value for key, creating the directory if needed.
func (s *Store) Set(key, value string) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path(key), []byte(value), 0600)
}

// Delete removes a key. Removing an absent key is not an error.
func (s *Store) Delete(key string) {
	os.Remove(s.path(key))
}

// GetJSON unmarshals the value for key into v. A missing key returns
// ok=false. A malformed value is treated as absent: the corrupt entry is
// deleted and ok=false is returned, never an error.
func (s *Store) GetJSON(key string, v interface{}) bool {
	raw, ok := s.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		// Invalid JSON, start fresh
		s.Delete(key)
		return false
	}
	return true
}

// SetJSON marshals v and stores it under key.
func (s *Store) SetJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(key, string(data))
}
