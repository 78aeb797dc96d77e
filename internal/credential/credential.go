// Package credential resolves and persists the news API key. Resolution
// order: build-time injected value, then environment, then the durable
// key/value store. Only the stored key is ever written.
package credential

import (
	"errors"
	"os"
	"strings"

	"github.com/matheuskafuri/newsdesk/internal/store"
)

// BuildKey can be injected at build time:
//
//	go build -ldflags "-X github.com/matheuskafuri/newsdesk/internal/credential.BuildKey=..."
//
// When set it overrides any stored key and suppresses the setup prompt.
var BuildKey string

// EnvKey names the environment override.
const EnvKey = "NEWSDESK_API_KEY"

const (
	storageKey   = "api_key"
	setupDoneKey = "setup_complete"
)

// ErrEmptyKey is returned by Set for blank input; nothing is written.
var ErrEmptyKey = errors.New("api key must not be empty")

// Storage is the durable key/value surface the credential persists to.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

type Store struct {
	storage Storage
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Get returns the active API key, preferring the build-time value, then the
// environment, then the stored one. ok is false when no source has a key.
func (s *Store) Get() (string, bool) {
	if BuildKey != "" {
		return BuildKey, true
	}
	if key := os.Getenv(EnvKey); key != "" {
		return key, true
	}
	key, err := s.storage.Get(storageKey)
	if err != nil || key == "" {
		return "", false
	}
	return key, true
}

// Set trims and persists the key, and marks setup complete. Empty input is
// rejected without touching storage.
func (s *Store) Set(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyKey
	}
	if err := s.storage.Set(storageKey, key); err != nil {
		return err
	}
	return s.storage.Set(setupDoneKey, "true")
}

// Clear removes the stored key. Build-time and environment values are
// unaffected.
func (s *Store) Clear() error {
	if err := s.storage.Delete(storageKey); err != nil {
		return err
	}
	return s.storage.Delete(setupDoneKey)
}

// SetupComplete reports whether a key was ever stored through Set, or a
// build-time/environment key makes setup unnecessary.
func (s *Store) SetupComplete() bool {
	if BuildKey != "" || os.Getenv(EnvKey) != "" {
		return true
	}
	done, err := s.storage.Get(setupDoneKey)
	return err == nil && done == "true"
}

var _ Storage = (*store.Store)(nil)
