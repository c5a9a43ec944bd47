// ABOUTME: Typed load/save adapter over a Backend
// ABOUTME: Missing or corrupt values fall back to the caller default; writes are serialized per key
package kv

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Fixed keys, one per collection plus display preferences.
const (
	KeyClients             = "clients"
	KeyContacts            = "contacts"
	KeySchedules           = "schedules"
	KeyNegotiations        = "negotiations"
	KeyProducts            = "products"
	KeyNegotiationProducts = "negotiationProducts"
	KeyDarkMode            = "darkMode"
	KeyLanguage            = "language"
)

// Keys lists every key the application reads or writes.
var Keys = []string{
	KeyClients,
	KeyContacts,
	KeySchedules,
	KeyNegotiations,
	KeyProducts,
	KeyNegotiationProducts,
	KeyDarkMode,
	KeyLanguage,
}

// Store persists JSON-encoded values under string keys.
type Store struct {
	backend Backend
	log     zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore(backend Backend, log zerolog.Logger) *Store {
	return &Store{
		backend: backend,
		log:     log,
		locks:   make(map[string]*sync.Mutex),
	}
}

// Backend returns the underlying byte store.
func (s *Store) Backend() Backend {
	return s.backend
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) keyLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// Raw returns the stored bytes for key, or ErrNotFound.
func (s *Store) Raw(key string) ([]byte, error) {
	return s.backend.Get([]byte(key))
}

// SetRaw stores pre-encoded bytes under key.
func (s *Store) SetRaw(key string, value []byte) error {
	l := s.keyLock(key)
	l.Lock()
	defer l.Unlock()
	return s.backend.Set([]byte(key), value)
}

// Has reports whether key has a stored value.
func (s *Store) Has(key string) (bool, error) {
	_, err := s.backend.Get([]byte(key))
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Load decodes the value stored under key. A missing key or a value that
// does not decode returns def; decode failures are logged, never returned.
// Backend read failures are returned alongside def.
func Load[T any](s *Store, key string, def T) (T, error) {
	data, err := s.backend.Get([]byte(key))
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("failed to read %s: %w", key, err)
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("stored value is corrupt, using default")
		return def, nil
	}
	return value, nil
}

// Save encodes value as JSON and stores it under key.
func Save[T any](s *Store, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	l := s.keyLock(key)
	l.Lock()
	defer l.Unlock()

	if err := s.backend.Set([]byte(key), data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
