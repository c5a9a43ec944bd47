// ABOUTME: Backend interface for the durable key-value store
// ABOUTME: Implemented by badger, sqlite, and charm-synced backends
package kv

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrNotFound is returned by Backend.Get for a key that was never written.
var ErrNotFound = errors.New("key not found")

// Backend is a byte-level key-value store.
type Backend interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Keys() ([][]byte, error)
	// Sync pushes and pulls remote changes. Local-only backends return nil.
	Sync() error
	Close() error
}

// Backend kinds accepted by Open.
const (
	KindBadger = "badger"
	KindSQLite = "sqlite"
	KindCharm  = "charm"
)

// Options selects and configures a backend.
type Options struct {
	Kind      string
	DataDir   string
	CharmHost string
	AutoSync  bool
}

// OpenBackend opens the backend named by opts.Kind under opts.DataDir.
func OpenBackend(opts Options) (Backend, error) {
	switch opts.Kind {
	case "", KindBadger:
		return OpenBadger(filepath.Join(opts.DataDir, "badger"))
	case KindSQLite:
		return OpenSQLite(filepath.Join(opts.DataDir, "crm.db"))
	case KindCharm:
		return OpenCharm(opts.CharmHost, opts.AutoSync)
	default:
		return nil, fmt.Errorf("unknown backend %q (valid: badger, sqlite, charm)", opts.Kind)
	}
}
