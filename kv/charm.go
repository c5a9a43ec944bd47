// ABOUTME: Charm KV backend with automatic sync support
// ABOUTME: Lets the same store replicate across devices through a charm server
package kv

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
)

// CharmAppName names the charm KV database.
const CharmAppName = "crm"

// DefaultCharmHost is the self-hosted charm server used when none is configured.
const DefaultCharmHost = "charm.2389.dev"

type CharmBackend struct {
	kv       *kv.KV
	autoSync bool
	mu       sync.RWMutex
}

// OpenCharm opens the charm KV database, pulling remote changes first when
// autoSync is set.
func OpenCharm(host string, autoSync bool) (*CharmBackend, error) {
	if host == "" {
		host = DefaultCharmHost
	}

	// Set charm host before opening KV
	_ = os.Setenv("CHARM_HOST", host)

	db, err := kv.OpenWithDefaults(CharmAppName)
	if err != nil {
		return nil, fmt.Errorf("failed to open charm kv: %w", err)
	}

	if autoSync {
		_ = db.Sync()
	}

	return &CharmBackend{kv: db, autoSync: autoSync}, nil
}

// CharmID returns the charm account id linked to this device.
func CharmID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.ID()
}

func (c *CharmBackend) Get(key []byte) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, err := c.kv.Get(key)
	if err != nil {
		// charm surfaces badger's not-found error unchanged
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (c *CharmBackend) Set(key, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Set(key, value); err != nil {
		return err
	}

	// Sync while still holding lock to avoid race condition
	if c.autoSync {
		_ = c.kv.Sync()
	}
	return nil
}

func (c *CharmBackend) Delete(key []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Delete(key); err != nil {
		return err
	}

	if c.autoSync {
		_ = c.kv.Sync()
	}
	return nil
}

func (c *CharmBackend) Keys() ([][]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.kv.Keys()
}

func (c *CharmBackend) Sync() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Sync()
}

// Close is a no-op: charm/kv does not expose Close and its badger
// database is released on process exit.
func (c *CharmBackend) Close() error {
	return nil
}
