// ABOUTME: BadgerDB-backed key-value store
// ABOUTME: Default local backend; in-memory mode is used by tests
package kv

import (
	"errors"
	"os"

	"github.com/dgraph-io/badger/v3"
)

type BadgerBackend struct {
	db       *badger.DB
	inMemory bool
}

// OpenBadger opens (or creates) a badger database in dir.
func OpenBadger(dir string) (*BadgerBackend, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(dir).
		WithLogger(nil) // badger logs are noise for a CLI
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerBackend{db: db}, nil
}

// OpenBadgerInMemory opens a badger database that lives only in memory.
func OpenBadgerInMemory() (*BadgerBackend, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerBackend{db: db, inMemory: true}, nil
}

func (b *BadgerBackend) Get(key []byte) ([]byte, error) {
	var result []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		result, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return result, err
}

func (b *BadgerBackend) Set(key, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (b *BadgerBackend) Delete(key []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

func (b *BadgerBackend) Keys() ([][]byte, error) {
	var keys [][]byte
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	return keys, err
}

// Sync flushes writes to disk.
func (b *BadgerBackend) Sync() error {
	if b.inMemory {
		return nil
	}
	return b.db.Sync()
}

func (b *BadgerBackend) Close() error {
	return b.db.Close()
}
