// ABOUTME: Tests for the key-value backends and typed store adapter
// ABOUTME: Runs the same checks against in-memory badger and sqlite backends
package kv

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func testBackends(t *testing.T) map[string]Backend {
	t.Helper()

	b, err := OpenBadgerInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return map[string]Backend{"badger": b, "sqlite": s}
}

func TestBackendGetSetDelete(t *testing.T) {
	for name, backend := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := backend.Get([]byte("missing"))
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, backend.Set([]byte("a"), []byte("1")))
			require.NoError(t, backend.Set([]byte("a"), []byte("2")))
			value, err := backend.Get([]byte("a"))
			require.NoError(t, err)
			assert.Equal(t, []byte("2"), value)

			keys, err := backend.Keys()
			require.NoError(t, err)
			assert.Len(t, keys, 1)

			require.NoError(t, backend.Delete([]byte("a")))
			_, err = backend.Get([]byte("a"))
			assert.ErrorIs(t, err, ErrNotFound)
			assert.NoError(t, backend.Sync())
		})
	}
}

func TestStoreRoundTripPreservesOrder(t *testing.T) {
	for name, backend := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			store := NewStore(backend, zerolog.Nop())
			in := []record{{ID: 3, Name: "c"}, {ID: 1, Name: "a"}, {ID: 2, Name: "b"}}

			require.NoError(t, Save(store, KeyClients, in))
			out, err := Load(store, KeyClients, []record{})
			require.NoError(t, err)
			assert.Equal(t, in, out)
		})
	}
}

func TestStoreMissingKeyReturnsDefault(t *testing.T) {
	backend, err := OpenBadgerInMemory()
	require.NoError(t, err)
	defer func() { _ = backend.Close() }()

	store := NewStore(backend, zerolog.Nop())
	def := []record{{ID: 1, Name: "seed"}}
	out, err := Load(store, KeyContacts, def)
	require.NoError(t, err)
	assert.Equal(t, def, out)

	dark, err := Load(store, KeyDarkMode, false)
	require.NoError(t, err)
	assert.False(t, dark)
}

func TestStoreCorruptValueFallsBackAndLogs(t *testing.T) {
	backend, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer func() { _ = backend.Close() }()

	var logs bytes.Buffer
	store := NewStore(backend, zerolog.New(&logs))
	require.NoError(t, store.SetRaw(KeySchedules, []byte(`[{"id":1,`)))

	out, err := Load(store, KeySchedules, []record{})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, logs.String(), `"key":"schedules"`)
	assert.Contains(t, logs.String(), "corrupt")
}

func TestStoreConcurrentSavesLeaveWholeSnapshot(t *testing.T) {
	backend, err := OpenBadgerInMemory()
	require.NoError(t, err)
	defer func() { _ = backend.Close() }()

	store := NewStore(backend, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			batch := make([]record, 50)
			for j := range batch {
				batch[j] = record{ID: int64(i), Name: fmt.Sprintf("w%d", i)}
			}
			assert.NoError(t, Save(store, KeyProducts, batch))
		}(i)
	}
	wg.Wait()

	var logs bytes.Buffer
	store.log = zerolog.New(&logs)
	out, err := Load(store, KeyProducts, []record(nil))
	require.NoError(t, err)
	require.Len(t, out, 50)
	for _, r := range out {
		assert.Equal(t, out[0].ID, r.ID, "snapshot mixes writers")
	}
	assert.Empty(t, logs.String())
}

func TestStoreHas(t *testing.T) {
	backend, err := OpenBadgerInMemory()
	require.NoError(t, err)
	defer func() { _ = backend.Close() }()

	store := NewStore(backend, zerolog.Nop())
	ok, err := store.Has(KeyLanguage)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, Save(store, KeyLanguage, "pt-br"))
	ok, err = store.Has(KeyLanguage)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOpenBackendOnDisk(t *testing.T) {
	dir := t.TempDir()

	b, err := OpenBackend(Options{Kind: KindSQLite, DataDir: dir})
	require.NoError(t, err)
	require.NoError(t, b.Set([]byte("k"), []byte("v")))
	require.NoError(t, b.Close())
	assert.FileExists(t, filepath.Join(dir, "crm.db"))

	b, err = OpenBackend(Options{Kind: KindBadger, DataDir: dir})
	require.NoError(t, err)
	require.NoError(t, b.Close())

	_, err = OpenBackend(Options{Kind: "floppy", DataDir: dir})
	assert.Error(t, err)
}
