// ABOUTME: Tests that a failed store write leaves memory and disk as they were
// ABOUTME: Wraps an in-memory badger backend so chosen keys refuse writes
package crm

import (
	"errors"
	"testing"
	"time"

	"github.com/ostwick/crm/kv"
	"github.com/ostwick/crm/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

// refusingBackend fails every Set for a key in refuse.
type refusingBackend struct {
	kv.Backend
	refuse map[string]bool
}

func (b *refusingBackend) Set(key, value []byte) error {
	if b.refuse[string(key)] {
		return errDiskFull
	}
	return b.Backend.Set(key, value)
}

func setupRefusingState(t *testing.T) (*State, *kv.Store, *refusingBackend) {
	t.Helper()
	inner, err := kv.OpenBadgerInMemory()
	require.NoError(t, err)
	backend := &refusingBackend{Backend: inner, refuse: map[string]bool{}}
	store := kv.NewStore(backend, zerolog.Nop())
	t.Cleanup(func() { _ = store.Close() })

	s := New(store, WithClock(func() time.Time { return testNow }))
	require.NoError(t, s.Load())
	return s, store, backend
}

func TestFailedWriteDoesNotApply(t *testing.T) {
	s, _, backend := setupRefusingState(t)
	backend.refuse[kv.KeyClients] = true

	_, err := s.AddClient(models.Client{Name: "Acme", Email: "hi@acme.com"})
	require.ErrorIs(t, err, errDiskFull)
	assert.Empty(t, s.Clients())

	backend.refuse[kv.KeyClients] = false
	c, err := s.AddClient(models.Client{Name: "Globex", Email: "hi@globex.com"})
	require.NoError(t, err)
	assert.Equal(t, []models.Client{c}, s.Clients())
}

func TestFailedCascadeRestoresWrittenKeys(t *testing.T) {
	s, store, backend := setupRefusingState(t)
	c := mustClient(t, s, "acme")
	_, err := s.AddContact(models.Contact{ClientID: c.ID, Name: "Ann", Email: "ann@acme"})
	require.NoError(t, err)
	_, err = s.AddNegotiation(models.Negotiation{ClientID: c.ID})
	require.NoError(t, err)

	contactsBefore, err := store.Raw(kv.KeyContacts)
	require.NoError(t, err)
	negotiationsBefore, err := store.Raw(kv.KeyNegotiations)
	require.NoError(t, err)

	// Clients are written last, after the children are already gone on disk.
	backend.refuse[kv.KeyClients] = true
	_, err = s.DeleteClient(c.ID)
	require.ErrorIs(t, err, errDiskFull)

	assert.Len(t, s.Clients(), 1)
	assert.Len(t, s.Contacts(), 1)
	assert.Len(t, s.Negotiations(), 1)

	contactsAfter, err := store.Raw(kv.KeyContacts)
	require.NoError(t, err)
	negotiationsAfter, err := store.Raw(kv.KeyNegotiations)
	require.NoError(t, err)
	assert.JSONEq(t, string(contactsBefore), string(contactsAfter))
	assert.JSONEq(t, string(negotiationsBefore), string(negotiationsAfter))
}

func TestFailedPreferencesWriteKeepsPrevious(t *testing.T) {
	s, _, backend := setupRefusingState(t)
	backend.refuse[kv.KeyLanguage] = true

	err := s.SetPreferences(models.Preferences{DarkMode: true, Language: models.LanguagePortuguese})
	require.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, models.Preferences{Language: models.LanguageEnglish}, s.Preferences())
}
