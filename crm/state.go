// ABOUTME: Application state holding the six CRM collections
// ABOUTME: Mutations run as transactions on cloned collections and persist the keys they touch
package crm

import (
	"fmt"
	"sync"
	"time"

	"github.com/ostwick/crm/kv"
	"github.com/ostwick/crm/models"
	"github.com/rs/zerolog"
)

type collections struct {
	clients      *Repository[int64, models.Client]
	contacts     *Repository[int64, models.Contact]
	schedules    *Repository[int64, models.Schedule]
	negotiations *Repository[int64, models.Negotiation]
	products     *Repository[string, models.Product]
	lineItems    *Repository[string, models.NegotiationLineItem]
}

func (c *collections) clone() *collections {
	return &collections{
		clients:      c.clients.clone(),
		contacts:     c.contacts.clone(),
		schedules:    c.schedules.clone(),
		negotiations: c.negotiations.clone(),
		products:     c.products.clone(),
		lineItems:    c.lineItems.clone(),
	}
}

// tx is a unit of work over cloned collections. Nothing it does is visible
// until State.mutate swaps it in.
type tx struct {
	*collections
	now   time.Time
	dirty map[string]bool
}

func (t *tx) touch(keys ...string) {
	for _, k := range keys {
		t.dirty[k] = true
	}
}

// persistOrder writes children before parents so a store interrupted
// mid-way never holds a child whose parent is already gone.
var persistOrder = []string{
	kv.KeyNegotiationProducts,
	kv.KeyNegotiations,
	kv.KeySchedules,
	kv.KeyContacts,
	kv.KeyClients,
	kv.KeyProducts,
}

// State is the explicit application state passed to every surface (CLI,
// MCP handlers, views). It is safe for concurrent use.
type State struct {
	mu    sync.RWMutex
	data  *collections
	prefs models.Preferences

	store *kv.Store
	log   zerolog.Logger
	clock func() time.Time
	seed  bool
}

type Option func(*State)

// WithClock overrides the time source used for createdAt and seed dates.
func WithClock(clock func() time.Time) Option {
	return func(s *State) { s.clock = clock }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *State) { s.log = log }
}

// WithSeed fills collections missing from the store with demo data on Load.
func WithSeed(seed bool) Option {
	return func(s *State) { s.seed = seed }
}

// New builds an empty state. A nil store keeps everything in memory.
func New(store *kv.Store, opts ...Option) *State {
	s := &State{
		data: &collections{
			clients:      NewRepository[int64, models.Client](&IntSequence{}),
			contacts:     NewRepository[int64, models.Contact](&IntSequence{}),
			schedules:    NewRepository[int64, models.Schedule](&IntSequence{}),
			negotiations: NewRepository[int64, models.Negotiation](&IntSequence{}),
			products:     NewRepository[string, models.Product](NewULIDSource("prod-")),
			lineItems:    NewRepository[string, models.NegotiationLineItem](NewULIDSource("")),
		},
		prefs:       models.Preferences{Language: models.LanguageEnglish},
		store:       store,
		log:         zerolog.Nop(),
		clock:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads every collection and the preferences from the store. Missing
// keys load as empty collections, or as demo data when seeding is on.
func (s *State) Load() error {
	if s.store == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var seed demoData
	if s.seed {
		seed = newDemoData(s.clock())
	}
	dirty := map[string]bool{}

	if err := loadInto(s, kv.KeyClients, s.data.clients, seed.clients, dirty); err != nil {
		return err
	}
	if err := loadInto(s, kv.KeyContacts, s.data.contacts, seed.contacts, dirty); err != nil {
		return err
	}
	if err := loadInto(s, kv.KeySchedules, s.data.schedules, seed.schedules, dirty); err != nil {
		return err
	}
	if err := loadInto(s, kv.KeyNegotiations, s.data.negotiations, seed.negotiations, dirty); err != nil {
		return err
	}
	if err := loadInto(s, kv.KeyProducts, s.data.products, seed.products, dirty); err != nil {
		return err
	}
	if err := loadInto(s, kv.KeyNegotiationProducts, s.data.lineItems, seed.lineItems, dirty); err != nil {
		return err
	}

	dark, err := kv.Load(s.store, kv.KeyDarkMode, false)
	if err != nil {
		return err
	}
	lang, err := kv.Load(s.store, kv.KeyLanguage, models.LanguageEnglish)
	if err != nil {
		return err
	}
	s.prefs = models.Preferences{DarkMode: dark, Language: lang}

	if len(dirty) > 0 {
		s.log.Info().Int("collections", len(dirty)).Msg("seeded demo data")
	}
	return s.persist(s.data, dirty)
}

func loadInto[K comparable, T Keyed[K, T]](s *State, key string, repo *Repository[K, T], seed []T, dirty map[string]bool) error {
	if s.seed {
		ok, err := s.store.Has(key)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", key, err)
		}
		if !ok {
			repo.Reset(seed)
			dirty[key] = true
			return nil
		}
	}

	items, err := kv.Load(s.store, key, []T{})
	if err != nil {
		return err
	}
	repo.Reset(items)
	return nil
}

// mutate runs fn against a copy of the collections. If fn or the write of
// the touched keys fails nothing changes; otherwise the copy replaces the
// live collections in one step.
func (s *State) mutate(fn func(t *tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &tx{collections: s.data.clone(), now: s.clock(), dirty: map[string]bool{}}
	if err := fn(t); err != nil {
		return err
	}
	if err := s.persist(t.collections, t.dirty); err != nil {
		// Keys written before the failure are put back to the live state.
		if rerr := s.persist(s.data, t.dirty); rerr != nil {
			s.log.Error().Err(rerr).Msg("failed to restore store after write error")
		}
		return err
	}
	s.data = t.collections
	return nil
}

func (s *State) persist(c *collections, dirty map[string]bool) error {
	if s.store == nil {
		return nil
	}
	for _, key := range persistOrder {
		if !dirty[key] {
			continue
		}
		var err error
		switch key {
		case kv.KeyClients:
			err = kv.Save(s.store, key, c.clients.All())
		case kv.KeyContacts:
			err = kv.Save(s.store, key, c.contacts.All())
		case kv.KeySchedules:
			err = kv.Save(s.store, key, c.schedules.All())
		case kv.KeyNegotiations:
			err = kv.Save(s.store, key, c.negotiations.All())
		case kv.KeyProducts:
			err = kv.Save(s.store, key, c.products.All())
		case kv.KeyNegotiationProducts:
			err = kv.Save(s.store, key, c.lineItems.All())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// read runs fn under the read lock.
func (s *State) read(fn func(c *collections)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

// Preferences returns the stored display preferences.
func (s *State) Preferences() models.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// SetPreferences stores display preferences. Unknown languages are rejected.
func (s *State) SetPreferences(p models.Preferences) error {
	if p.Language != models.LanguageEnglish && p.Language != models.LanguagePortuguese {
		return &ValidationError{Entity: "preferences", Fields: []string{"language"}}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store != nil {
		if err := kv.Save(s.store, kv.KeyDarkMode, p.DarkMode); err != nil {
			return err
		}
		if err := kv.Save(s.store, kv.KeyLanguage, p.Language); err != nil {
			_ = kv.Save(s.store, kv.KeyDarkMode, s.prefs.DarkMode)
			return err
		}
	}
	s.prefs = p
	return nil
}
