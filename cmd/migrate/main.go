// ABOUTME: Imports a browser localStorage dump into the CRM store
// ABOUTME: Supports dry runs and refuses to overwrite existing keys without -force

package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/ostwick/crm/config"
	"github.com/ostwick/crm/crm"
	"github.com/ostwick/crm/kv"
	"github.com/ostwick/crm/logging"
	"github.com/rs/zerolog"
)

func main() {
	input := flag.String("input", "", "Path to the localStorage JSON dump (required)")
	dataDir := flag.String("data-dir", "", "Data directory (default: config)")
	backend := flag.String("backend", "", "Storage backend: badger, sqlite, or charm")
	dryRun := flag.Bool("dry-run", false, "Show what would happen without making changes")
	force := flag.Bool("force", false, "Overwrite keys that already hold data")
	flag.Parse()

	log, err := logging.New("info", os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *input == "" {
		log.Fatal().Msg("-input flag is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Override(*dataDir, *backend); err != nil {
		log.Fatal().Err(err).Msg("invalid flags")
	}

	dump, err := os.ReadFile(*input)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read dump")
	}

	b, err := kv.OpenBackend(cfg.StoreOptions())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	store := kv.NewStore(b, log)
	defer func() { _ = store.Close() }()

	report, err := migrate(store, dump, *dryRun, *force, log)
	if err != nil {
		log.Error().Err(err).Msg("migration failed")
		_ = store.Close()
		os.Exit(1)
	}

	log.Info().
		Strs("imported", report.Imported).
		Strs("skipped", report.Skipped).
		Bool("dry_run", *dryRun).
		Msg("migration completed successfully")
}

// report lists which dump keys were written and which were ignored.
type report struct {
	Imported []string
	Skipped  []string
}

// migrate writes every known key of a localStorage dump into store. Values
// may be stringified JSON, as localStorage holds them, or plain JSON.
func migrate(store *kv.Store, dump []byte, dryRun, force bool, log zerolog.Logger) (report, error) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(dump, &entries); err != nil {
		return report{}, fmt.Errorf("dump is not a JSON object: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := map[string][]byte{}
	var rep report
	for _, key := range keys {
		if !slices.Contains(kv.Keys, key) {
			log.Warn().Str("key", key).Msg("skipping unknown key")
			rep.Skipped = append(rep.Skipped, key)
			continue
		}
		value, err := unwrap(entries[key])
		if err != nil {
			return report{}, fmt.Errorf("key %s: %w", key, err)
		}
		if key != kv.KeyDarkMode && key != kv.KeyLanguage && value[0] != '[' {
			return report{}, fmt.Errorf("key %s: collection is not a JSON array", key)
		}
		values[key] = value
	}

	var existing []string
	for key := range values {
		has, err := store.Has(key)
		if err != nil {
			return report{}, fmt.Errorf("failed to check %s: %w", key, err)
		}
		if has {
			existing = append(existing, key)
		}
	}
	sort.Strings(existing)
	if len(existing) > 0 && !force {
		log.Warn().Strs("keys", existing).Msg("store already holds data; use -force to overwrite")
		return report{}, fmt.Errorf("migration requires -force flag to overwrite %v", existing)
	}

	for _, key := range keys {
		value, ok := values[key]
		if !ok {
			continue
		}
		if dryRun {
			log.Info().Str("key", key).Int("bytes", len(value)).Msg("[DRY RUN] would import")
		} else if err := store.SetRaw(key, value); err != nil {
			return report{}, fmt.Errorf("failed to write %s: %w", key, err)
		}
		rep.Imported = append(rep.Imported, key)
	}

	if dryRun {
		return rep, nil
	}

	state := crm.New(store, crm.WithLogger(log))
	if err := state.Load(); err != nil {
		return rep, fmt.Errorf("imported data does not load: %w", err)
	}
	log.Info().
		Int("clients", len(state.Clients())).
		Int("contacts", len(state.Contacts())).
		Int("schedules", len(state.Schedules())).
		Int("negotiations", len(state.Negotiations())).
		Int("products", len(state.Products())).
		Int("line_items", len(state.LineItems())).
		Msg("store loaded")

	return rep, nil
}

// unwrap returns the JSON document held by a dump value. A string value
// holding a JSON document is unquoted; any other string is itself the
// document.
func unwrap(raw json.RawMessage) ([]byte, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		if inner := bytes.TrimSpace([]byte(s)); json.Valid(inner) {
			return inner, nil
		}
		return raw, nil
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("value is not valid JSON")
	}
	return raw, nil
}
