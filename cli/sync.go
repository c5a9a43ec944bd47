// ABOUTME: CLI commands for store sync
// ABOUTME: Charm-backed stores replicate through SSH key auth; local backends have nothing to sync
package cli

import (
	"flag"
	"fmt"

	"github.com/ostwick/crm/config"
	"github.com/ostwick/crm/kv"
)

// SyncStatusCommand shows the configured backend and, for charm, the linked account.
func SyncStatusCommand(cfg *config.Config, store *kv.Store, args []string) error {
	fs := flag.NewFlagSet("sync status", flag.ExitOnError)
	_ = fs.Parse(args)

	outln("Sync Status")
	outln("───────────")
	outf("Backend:   %s\n", cfg.Backend)
	outf("Data dir:  %s\n", cfg.DataDir)

	if keys, err := store.Backend().Keys(); err == nil {
		outf("Keys:      %d\n", len(keys))
	}

	if cfg.Backend != kv.KindCharm {
		outln("\nStatus: Local only")
		outf("Set CRM_BACKEND=%s to sync through %s.\n", kv.KindCharm, cfg.CharmHost)
		return nil
	}

	outf("Server:    %s\n", cfg.CharmHost)
	outf("Auto-sync: %v\n", cfg.AutoSync)

	id, err := kv.CharmID()
	if err != nil {
		outln("\nStatus: Connected (ID unavailable)")
	} else {
		outln("\nStatus: Connected to Charm Cloud")
		outf("ID:        %s\n", id)
	}

	outln("\nCharm uses SSH keys for authentication - no login required!")
	return nil
}

// SyncNowCommand performs an immediate sync.
func SyncNowCommand(store *kv.Store, args []string) error {
	fs := flag.NewFlagSet("sync now", flag.ExitOnError)
	verbose := fs.Bool("verbose", false, "Show verbose output")
	_ = fs.Parse(args)

	if *verbose {
		outln("Syncing with server...")
	}

	if err := store.Backend().Sync(); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	if *verbose {
		outln("✓ Sync complete")
	} else {
		outln("✓ Synced")
	}
	return nil
}
