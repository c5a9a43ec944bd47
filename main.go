// ABOUTME: Entry point for the CRM CLI and MCP server
// ABOUTME: Loads config, opens the store, and routes to CLI commands
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ostwick/crm/cli"
	"github.com/ostwick/crm/config"
	"github.com/ostwick/crm/crm"
	"github.com/ostwick/crm/kv"
	"github.com/ostwick/crm/logging"
	"github.com/rs/zerolog"
)

const version = "0.2.0"

type command func(*crm.State, []string) error

var groups = map[string]map[string]command{
	"client": {
		"add":    cli.AddClientCommand,
		"list":   cli.ListClientsCommand,
		"show":   cli.ShowClientCommand,
		"update": cli.UpdateClientCommand,
		"delete": cli.DeleteClientCommand,
	},
	"contact": {
		"add":    cli.AddContactCommand,
		"list":   cli.ListContactsCommand,
		"update": cli.UpdateContactCommand,
		"delete": cli.DeleteContactCommand,
	},
	"schedule": {
		"add":    cli.AddScheduleCommand,
		"list":   cli.ListSchedulesCommand,
		"update": cli.UpdateScheduleCommand,
		"delete": cli.DeleteScheduleCommand,
	},
	"negotiation": {
		"add":    cli.AddNegotiationCommand,
		"list":   cli.ListNegotiationsCommand,
		"show":   cli.ShowNegotiationCommand,
		"update": cli.UpdateNegotiationCommand,
		"status": cli.SetNegotiationStatusCommand,
		"delete": cli.DeleteNegotiationCommand,
	},
	"product": {
		"add":    cli.AddProductCommand,
		"list":   cli.ListProductsCommand,
		"update": cli.UpdateProductCommand,
		"delete": cli.DeleteProductCommand,
	},
	"item": {
		"add":    cli.AddItemCommand,
		"remove": cli.RemoveItemCommand,
	},
	"viz": {
		"graph": cli.VizGraphCommand,
	},
}

var singles = map[string]command{
	"dashboard": cli.DashboardCommand,
	"prefs":     cli.PrefsCommand,
	"export":    cli.ExportCommand,
	"tui":       cli.TUICommand,
}

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dataDir := flag.String("data-dir", "", "Data directory (default: ~/.local/share/crm)")
	backend := flag.String("backend", "", "Storage backend: badger, sqlite, or charm")
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("crm version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Override(*dataDir, *backend); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	base, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger, _ := logging.WithSession(base)

	if err := run(cfg, logger, args); err != nil {
		logger.Error().Err(err).Str("command", args[0]).Msg("command failed")
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger zerolog.Logger, args []string) error {
	name, rest := args[0], args[1:]

	var cmd command
	switch {
	case name == "mcp" || name == "sync" || name == "web":
	case singles[name] != nil:
		cmd = singles[name]
	case groups[name] != nil:
		if len(rest) == 0 {
			printUsage()
			return fmt.Errorf("%s requires a subcommand", name)
		}
		cmd = groups[name][rest[0]]
		if cmd == nil {
			printUsage()
			return fmt.Errorf("unknown %s command: %s", name, rest[0])
		}
		rest = rest[1:]
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", name)
	}

	backend, err := kv.OpenBackend(cfg.StoreOptions())
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Backend, err)
	}
	store := kv.NewStore(backend, logger)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close store")
		}
	}()
	logger.Debug().Str("data_dir", cfg.DataDir).Str("backend", cfg.Backend).Msg("store opened")

	if name == "sync" {
		return runSync(cfg, store, rest)
	}

	state := crm.New(store, crm.WithLogger(logger), crm.WithSeed(cfg.Seed))
	if err := state.Load(); err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	if name == "mcp" {
		logger.Info().Str("data_dir", cfg.DataDir).Str("backend", cfg.Backend).Msg("serving MCP on stdio")
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return cli.MCPCommand(ctx, state, version, logger)
	}
	if name == "web" {
		return cli.WebCommand(state, logger, rest)
	}

	return cmd(state, rest)
}

func runSync(cfg *config.Config, store *kv.Store, args []string) error {
	if len(args) == 0 {
		return cli.SyncStatusCommand(cfg, store, nil)
	}
	switch args[0] {
	case "status":
		return cli.SyncStatusCommand(cfg, store, args[1:])
	case "now":
		return cli.SyncNowCommand(store, args[1:])
	default:
		printUsage()
		return fmt.Errorf("unknown sync command: %s", args[0])
	}
}

func printUsage() {
	fmt.Printf(`crm v%s - client, negotiation, and appointment tracker

USAGE:
  crm [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --data-dir <path>      Data directory (default: ~/.local/share/crm, env CRM_DATA_DIR)
  --backend <kind>       badger, sqlite, or charm (env CRM_BACKEND)

CLIENTS:
  crm client add --name <name> --email <email> [--document] [--address] [--number] [--phone]
  crm client list [--query <text>] [--limit <n>]
  crm client show <id>
  crm client update [flags] <id>     Note: flags must come before the ID
  crm client delete <id>             Also deletes its contacts, schedules, and negotiations

CONTACTS AND SCHEDULES:
  crm contact add --client <id> --name <name> --email <email> [--role] [--phone]
  crm contact list [--client <id>]
  crm contact update [--client] [--name] [--role] [--phone] [--email] <id>
  crm contact delete <id>
  crm schedule add --client <id> --date <RFC3339> [--type LOCAL_VISIT|VIDEO_CONFERENCE|PHONE_CALL] [--notes]
  crm schedule list [--client <id>]
  crm schedule update [--client] [--type] [--date] [--notes] <id>
  crm schedule delete <id>

NEGOTIATIONS:
  crm negotiation add --client <id> [--description] [--status OPEN|WON|LOST]
  crm negotiation list [--client <id>] [--status <status>]
  crm negotiation show <id>
  crm negotiation update [--client] [--description] [--status] <id>
  crm negotiation status <id> <OPEN|WON|LOST>
  crm negotiation delete <id>
  crm item add --negotiation <id> --product <id> [--quantity <n>] [--discount <amount>]
  crm item remove <item-id>

PRODUCTS:
  crm product add --name <name> --price <amount>
  crm product list
  crm product update [--name] [--price] <id>
  crm product delete <id>

OVERVIEW:
  crm dashboard [--language en|pt-br]
  crm export [--out <dir>] <all|clients|contacts|schedules|negotiations|negotiation_products|products>
  crm viz graph [--client <id>] [--output <file>]
  crm prefs [--dark] [--language en|pt-br]
  crm tui                Browse and delete records in a full-screen terminal UI
  crm web [--port 8080]  Serve a read-only web dashboard

SYNC:
  crm sync status        Show backend and charm account
  crm sync now           Push and pull charm changes

MCP SERVER:
  crm mcp                Start MCP server on stdio
`, version)
}
