// ABOUTME: Interactive terminal and web UI commands
// ABOUTME: Starts the bubbletea browser or the read-only web dashboard
package cli

import (
	"flag"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ostwick/crm/crm"
	"github.com/ostwick/crm/tui"
	"github.com/ostwick/crm/web"
	"github.com/rs/zerolog"
)

// TUICommand opens the full-screen browser.
func TUICommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("tui", flag.ExitOnError)
	_ = fs.Parse(args)

	p := tea.NewProgram(tui.NewModel(state), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}

// WebCommand serves the web dashboard until interrupted.
func WebCommand(state *crm.State, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("web", flag.ExitOnError)
	port := fs.Int("port", 8080, "Port to listen on")
	_ = fs.Parse(args)

	server, err := web.NewServer(state, log)
	if err != nil {
		return err
	}
	return server.Start(*port)
}
