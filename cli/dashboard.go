// ABOUTME: Dashboard, preferences, and export CLI commands
// ABOUTME: Renders the portfolio overview in the preferred language and writes xlsx exports
package cli

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ostwick/crm/crm"
	"github.com/ostwick/crm/export"
	"github.com/ostwick/crm/viz"
)

// now is the clock used by dashboard views.
var now = time.Now

// DashboardCommand prints total clients, open negotiations, won revenue,
// the pipeline, and upcoming appointments.
func DashboardCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
	lang := fs.String("language", "", "Override the preferred language (en, pt-br)")
	_ = fs.Parse(args)

	language := state.Preferences().Language
	if *lang != "" {
		language = *lang
	}

	stats := viz.GenerateDashboardStats(state, now())
	outln(viz.RenderDashboard(stats, viz.LabelsFor(language)))
	return nil
}

// PrefsCommand shows the display preferences, changing them when flags are given.
func PrefsCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("prefs", flag.ExitOnError)
	dark := fs.Bool("dark", false, "Enable dark mode")
	language := fs.String("language", "", "Language (en, pt-br)")
	_ = fs.Parse(args)

	prefs := state.Preferences()
	set := setFlags(fs)
	if len(set) > 0 {
		if set["dark"] {
			prefs.DarkMode = *dark
		}
		if set["language"] {
			prefs.Language = *language
		}
		if err := state.SetPreferences(prefs); err != nil {
			return fmt.Errorf("failed to save preferences: %w", err)
		}
		outln("✓ Preferences saved")
	}

	outf("Dark mode: %v\n", prefs.DarkMode)
	outf("Language:  %s\n", prefs.Language)
	return nil
}

// ExportCommand writes one collection, or all of them, as xlsx workbooks.
func ExportCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", ".", "Output directory")
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("collection is required: all or one of %v", export.Names())
	}
	if err := os.MkdirAll(*out, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var paths []string
	if name := fs.Arg(0); name == "all" {
		written, err := export.WriteAll(state, *out)
		if err != nil {
			return err
		}
		paths = written
	} else {
		path, err := export.WriteCollection(state, name, *out)
		if err != nil {
			return err
		}
		paths = []string{path}
	}

	for _, p := range paths {
		outf("✓ Exported %s\n", p)
	}
	return nil
}
