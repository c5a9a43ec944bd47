// ABOUTME: Shared helpers for CLI commands
// ABOUTME: Output writer, positional id parsing, and empty-field placeholders
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
)

// stdout receives all command output; tests swap it for a buffer.
var stdout io.Writer = os.Stdout

func outf(format string, a ...any) {
	_, _ = fmt.Fprintf(stdout, format, a...)
}

func outln(a ...any) {
	_, _ = fmt.Fprintln(stdout, a...)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
}

// argID reads the first positional argument as a numeric id.
func argID(fs *flag.FlagSet, what string) (int64, error) {
	if fs.NArg() < 1 {
		return 0, fmt.Errorf("%s ID is required", what)
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s ID: %w", what, err)
	}
	return id, nil
}

// argString reads the first positional argument verbatim.
func argString(fs *flag.FlagSet, what string) (string, error) {
	if fs.NArg() < 1 || fs.Arg(0) == "" {
		return "", fmt.Errorf("%s ID is required", what)
	}
	return fs.Arg(0), nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// setFlags reports which flags were given explicitly.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}
