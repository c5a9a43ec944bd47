// ABOUTME: Visualization CLI commands
// ABOUTME: Writes the portfolio graph as DOT source
package cli

import (
	"flag"
	"os"

	"github.com/ostwick/crm/crm"
	"github.com/ostwick/crm/viz"
)

// VizGraphCommand generates the client portfolio graph.
func VizGraphCommand(state *crm.State, args []string) error {
	fs := flag.NewFlagSet("viz graph", flag.ExitOnError)
	client := fs.Int64("client", 0, "Only graph this client")
	output := fs.String("output", "", "Output file (default: stdout)")
	_ = fs.Parse(args)

	var clientID *int64
	if *client != 0 {
		clientID = client
	}

	dot, err := viz.NewGraphGenerator(state).GeneratePortfolioGraph(clientID)
	if err != nil {
		return err
	}

	if *output != "" {
		return os.WriteFile(*output, []byte(dot), 0644)
	}

	outln(dot)
	return nil
}
