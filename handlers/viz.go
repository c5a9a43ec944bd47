// ABOUTME: GraphViz visualization MCP handlers
// ABOUTME: Provides the generate_graph tool for agents
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ostwick/crm/crm"
	"github.com/ostwick/crm/viz"
)

type VizHandlers struct {
	state *crm.State
}

func NewVizHandlers(state *crm.State) *VizHandlers {
	return &VizHandlers{state: state}
}

type GenerateGraphInput struct {
	ClientID int64 `json:"client_id,omitempty" jsonschema:"Limit the graph to one client (0 for the whole portfolio)"`
}

type GenerateGraphOutput struct {
	DOTSource string `json:"dot_source"`
	NodeCount int    `json:"node_count"`
	EdgeCount int    `json:"edge_count"`
}

func (h *VizHandlers) GenerateGraph(_ context.Context, _ *mcp.CallToolRequest, input GenerateGraphInput) (*mcp.CallToolResult, GenerateGraphOutput, error) {
	var clientID *int64
	if input.ClientID != 0 {
		clientID = &input.ClientID
	}

	dot, err := viz.NewGraphGenerator(h.state).GeneratePortfolioGraph(clientID)
	if err != nil {
		return nil, GenerateGraphOutput{}, fmt.Errorf("failed to generate graph: %w", err)
	}

	nodeCount, edgeCount := countStatements(dot)
	return nil, GenerateGraphOutput{
		DOTSource: dot,
		NodeCount: nodeCount,
		EdgeCount: edgeCount,
	}, nil
}

// countStatements counts node and edge statements in DOT source. Node names
// carry an entity prefix, which keeps graph-level attributes out of the count.
func countStatements(dot string) (nodes, edges int) {
	for _, line := range strings.Split(dot, "\n") {
		line = strings.TrimLeft(strings.TrimSpace(line), `"`)
		if strings.Contains(line, "->") {
			edges++
			continue
		}
		for _, prefix := range []string{"client_", "contact_", "negotiation_", "product_"} {
			if strings.HasPrefix(line, prefix) {
				nodes++
				break
			}
		}
	}
	return nodes, edges
}
