// ABOUTME: MCP resource handlers for exposing CRM data
// ABOUTME: Provides read-only access to clients, negotiations, products, and the dashboard via crm:// URIs
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ostwick/crm/crm"
)

type ResourceHandlers struct {
	state *crm.State
	now   func() time.Time
}

func NewResourceHandlers(state *crm.State) *ResourceHandlers {
	return &ResourceHandlers{state: state, now: time.Now}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(_ context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, "crm://") {
		return nil, fmt.Errorf("invalid URI scheme: expected crm://")
	}

	parts := strings.Split(strings.TrimPrefix(uri, "crm://"), "/")

	switch parts[0] {
	case "clients":
		if len(parts) == 1 {
			return jsonResource(uri, h.state.Clients())
		}
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid client ID: %w", err)
		}
		_, detail, err := NewClientHandlers(h.state).GetClient(context.Background(), nil, GetClientInput{ID: id})
		if err != nil {
			return nil, err
		}
		return jsonResource(uri, detail)

	case "negotiations":
		out := make([]NegotiationOutput, 0)
		for _, n := range h.state.Negotiations() {
			out = append(out, negotiationToOutput(h.state, n))
		}
		return jsonResource(uri, out)

	case "products":
		return jsonResource(uri, h.state.Products())

	case "dashboard":
		_, d, err := (&QueryHandlers{state: h.state, now: h.now}).Dashboard(context.Background(), nil, DashboardInput{})
		if err != nil {
			return nil, err
		}
		return jsonResource(uri, d)

	default:
		return nil, fmt.Errorf("unknown resource: %s", parts[0])
	}
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
