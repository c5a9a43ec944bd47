// ABOUTME: Overview and cross-entity query tool handlers
// ABOUTME: Implements the dashboard and query_crm tools
package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ostwick/crm/crm"
)

type QueryHandlers struct {
	state *crm.State
	now   func() time.Time
}

func NewQueryHandlers(state *crm.State) *QueryHandlers {
	return &QueryHandlers{state: state, now: time.Now}
}

type DashboardInput struct{}

type AppointmentOutput struct {
	ID         int64  `json:"id"`
	ClientID   int64  `json:"client_id"`
	ClientName string `json:"client_name"`
	Type       string `json:"type"`
	Date       string `json:"date"`
	Notes      string `json:"notes,omitempty"`
}

type DashboardOutput struct {
	TotalClients     int                 `json:"total_clients"`
	OpenNegotiations int                 `json:"open_negotiations"`
	WonRevenue       string              `json:"won_revenue"`
	Upcoming         []AppointmentOutput `json:"upcoming"`
}

func (h *QueryHandlers) Dashboard(_ context.Context, _ *mcp.CallToolRequest, _ DashboardInput) (*mcp.CallToolResult, DashboardOutput, error) {
	d := h.state.Dashboard(h.now())

	out := DashboardOutput{
		TotalClients:     d.TotalClients,
		OpenNegotiations: d.OpenNegotiations,
		WonRevenue:       d.WonRevenue.StringFixed(2),
		Upcoming:         make([]AppointmentOutput, len(d.Upcoming)),
	}
	for i, a := range d.Upcoming {
		out.Upcoming[i] = AppointmentOutput{
			ID:         a.ID,
			ClientID:   a.ClientID,
			ClientName: a.ClientName,
			Type:       string(a.Type),
			Date:       a.Date,
			Notes:      a.Notes,
		}
	}
	return nil, out, nil
}

type QueryCRMInput struct {
	EntityType string `json:"entity_type" jsonschema:"Type of entity to query (client, contact, schedule, negotiation, product)"`
	Query      string `json:"query,omitempty" jsonschema:"Case-insensitive text search over names, emails, descriptions, and notes"`
	ClientID   int64  `json:"client_id,omitempty" jsonschema:"Only return records owned by this client"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Maximum results to return (default 10)"`
}

type QueryCRMOutput struct {
	EntityType string `json:"entity_type"`
	Results    []any  `json:"results"`
	Count      int    `json:"count"`
}

func (h *QueryHandlers) QueryCRM(_ context.Context, _ *mcp.CallToolRequest, input QueryCRMInput) (*mcp.CallToolResult, QueryCRMOutput, error) {
	// Set default limit
	if input.Limit <= 0 {
		input.Limit = 10
	}
	q := strings.ToLower(strings.TrimSpace(input.Query))
	match := func(fields ...string) bool {
		if q == "" {
			return true
		}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), q) {
				return true
			}
		}
		return false
	}
	owned := func(clientID int64) bool {
		return input.ClientID == 0 || input.ClientID == clientID
	}

	var results []any
	switch input.EntityType {
	case "client":
		for _, c := range h.state.Clients() {
			if owned(c.ID) && match(c.Name, c.Email, c.Document) {
				results = append(results, clientToOutput(c))
			}
		}
	case "contact":
		for _, c := range h.state.Contacts() {
			if owned(c.ClientID) && match(c.Name, c.Email, c.Role) {
				results = append(results, contactToOutput(c))
			}
		}
	case "schedule":
		for _, s := range h.state.Schedules() {
			if owned(s.ClientID) && match(s.Notes, string(s.Type)) {
				results = append(results, scheduleToOutput(s))
			}
		}
	case "negotiation":
		for _, n := range h.state.Negotiations() {
			if owned(n.ClientID) && match(n.Description, string(n.Status)) {
				results = append(results, negotiationToOutput(h.state, n))
			}
		}
	case "product":
		for _, p := range h.state.Products() {
			if match(p.Name, p.ID) {
				results = append(results, productToOutput(p))
			}
		}
	default:
		return nil, QueryCRMOutput{}, fmt.Errorf("invalid entity_type: %s (valid: client, contact, schedule, negotiation, product)", input.EntityType)
	}

	if len(results) > input.Limit {
		results = results[:input.Limit]
	}
	if results == nil {
		results = []any{}
	}
	return nil, QueryCRMOutput{EntityType: input.EntityType, Results: results, Count: len(results)}, nil
}
