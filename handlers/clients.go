// ABOUTME: Client MCP tool handlers
// ABOUTME: Implements add_client, find_clients, get_client, update_client, and delete_client tools
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ostwick/crm/crm"
	"github.com/ostwick/crm/models"
)

type ClientHandlers struct {
	state *crm.State
}

func NewClientHandlers(state *crm.State) *ClientHandlers {
	return &ClientHandlers{state: state}
}

type ClientInput struct {
	Name     string `json:"name" jsonschema:"Client name (required)"`
	Document string `json:"document,omitempty" jsonschema:"Tax or registration document number"`
	Address  string `json:"address,omitempty" jsonschema:"Street address"`
	Number   string `json:"number,omitempty" jsonschema:"Street number"`
	Email    string `json:"email" jsonschema:"Contact email address (required)"`
	Phone    string `json:"phone,omitempty" jsonschema:"Phone number"`
}

func (in ClientInput) toModel(id int64) models.Client {
	return models.Client{
		ID:       id,
		Name:     in.Name,
		Document: in.Document,
		Address:  in.Address,
		Number:   in.Number,
		Email:    in.Email,
		Phone:    in.Phone,
	}
}

type ClientOutput struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Document string `json:"document,omitempty"`
	Address  string `json:"address,omitempty"`
	Number   string `json:"number,omitempty"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

func clientToOutput(c models.Client) ClientOutput {
	return ClientOutput{
		ID:       c.ID,
		Name:     c.Name,
		Document: c.Document,
		Address:  c.Address,
		Number:   c.Number,
		Email:    c.Email,
		Phone:    c.Phone,
	}
}

func (h *ClientHandlers) AddClient(_ context.Context, _ *mcp.CallToolRequest, input ClientInput) (*mcp.CallToolResult, ClientOutput, error) {
	client, err := h.state.AddClient(input.toModel(0))
	if err != nil {
		return nil, ClientOutput{}, fmt.Errorf("failed to add client: %w", err)
	}
	return nil, clientToOutput(client), nil
}

type FindClientsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Search query (matches name, email, or document)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type FindClientsOutput struct {
	Clients []ClientOutput `json:"clients"`
}

func (h *ClientHandlers) FindClients(_ context.Context, _ *mcp.CallToolRequest, input FindClientsInput) (*mcp.CallToolResult, FindClientsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	clients := h.state.FindClients(clientMatcher(input.Query))
	if len(clients) > limit {
		clients = clients[:limit]
	}

	result := make([]ClientOutput, len(clients))
	for i, c := range clients {
		result[i] = clientToOutput(c)
	}
	return nil, FindClientsOutput{Clients: result}, nil
}

func clientMatcher(query string) func(models.Client) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	return func(c models.Client) bool {
		if q == "" {
			return true
		}
		return strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Email), q) ||
			strings.Contains(strings.ToLower(c.Document), q)
	}
}

type GetClientInput struct {
	ID int64 `json:"id" jsonschema:"Client ID (required)"`
}

type ClientDetailOutput struct {
	Client       ClientOutput        `json:"client"`
	Contacts     []ContactOutput     `json:"contacts"`
	Schedules    []ScheduleOutput    `json:"schedules"`
	Negotiations []NegotiationOutput `json:"negotiations"`
}

func (h *ClientHandlers) GetClient(_ context.Context, _ *mcp.CallToolRequest, input GetClientInput) (*mcp.CallToolResult, ClientDetailOutput, error) {
	client, ok := h.state.Client(input.ID)
	if !ok {
		return nil, ClientDetailOutput{}, fmt.Errorf("client %d not found", input.ID)
	}

	out := ClientDetailOutput{
		Client:       clientToOutput(client),
		Contacts:     []ContactOutput{},
		Schedules:    []ScheduleOutput{},
		Negotiations: []NegotiationOutput{},
	}
	for _, c := range h.state.ContactsFor(client.ID) {
		out.Contacts = append(out.Contacts, contactToOutput(c))
	}
	for _, s := range h.state.SchedulesFor(client.ID) {
		out.Schedules = append(out.Schedules, scheduleToOutput(s))
	}
	for _, n := range h.state.NegotiationsFor(client.ID) {
		out.Negotiations = append(out.Negotiations, negotiationToOutput(h.state, n))
	}
	return nil, out, nil
}

type UpdateClientInput struct {
	ID       int64  `json:"id" jsonschema:"Client ID (required)"`
	Name     string `json:"name" jsonschema:"Client name (required)"`
	Document string `json:"document,omitempty" jsonschema:"Tax or registration document number"`
	Address  string `json:"address,omitempty" jsonschema:"Street address"`
	Number   string `json:"number,omitempty" jsonschema:"Street number"`
	Email    string `json:"email" jsonschema:"Contact email address (required)"`
	Phone    string `json:"phone,omitempty" jsonschema:"Phone number"`
}

func (in UpdateClientInput) toModel() models.Client {
	return ClientInput{
		Name:     in.Name,
		Document: in.Document,
		Address:  in.Address,
		Number:   in.Number,
		Email:    in.Email,
		Phone:    in.Phone,
	}.toModel(in.ID)
}

type UpdateOutput struct {
	Updated bool `json:"updated"`
}

func (h *ClientHandlers) UpdateClient(_ context.Context, _ *mcp.CallToolRequest, input UpdateClientInput) (*mcp.CallToolResult, UpdateOutput, error) {
	found, err := h.state.UpdateClient(input.toModel())
	if err != nil {
		return nil, UpdateOutput{}, fmt.Errorf("failed to update client: %w", err)
	}
	return nil, UpdateOutput{Updated: found}, nil
}

type DeleteClientInput struct {
	ID int64 `json:"id" jsonschema:"Client ID (required). Its contacts, schedules, negotiations, and line items are deleted too"`
}

type DeleteClientOutput struct {
	Deleted bool              `json:"deleted"`
	Removed crm.CascadeResult `json:"removed"`
}

func (h *ClientHandlers) DeleteClient(_ context.Context, _ *mcp.CallToolRequest, input DeleteClientInput) (*mcp.CallToolResult, DeleteClientOutput, error) {
	res, err := h.state.DeleteClient(input.ID)
	if err != nil {
		return nil, DeleteClientOutput{}, fmt.Errorf("failed to delete client: %w", err)
	}
	return nil, DeleteClientOutput{Deleted: res.Clients == 1, Removed: res}, nil
}
