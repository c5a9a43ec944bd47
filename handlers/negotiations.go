// ABOUTME: Negotiation and line item MCP tool handlers
// ABOUTME: Implements create, status change, delete, and product line item tools with computed totals
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ostwick/crm/crm"
	"github.com/ostwick/crm/models"
	"github.com/shopspring/decimal"
)

type NegotiationHandlers struct {
	state *crm.State
}

func NewNegotiationHandlers(state *crm.State) *NegotiationHandlers {
	return &NegotiationHandlers{state: state}
}

type AddNegotiationInput struct {
	ClientID    int64  `json:"client_id" jsonschema:"ID of the client being negotiated with (required)"`
	Status      string `json:"status,omitempty" jsonschema:"OPEN, WON, or LOST (default OPEN)"`
	Description string `json:"description,omitempty" jsonschema:"What is being negotiated"`
}

type NegotiationOutput struct {
	ID          int64  `json:"id"`
	ClientID    int64  `json:"client_id"`
	ClientName  string `json:"client_name"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	Total       string `json:"total"`
}

func negotiationToOutput(s *crm.State, n models.Negotiation) NegotiationOutput {
	return NegotiationOutput{
		ID:          n.ID,
		ClientID:    n.ClientID,
		ClientName:  s.ClientDisplayName(n.ClientID),
		Status:      string(n.Status),
		Description: n.Description,
		CreatedAt:   models.FormatTimestamp(n.CreatedAt),
		Total:       s.NegotiationTotal(n.ID).StringFixed(2),
	}
}

func (h *NegotiationHandlers) AddNegotiation(_ context.Context, _ *mcp.CallToolRequest, input AddNegotiationInput) (*mcp.CallToolResult, NegotiationOutput, error) {
	var status models.NegotiationStatus
	if input.Status != "" {
		status, _ = models.ParseNegotiationStatus(input.Status)
	}

	neg, err := h.state.AddNegotiation(models.Negotiation{
		ClientID:    input.ClientID,
		Status:      status,
		Description: input.Description,
	})
	if err != nil {
		return nil, NegotiationOutput{}, fmt.Errorf("failed to add negotiation: %w", err)
	}
	return nil, negotiationToOutput(h.state, neg), nil
}

type ListNegotiationsInput struct {
	ClientID int64  `json:"client_id,omitempty" jsonschema:"Only return negotiations of this client (0 for all)"`
	Status   string `json:"status,omitempty" jsonschema:"Filter by status: OPEN, WON, or LOST"`
}

type ListNegotiationsOutput struct {
	Negotiations []NegotiationOutput `json:"negotiations"`
}

func (h *NegotiationHandlers) ListNegotiations(_ context.Context, _ *mcp.CallToolRequest, input ListNegotiationsInput) (*mcp.CallToolResult, ListNegotiationsOutput, error) {
	negotiations := h.state.Negotiations()
	if input.ClientID != 0 {
		negotiations = h.state.NegotiationsFor(input.ClientID)
	}

	var status models.NegotiationStatus
	if input.Status != "" {
		var ok bool
		if status, ok = models.ParseNegotiationStatus(input.Status); !ok {
			return nil, ListNegotiationsOutput{}, fmt.Errorf("invalid status: %s (valid: OPEN, WON, LOST)", input.Status)
		}
	}

	result := []NegotiationOutput{}
	for _, n := range negotiations {
		if status != "" && n.Status != status {
			continue
		}
		result = append(result, negotiationToOutput(h.state, n))
	}
	return nil, ListNegotiationsOutput{Negotiations: result}, nil
}

type GetNegotiationInput struct {
	ID int64 `json:"id" jsonschema:"Negotiation ID (required)"`
}

type NegotiationDetailOutput struct {
	Negotiation NegotiationOutput `json:"negotiation"`
	LineItems   []LineItemOutput  `json:"line_items"`
}

func (h *NegotiationHandlers) GetNegotiation(_ context.Context, _ *mcp.CallToolRequest, input GetNegotiationInput) (*mcp.CallToolResult, NegotiationDetailOutput, error) {
	neg, ok := h.state.Negotiation(input.ID)
	if !ok {
		return nil, NegotiationDetailOutput{}, fmt.Errorf("negotiation %d not found", input.ID)
	}

	out := NegotiationDetailOutput{
		Negotiation: negotiationToOutput(h.state, neg),
		LineItems:   []LineItemOutput{},
	}
	for _, li := range h.state.LineItemsFor(neg.ID) {
		out.LineItems = append(out.LineItems, lineItemToOutput(li))
	}
	return nil, out, nil
}

type UpdateNegotiationInput struct {
	ID          int64  `json:"id" jsonschema:"Negotiation ID (required)"`
	ClientID    int64  `json:"client_id" jsonschema:"ID of the client being negotiated with (required)"`
	Status      string `json:"status,omitempty" jsonschema:"OPEN, WON, or LOST (unchanged when empty)"`
	Description string `json:"description,omitempty" jsonschema:"What is being negotiated"`
}

func (h *NegotiationHandlers) UpdateNegotiation(_ context.Context, _ *mcp.CallToolRequest, input UpdateNegotiationInput) (*mcp.CallToolResult, UpdateOutput, error) {
	var status models.NegotiationStatus
	if input.Status != "" {
		status, _ = models.ParseNegotiationStatus(input.Status)
	}

	found, err := h.state.UpdateNegotiation(models.Negotiation{
		ID:          input.ID,
		ClientID:    input.ClientID,
		Status:      status,
		Description: input.Description,
	})
	if err != nil {
		return nil, UpdateOutput{}, fmt.Errorf("failed to update negotiation: %w", err)
	}
	return nil, UpdateOutput{Updated: found}, nil
}

type SetStatusInput struct {
	ID     int64  `json:"id" jsonschema:"Negotiation ID (required)"`
	Status string `json:"status" jsonschema:"New status: OPEN, WON, or LOST (required)"`
}

func (h *NegotiationHandlers) SetStatus(_ context.Context, _ *mcp.CallToolRequest, input SetStatusInput) (*mcp.CallToolResult, UpdateOutput, error) {
	status, _ := models.ParseNegotiationStatus(input.Status)
	found, err := h.state.SetNegotiationStatus(input.ID, status)
	if err != nil {
		return nil, UpdateOutput{}, fmt.Errorf("failed to set status: %w", err)
	}
	return nil, UpdateOutput{Updated: found}, nil
}

type DeleteNegotiationOutput struct {
	Deleted          bool `json:"deleted"`
	LineItemsRemoved int  `json:"line_items_removed"`
}

func (h *NegotiationHandlers) DeleteNegotiation(_ context.Context, _ *mcp.CallToolRequest, input DeleteByIDInput) (*mcp.CallToolResult, DeleteNegotiationOutput, error) {
	found, removed, err := h.state.DeleteNegotiation(input.ID)
	if err != nil {
		return nil, DeleteNegotiationOutput{}, fmt.Errorf("failed to delete negotiation: %w", err)
	}
	return nil, DeleteNegotiationOutput{Deleted: found, LineItemsRemoved: removed}, nil
}

type AddLineItemInput struct {
	NegotiationID int64  `json:"negotiation_id" jsonschema:"Negotiation ID (required)"`
	ProductID     string `json:"product_id" jsonschema:"Product ID (required). Its current name and price are copied"`
	Quantity      int    `json:"quantity" jsonschema:"Quantity, at least 1 (required)"`
	Discount      string `json:"discount,omitempty" jsonschema:"Absolute discount for the line, e.g. 500 or 12.50 (default 0)"`
}

type LineItemOutput struct {
	ID            string `json:"id"`
	NegotiationID int64  `json:"negotiation_id"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	Quantity      int    `json:"quantity"`
	UnitPrice     string `json:"unit_price"`
	Discount      string `json:"discount"`
	Subtotal      string `json:"subtotal"`
}

func lineItemToOutput(li models.NegotiationLineItem) LineItemOutput {
	return LineItemOutput{
		ID:            li.ID,
		NegotiationID: li.NegotiationID,
		ProductID:     li.ProductID,
		ProductName:   li.ProductName,
		Quantity:      li.Quantity,
		UnitPrice:     li.UnitPrice.StringFixed(2),
		Discount:      li.Discount.StringFixed(2),
		Subtotal:      crm.LineItemSubtotal(li).StringFixed(2),
	}
}

func parseAmount(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	return d, nil
}

func (h *NegotiationHandlers) AddLineItem(_ context.Context, _ *mcp.CallToolRequest, input AddLineItemInput) (*mcp.CallToolResult, LineItemOutput, error) {
	discount, err := parseAmount("discount", input.Discount)
	if err != nil {
		return nil, LineItemOutput{}, err
	}

	li, err := h.state.AddLineItem(crm.LineItemInput{
		NegotiationID: input.NegotiationID,
		ProductID:     input.ProductID,
		Quantity:      input.Quantity,
		Discount:      discount,
	})
	if err != nil {
		return nil, LineItemOutput{}, fmt.Errorf("failed to add line item: %w", err)
	}
	return nil, lineItemToOutput(li), nil
}

type RemoveLineItemInput struct {
	ID string `json:"id" jsonschema:"Line item ID (required)"`
}

func (h *NegotiationHandlers) RemoveLineItem(_ context.Context, _ *mcp.CallToolRequest, input RemoveLineItemInput) (*mcp.CallToolResult, DeleteOutput, error) {
	found, err := h.state.RemoveLineItem(input.ID)
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to remove line item: %w", err)
	}
	return nil, DeleteOutput{Deleted: found}, nil
}
