// ABOUTME: MCP prompt handlers for reusable CRM workflow templates
// ABOUTME: Provides client-summary and pipeline-review prompts built from live data
package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ostwick/crm/crm"
	"github.com/ostwick/crm/models"
)

type PromptHandlers struct {
	state *crm.State
}

func NewPromptHandlers(state *crm.State) *PromptHandlers {
	return &PromptHandlers{state: state}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(_ context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	switch request.Params.Name {
	case "client-summary":
		return h.getClientSummaryPrompt(request.Params.Arguments)
	case "pipeline-review":
		return h.getPipelineReviewPrompt()
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func (h *PromptHandlers) getClientSummaryPrompt(args map[string]string) (*mcp.GetPromptResult, error) {
	idStr, ok := args["client_id"]
	if !ok {
		return nil, fmt.Errorf("client_id is required")
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid client_id: %w", err)
	}

	client, ok := h.state.Client(id)
	if !ok {
		return nil, fmt.Errorf("client %d not found", id)
	}

	var promptText strings.Builder
	promptText.WriteString("Please provide a comprehensive summary of this client:\n\n")
	promptText.WriteString(fmt.Sprintf("Name: %s\n", client.Name))
	promptText.WriteString(fmt.Sprintf("Email: %s\n", client.Email))
	if client.Phone != "" {
		promptText.WriteString(fmt.Sprintf("Phone: %s\n", client.Phone))
	}

	if contacts := h.state.ContactsFor(id); len(contacts) > 0 {
		promptText.WriteString("\nContacts:\n")
		for _, c := range contacts {
			promptText.WriteString(fmt.Sprintf("- %s (%s) %s\n", c.Name, c.Role, c.Email))
		}
	}

	if negotiations := h.state.NegotiationsFor(id); len(negotiations) > 0 {
		promptText.WriteString("\nNegotiations:\n")
		for _, n := range negotiations {
			promptText.WriteString(fmt.Sprintf("- %s: %s, total %s\n",
				n.Description, strings.ToLower(string(n.Status)), h.state.NegotiationTotal(n.ID).StringFixed(2)))
		}
	}

	if schedules := h.state.SchedulesFor(id); len(schedules) > 0 {
		promptText.WriteString(fmt.Sprintf("\nAppointments on record: %d\n", len(schedules)))
	}

	promptText.WriteString("\nPlease analyze this client and provide:")
	promptText.WriteString("\n1. A brief summary of the relationship")
	promptText.WriteString("\n2. Recommendations for next steps on open negotiations")
	promptText.WriteString("\n3. Anything that needs attention before the next appointment")

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Summary for client: %s", client.Name),
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: promptText.String()},
			},
		},
	}, nil
}

func (h *PromptHandlers) getPipelineReviewPrompt() (*mcp.GetPromptResult, error) {
	count := make(map[models.NegotiationStatus]int)
	for _, n := range h.state.Negotiations() {
		count[n.Status]++
	}

	var promptText strings.Builder
	promptText.WriteString("Please review the current sales pipeline:\n\n")
	for _, status := range models.NegotiationStatuses {
		promptText.WriteString(fmt.Sprintf("%s: %d\n", status, count[status]))
	}
	promptText.WriteString(fmt.Sprintf("\nWon revenue: %s\n", h.state.WonRevenue().StringFixed(2)))

	promptText.WriteString("\nPlease provide:")
	promptText.WriteString("\n1. An assessment of pipeline health")
	promptText.WriteString("\n2. Which open negotiations to prioritize")

	return &mcp.GetPromptResult{
		Description: "Pipeline review",
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: promptText.String()},
			},
		},
	}, nil
}
