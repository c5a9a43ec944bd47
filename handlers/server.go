// ABOUTME: MCP server assembly
// ABOUTME: Registers every CRM tool, resource, and prompt against one shared State
package handlers

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ostwick/crm/crm"
)

// NewServer builds an MCP server exposing state.
func NewServer(state *crm.State, version string) *mcp.Server {
	clientHandlers := NewClientHandlers(state)
	contactHandlers := NewContactHandlers(state)
	negotiationHandlers := NewNegotiationHandlers(state)
	productHandlers := NewProductHandlers(state)
	queryHandlers := NewQueryHandlers(state)
	vizHandlers := NewVizHandlers(state)
	resourceHandlers := NewResourceHandlers(state)
	promptHandlers := NewPromptHandlers(state)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "crm",
		Version: version,
	}, nil)

	// Clients
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_client",
		Description: "Add a new client to the CRM",
	}, clientHandlers.AddClient)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_clients",
		Description: "Search for clients by name, email, or document",
	}, clientHandlers.FindClients)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_client",
		Description: "Get a client with its contacts, schedules, and negotiations",
	}, clientHandlers.GetClient)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_client",
		Description: "Replace an existing client's information",
	}, clientHandlers.UpdateClient)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_client",
		Description: "Delete a client together with its contacts, schedules, negotiations, and line items",
	}, clientHandlers.DeleteClient)

	// Contacts and schedules
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_contact",
		Description: "Add a contact person to an existing client",
	}, contactHandlers.AddContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_contacts",
		Description: "List contacts, optionally for one client",
	}, contactHandlers.ListContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_contact",
		Description: "Replace an existing contact's information",
	}, contactHandlers.UpdateContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_contact",
		Description: "Delete a contact",
	}, contactHandlers.DeleteContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_schedule",
		Description: "Schedule an appointment with an existing client",
	}, contactHandlers.AddSchedule)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_schedules",
		Description: "List appointments, optionally for one client",
	}, contactHandlers.ListSchedules)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_schedule",
		Description: "Replace an existing appointment's type, date, or notes",
	}, contactHandlers.UpdateSchedule)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_schedule",
		Description: "Delete an appointment",
	}, contactHandlers.DeleteSchedule)

	// Negotiations and line items
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_negotiation",
		Description: "Open a negotiation with an existing client",
	}, negotiationHandlers.AddNegotiation)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_negotiations",
		Description: "List negotiations with their totals, optionally filtered by client or status",
	}, negotiationHandlers.ListNegotiations)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_negotiation",
		Description: "Get a negotiation with its line items and total",
	}, negotiationHandlers.GetNegotiation)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_negotiation",
		Description: "Change a negotiation's client, description, or status",
	}, negotiationHandlers.UpdateNegotiation)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_negotiation_status",
		Description: "Mark a negotiation OPEN, WON, or LOST",
	}, negotiationHandlers.SetStatus)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_negotiation",
		Description: "Delete a negotiation and its line items",
	}, negotiationHandlers.DeleteNegotiation)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_line_item",
		Description: "Add a catalog product to a negotiation, copying its current name and price",
	}, negotiationHandlers.AddLineItem)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_line_item",
		Description: "Remove a product line from a negotiation",
	}, negotiationHandlers.RemoveLineItem)

	// Products
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_product",
		Description: "Add a product to the catalog",
	}, productHandlers.AddProduct)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_products",
		Description: "List the product catalog",
	}, productHandlers.ListProducts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_product",
		Description: "Change a product's name or price; existing line items are not affected",
	}, productHandlers.UpdateProduct)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_product",
		Description: "Remove a product from the catalog",
	}, productHandlers.DeleteProduct)

	// Overview
	mcp.AddTool(server, &mcp.Tool{
		Name:        "dashboard",
		Description: "Total clients, open negotiations, won revenue, and upcoming appointments",
	}, queryHandlers.Dashboard)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_crm",
		Description: "Universal query tool for text search across clients, contacts, schedules, negotiations, and products",
	}, queryHandlers.QueryCRM)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_graph",
		Description: "Generate a GraphViz DOT graph of clients, contacts, negotiations, and quoted products",
	}, vizHandlers.GenerateGraph)

	// Resources
	for _, r := range []*mcp.Resource{
		{URI: "crm://clients", Name: "clients", Description: "All clients", MIMEType: "application/json"},
		{URI: "crm://negotiations", Name: "negotiations", Description: "All negotiations with totals", MIMEType: "application/json"},
		{URI: "crm://products", Name: "products", Description: "Product catalog", MIMEType: "application/json"},
		{URI: "crm://dashboard", Name: "dashboard", Description: "Portfolio overview", MIMEType: "application/json"},
	} {
		server.AddResource(r, resourceHandlers.ReadResource)
	}
	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "crm://clients/{id}",
		Name:        "client",
		Description: "One client with its contacts, schedules, and negotiations",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	// Prompts
	server.AddPrompt(&mcp.Prompt{
		Name:        "client-summary",
		Description: "Summarize a client relationship and suggest next steps",
		Arguments: []*mcp.PromptArgument{
			{Name: "client_id", Description: "Client ID", Required: true},
		},
	}, promptHandlers.GetPrompt)
	server.AddPrompt(&mcp.Prompt{
		Name:        "pipeline-review",
		Description: "Review negotiation counts by status and won revenue",
	}, promptHandlers.GetPrompt)

	return server
}
