// ABOUTME: Tests for MCP tool, resource, and prompt handlers
// ABOUTME: Calls handlers directly against an in-memory State
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ostwick/crm/crm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ctx     = context.Background()
	testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
)

func setupTestState(t *testing.T) *crm.State {
	t.Helper()
	return crm.New(nil, crm.WithClock(func() time.Time { return testNow }))
}

func addClient(t *testing.T, s *crm.State, name string) ClientOutput {
	t.Helper()
	_, out, err := NewClientHandlers(s).AddClient(ctx, nil, ClientInput{Name: name, Email: name + "@example.com"})
	require.NoError(t, err)
	return out
}

func TestAddClientHandler(t *testing.T) {
	s := setupTestState(t)
	h := NewClientHandlers(s)

	_, out, err := h.AddClient(ctx, nil, ClientInput{Name: "Acme", Email: "hi@acme.com", Document: "12.345"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)
	assert.Equal(t, "Acme", out.Name)

	_, _, err = h.AddClient(ctx, nil, ClientInput{Name: "No Email"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, crm.ErrValidation))
	assert.Len(t, s.Clients(), 1)
}

func TestFindClientsHandler(t *testing.T) {
	s := setupTestState(t)
	addClient(t, s, "acme")
	addClient(t, s, "globex")
	addClient(t, s, "acme-labs")

	h := NewClientHandlers(s)
	_, out, err := h.FindClients(ctx, nil, FindClientsInput{Query: "ACME"})
	require.NoError(t, err)
	assert.Len(t, out.Clients, 2)

	_, out, err = h.FindClients(ctx, nil, FindClientsInput{Limit: 1})
	require.NoError(t, err)
	require.Len(t, out.Clients, 1)
	assert.Equal(t, "acme", out.Clients[0].Name)
}

func TestUpdateClientHandlerUnknownID(t *testing.T) {
	s := setupTestState(t)
	addClient(t, s, "acme")

	_, out, err := NewClientHandlers(s).UpdateClient(ctx, nil, UpdateClientInput{ID: 9, Name: "ghost", Email: "g@x"})
	require.NoError(t, err)
	assert.False(t, out.Updated)
	assert.Equal(t, "acme", s.Clients()[0].Name)
}

func TestContactHandlersRequireClient(t *testing.T) {
	s := setupTestState(t)
	client := addClient(t, s, "acme")
	h := NewContactHandlers(s)

	_, contact, err := h.AddContact(ctx, nil, AddContactInput{ClientID: client.ID, Name: "Ann", Email: "ann@acme.com", Role: "CFO"})
	require.NoError(t, err)
	assert.Equal(t, client.ID, contact.ClientID)

	_, _, err = h.AddContact(ctx, nil, AddContactInput{ClientID: 404, Name: "Bob", Email: "bob@x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, crm.ErrReference))

	_, list, err := h.ListContacts(ctx, nil, ListByClientInput{})
	require.NoError(t, err)
	assert.Len(t, list.Contacts, 1)
}

func TestAddScheduleHandlerAcceptsLegacyLabel(t *testing.T) {
	s := setupTestState(t)
	client := addClient(t, s, "acme")
	h := NewContactHandlers(s)

	_, out, err := h.AddSchedule(ctx, nil, AddScheduleInput{ClientID: client.ID, Type: "Video Conference", Date: "2025-03-14T15:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, "VIDEO_CONFERENCE", out.Type)
	assert.Equal(t, "2025-03-14T15:00:00.000Z", out.Date)

	_, _, err = h.AddSchedule(ctx, nil, AddScheduleInput{ClientID: client.ID, Type: "CARRIER_PIGEON", Date: "2025-03-14"})
	assert.True(t, errors.Is(err, crm.ErrValidation))
}

func TestUpdateContactAndScheduleHandlers(t *testing.T) {
	s := setupTestState(t)
	client := addClient(t, s, "acme")
	h := NewContactHandlers(s)

	_, contact, err := h.AddContact(ctx, nil, AddContactInput{ClientID: client.ID, Name: "Ann", Email: "ann@acme.com"})
	require.NoError(t, err)
	_, out, err := h.UpdateContact(ctx, nil, UpdateContactInput{ID: contact.ID, ClientID: client.ID, Name: "Ann Lee", Email: "ann@acme.com", Role: "CFO"})
	require.NoError(t, err)
	assert.True(t, out.Updated)
	assert.Equal(t, "Ann Lee", s.Contacts()[0].Name)

	_, _, err = h.UpdateContact(ctx, nil, UpdateContactInput{ID: contact.ID, ClientID: 404, Name: "Ann", Email: "ann@acme.com"})
	assert.True(t, errors.Is(err, crm.ErrReference))
	assert.Equal(t, client.ID, s.Contacts()[0].ClientID)

	_, sched, err := h.AddSchedule(ctx, nil, AddScheduleInput{ClientID: client.ID, Type: "PHONE_CALL", Date: "2025-03-14T15:00:00Z"})
	require.NoError(t, err)
	_, out, err = h.UpdateSchedule(ctx, nil, UpdateScheduleInput{ID: sched.ID, ClientID: client.ID, Type: "Local Visit", Date: "2025-03-15T09:00:00-03:00"})
	require.NoError(t, err)
	assert.True(t, out.Updated)
	updated := s.Schedules()[0]
	assert.Equal(t, "LOCAL_VISIT", string(updated.Type))
	assert.Equal(t, "2025-03-15T12:00:00.000Z", updated.Date)

	_, out, err = h.UpdateSchedule(ctx, nil, UpdateScheduleInput{ID: 77, ClientID: client.ID, Type: "PHONE_CALL", Date: "2025-03-15"})
	require.NoError(t, err)
	assert.False(t, out.Updated)
}

func TestUpdateNegotiationHandler(t *testing.T) {
	s := setupTestState(t)
	client := addClient(t, s, "acme")
	h := NewNegotiationHandlers(s)

	_, neg, err := h.AddNegotiation(ctx, nil, AddNegotiationInput{ClientID: client.ID, Status: "won", Description: "pilot"})
	require.NoError(t, err)

	_, out, err := h.UpdateNegotiation(ctx, nil, UpdateNegotiationInput{ID: neg.ID, ClientID: client.ID, Description: "rollout"})
	require.NoError(t, err)
	assert.True(t, out.Updated)
	got, ok := s.Negotiation(neg.ID)
	require.True(t, ok)
	assert.Equal(t, "rollout", got.Description)
	assert.Equal(t, "WON", string(got.Status))

	_, _, err = h.UpdateNegotiation(ctx, nil, UpdateNegotiationInput{ID: neg.ID, ClientID: 404})
	assert.True(t, errors.Is(err, crm.ErrReference))

	_, _, err = h.UpdateNegotiation(ctx, nil, UpdateNegotiationInput{ID: neg.ID, ClientID: client.ID, Status: "PENDING"})
	assert.True(t, errors.Is(err, crm.ErrValidation))
}

func TestNegotiationLifecycle(t *testing.T) {
	s := setupTestState(t)
	client := addClient(t, s, "acme")
	negs := NewNegotiationHandlers(s)
	products := NewProductHandlers(s)

	_, product, err := products.AddProduct(ctx, nil, ProductInput{Name: "License", Price: "3000"})
	require.NoError(t, err)
	assert.Equal(t, "3000.00", product.Price)

	_, neg, err := negs.AddNegotiation(ctx, nil, AddNegotiationInput{ClientID: client.ID, Description: "Q3"})
	require.NoError(t, err)
	assert.Equal(t, "OPEN", neg.Status)
	assert.Equal(t, "acme", neg.ClientName)
	assert.Equal(t, "2025-03-10T12:00:00.000Z", neg.CreatedAt)

	_, item, err := negs.AddLineItem(ctx, nil, AddLineItemInput{NegotiationID: neg.ID, ProductID: product.ID, Quantity: 5, Discount: "500"})
	require.NoError(t, err)
	assert.Equal(t, "14500.00", item.Subtotal)

	_, _, err = negs.AddLineItem(ctx, nil, AddLineItemInput{NegotiationID: neg.ID, ProductID: product.ID, Quantity: 1, Discount: "lots"})
	require.Error(t, err)

	_, upd, err := negs.SetStatus(ctx, nil, SetStatusInput{ID: neg.ID, Status: "won"})
	require.NoError(t, err)
	assert.True(t, upd.Updated)

	_, _, err = negs.SetStatus(ctx, nil, SetStatusInput{ID: neg.ID, Status: "PAUSED"})
	assert.True(t, errors.Is(err, crm.ErrValidation))

	_, detail, err := negs.GetNegotiation(ctx, nil, GetNegotiationInput{ID: neg.ID})
	require.NoError(t, err)
	assert.Equal(t, "WON", detail.Negotiation.Status)
	assert.Equal(t, "14500.00", detail.Negotiation.Total)
	require.Len(t, detail.LineItems, 1)

	_, won, err := negs.ListNegotiations(ctx, nil, ListNegotiationsInput{Status: "WON"})
	require.NoError(t, err)
	assert.Len(t, won.Negotiations, 1)

	_, del, err := negs.DeleteNegotiation(ctx, nil, DeleteByIDInput{ID: neg.ID})
	require.NoError(t, err)
	assert.True(t, del.Deleted)
	assert.Equal(t, 1, del.LineItemsRemoved)
	assert.Empty(t, s.LineItems())
}

func TestDeleteClientHandlerReportsCascade(t *testing.T) {
	s := setupTestState(t)
	client := addClient(t, s, "acme")
	_, _, err := NewContactHandlers(s).AddContact(ctx, nil, AddContactInput{ClientID: client.ID, Name: "Ann", Email: "ann@acme.com"})
	require.NoError(t, err)
	_, _, err = NewNegotiationHandlers(s).AddNegotiation(ctx, nil, AddNegotiationInput{ClientID: client.ID})
	require.NoError(t, err)

	_, out, err := NewClientHandlers(s).DeleteClient(ctx, nil, DeleteClientInput{ID: client.ID})
	require.NoError(t, err)
	assert.True(t, out.Deleted)
	assert.Equal(t, crm.CascadeResult{Clients: 1, Contacts: 1, Negotiations: 1}, out.Removed)
	assert.Empty(t, s.Contacts())
	assert.Empty(t, s.Negotiations())
}

func TestProductHandlers(t *testing.T) {
	s := setupTestState(t)
	h := NewProductHandlers(s)

	_, _, err := h.AddProduct(ctx, nil, ProductInput{Name: "Refund", Price: "-1"})
	assert.True(t, errors.Is(err, crm.ErrValidation))

	_, p, err := h.AddProduct(ctx, nil, ProductInput{Name: "Hour", Price: "19.9"})
	require.NoError(t, err)
	assert.Equal(t, "19.90", p.Price)

	_, upd, err := h.UpdateProduct(ctx, nil, ProductInput{ID: p.ID, Name: "Consulting Hour", Price: "25"})
	require.NoError(t, err)
	assert.True(t, upd.Updated)

	_, _, err = h.UpdateProduct(ctx, nil, ProductInput{Name: "no id", Price: "1"})
	assert.Error(t, err)

	_, list, err := h.ListProducts(ctx, nil, ListProductsInput{})
	require.NoError(t, err)
	require.Len(t, list.Products, 1)
	assert.Equal(t, "Consulting Hour", list.Products[0].Name)

	_, del, err := h.DeleteProduct(ctx, nil, DeleteProductInput{ID: p.ID})
	require.NoError(t, err)
	assert.True(t, del.Deleted)
}

func TestDashboardHandler(t *testing.T) {
	s := setupTestState(t)
	client := addClient(t, s, "acme")
	_, _, err := NewContactHandlers(s).AddSchedule(ctx, nil, AddScheduleInput{ClientID: client.ID, Type: "PHONE_CALL", Date: "2025-03-12T09:00:00Z"})
	require.NoError(t, err)
	_, _, err = NewContactHandlers(s).AddSchedule(ctx, nil, AddScheduleInput{ClientID: client.ID, Type: "PHONE_CALL", Date: "2025-03-01T09:00:00Z"})
	require.NoError(t, err)

	h := &QueryHandlers{state: s, now: func() time.Time { return testNow }}
	_, out, err := h.Dashboard(ctx, nil, DashboardInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.TotalClients)
	assert.Equal(t, "0.00", out.WonRevenue)
	require.Len(t, out.Upcoming, 1)
	assert.Equal(t, "acme", out.Upcoming[0].ClientName)
}

func TestQueryCRMHandler(t *testing.T) {
	s := setupTestState(t)
	acme := addClient(t, s, "acme")
	globex := addClient(t, s, "globex")
	contacts := NewContactHandlers(s)
	_, _, err := contacts.AddContact(ctx, nil, AddContactInput{ClientID: acme.ID, Name: "Ann", Email: "ann@acme.com"})
	require.NoError(t, err)
	_, _, err = contacts.AddContact(ctx, nil, AddContactInput{ClientID: globex.ID, Name: "Anne", Email: "anne@globex.com"})
	require.NoError(t, err)

	h := NewQueryHandlers(s)
	_, out, err := h.QueryCRM(ctx, nil, QueryCRMInput{EntityType: "contact", Query: "ann"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)

	_, out, err = h.QueryCRM(ctx, nil, QueryCRMInput{EntityType: "contact", Query: "ann", ClientID: globex.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Count)

	_, out, err = h.QueryCRM(ctx, nil, QueryCRMInput{EntityType: "negotiation"})
	require.NoError(t, err)
	assert.NotNil(t, out.Results)
	assert.Equal(t, 0, out.Count)

	_, _, err = h.QueryCRM(ctx, nil, QueryCRMInput{EntityType: "deal"})
	assert.Error(t, err)
}

func TestGenerateGraphHandler(t *testing.T) {
	s := setupTestState(t)
	client := addClient(t, s, "acme")
	_, _, err := NewContactHandlers(s).AddContact(ctx, nil, AddContactInput{ClientID: client.ID, Name: "Ann", Email: "ann@acme.com"})
	require.NoError(t, err)

	_, out, err := NewVizHandlers(s).GenerateGraph(ctx, nil, GenerateGraphInput{})
	require.NoError(t, err)
	assert.Contains(t, out.DOTSource, "client_1")
	assert.Equal(t, 2, out.NodeCount)
	assert.Equal(t, 1, out.EdgeCount)

	_, _, err = NewVizHandlers(s).GenerateGraph(ctx, nil, GenerateGraphInput{ClientID: 42})
	assert.Error(t, err)
}

func TestReadResource(t *testing.T) {
	s := setupTestState(t)
	client := addClient(t, s, "acme")
	h := NewResourceHandlers(s)

	res, err := h.ReadResource(ctx, &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: "crm://clients/1"}})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, "application/json", res.Contents[0].MIMEType)

	var detail ClientDetailOutput
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &detail))
	assert.Equal(t, client.Name, detail.Client.Name)

	_, err = h.ReadResource(ctx, &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: "crm://clients/99"}})
	assert.Error(t, err)
	_, err = h.ReadResource(ctx, &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: "http://clients"}})
	assert.Error(t, err)
	_, err = h.ReadResource(ctx, &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: "crm://deals"}})
	assert.Error(t, err)
}

func TestGetPrompt(t *testing.T) {
	s := setupTestState(t)
	addClient(t, s, "acme")
	h := NewPromptHandlers(s)

	res, err := h.GetPrompt(ctx, &mcp.GetPromptRequest{Params: &mcp.GetPromptParams{
		Name:      "client-summary",
		Arguments: map[string]string{"client_id": "1"},
	}})
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	text, ok := res.Messages[0].Content.(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "Name: acme")

	_, err = h.GetPrompt(ctx, &mcp.GetPromptRequest{Params: &mcp.GetPromptParams{Name: "client-summary"}})
	assert.Error(t, err)

	res, err = h.GetPrompt(ctx, &mcp.GetPromptRequest{Params: &mcp.GetPromptParams{Name: "pipeline-review"}})
	require.NoError(t, err)
	assert.Equal(t, "Pipeline review", res.Description)
}

func TestNewServerRegistersTools(t *testing.T) {
	assert.NotNil(t, NewServer(setupTestState(t), "test"))
}
