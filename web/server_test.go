// ABOUTME: Tests for the web UI server
// ABOUTME: Exercises every route through httptest against an in-memory State
package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ostwick/crm/crm"
	"github.com/ostwick/crm/models"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func setupTestServer(t *testing.T) (*Server, *crm.State) {
	t.Helper()
	s := crm.New(nil, crm.WithClock(func() time.Time { return testNow }))

	acme, err := s.AddClient(models.Client{Name: "Acme", Email: "hi@acme.com"})
	require.NoError(t, err)
	_, err = s.AddContact(models.Contact{ClientID: acme.ID, Name: "Ann", Role: "CFO", Email: "ann@acme.com"})
	require.NoError(t, err)
	_, err = s.AddSchedule(models.Schedule{ClientID: acme.ID, Type: models.AppointmentPhoneCall, Date: "2025-03-11T09:00:00Z"})
	require.NoError(t, err)
	p, err := s.AddProduct(models.Product{Name: "Widget", Price: decimal.NewFromInt(100)})
	require.NoError(t, err)
	n, err := s.AddNegotiation(models.Negotiation{ClientID: acme.ID, Status: models.StatusWon, Description: "Pilot"})
	require.NoError(t, err)
	_, err = s.AddLineItem(crm.LineItemInput{NegotiationID: n.ID, ProductID: p.ID, Quantity: 3})
	require.NoError(t, err)

	srv, err := NewServer(s, zerolog.Nop())
	require.NoError(t, err)
	srv.now = func() time.Time { return testNow }
	return srv, s
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestDashboardPage(t *testing.T) {
	srv, s := setupTestServer(t)

	rec := get(t, srv, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Total Clients")
	assert.Contains(t, body, "$300.00")
	assert.Contains(t, body, "Phone/WhatsApp Call")

	require.NoError(t, s.SetPreferences(models.Preferences{Language: models.LanguagePortuguese}))
	body = get(t, srv, "/").Body.String()
	assert.Contains(t, body, "Painel")
	assert.Contains(t, body, "Ganha")
}

func TestClientPages(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := get(t, srv, "/clients?q=acm")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hi@acme.com")

	assert.Contains(t, get(t, srv, "/clients?q=zzz").Body.String(), "No clients found")

	rec = get(t, srv, "/clients/1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ann")
	assert.Contains(t, rec.Body.String(), "Pilot")

	assert.Equal(t, http.StatusNotFound, get(t, srv, "/clients/9").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/clients/abc").Code)
}

func TestNegotiationPages(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := get(t, srv, "/negotiations?status=won")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Acme")

	assert.Contains(t, get(t, srv, "/negotiations?status=LOST").Body.String(), "No negotiations found")
	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/negotiations?status=maybe").Code)

	rec = get(t, srv, "/negotiations/1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Widget")
	assert.Contains(t, rec.Body.String(), "$300.00")
}

func TestProductsPage(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := get(t, srv, "/products")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "$100.00")
}

func TestGraphRoute(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := get(t, srv, "/graph.dot?client_id=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "graphviz")
	assert.Contains(t, rec.Body.String(), "client_1")

	assert.Equal(t, http.StatusNotFound, get(t, srv, "/graph.dot?client_id=9").Code)
}
