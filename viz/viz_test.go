// ABOUTME: Tests for dashboard rendering and portfolio graph generation
// ABOUTME: Runs against a seeded in-memory state with a fixed clock
package viz

import (
	"strings"
	"testing"
	"time"

	"github.com/ostwick/crm/crm"
	"github.com/ostwick/crm/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func setupTestState(t *testing.T) *crm.State {
	t.Helper()
	s := crm.New(nil, crm.WithClock(func() time.Time { return testNow }))

	acme, err := s.AddClient(models.Client{Name: "Acme Corp", Email: "hi@acme.com"})
	require.NoError(t, err)
	globex, err := s.AddClient(models.Client{Name: "Globex", Email: "hi@globex.com"})
	require.NoError(t, err)

	_, err = s.AddContact(models.Contact{ClientID: acme.ID, Name: "Alice", Role: "CTO", Email: "alice@acme.com"})
	require.NoError(t, err)
	_, err = s.AddSchedule(models.Schedule{ClientID: globex.ID, Type: models.AppointmentLocalVisit, Date: "2025-03-15T10:00:00Z"})
	require.NoError(t, err)

	p, err := s.AddProduct(models.Product{Name: "Widget", Price: decimal.NewFromInt(250)})
	require.NoError(t, err)

	won, err := s.AddNegotiation(models.Negotiation{ClientID: acme.ID, Status: models.StatusWon, Description: "Widgets"})
	require.NoError(t, err)
	_, err = s.AddLineItem(crm.LineItemInput{NegotiationID: won.ID, ProductID: p.ID, Quantity: 4})
	require.NoError(t, err)
	_, err = s.AddNegotiation(models.Negotiation{ClientID: globex.ID, Description: "Pilot"})
	require.NoError(t, err)

	return s
}

func TestGenerateDashboardStats(t *testing.T) {
	stats := GenerateDashboardStats(setupTestState(t), testNow)

	assert.Equal(t, 2, stats.TotalClients)
	assert.Equal(t, 1, stats.OpenNegotiations)
	assert.Equal(t, "1000", stats.WonRevenue.String())
	require.Len(t, stats.Upcoming, 1)
	assert.Equal(t, "Globex", stats.Upcoming[0].ClientName)

	won := stats.PipelineByStatus[models.StatusWon]
	assert.Equal(t, 1, won.Count)
	assert.Equal(t, "1000", won.Amount.String())
	assert.Equal(t, 1, stats.PipelineByStatus[models.StatusOpen].Count)
	_, hasLost := stats.PipelineByStatus[models.StatusLost]
	assert.False(t, hasLost)
}

func TestRenderDashboard(t *testing.T) {
	stats := GenerateDashboardStats(setupTestState(t), testNow)

	out := RenderDashboard(stats, LabelsFor(models.LanguageEnglish))
	assert.Contains(t, out, "DASHBOARD")
	assert.Contains(t, out, "Total Clients")
	assert.Contains(t, out, "$1000.00")
	assert.Contains(t, out, "Globex")
	assert.Contains(t, out, "Local Visit")

	pt := RenderDashboard(stats, LabelsFor(models.LanguagePortuguese))
	assert.Contains(t, pt, "PAINEL")
	assert.Contains(t, pt, "Visita Local")
	assert.Contains(t, pt, "Ganha")
}

func TestRenderDashboardEmpty(t *testing.T) {
	stats := GenerateDashboardStats(crm.New(nil), testNow)

	out := RenderDashboard(stats, LabelsFor("en"))
	assert.Contains(t, out, "No upcoming appointments.")
	assert.Contains(t, out, "$0.00")
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$14500.00", FormatMoney(decimal.NewFromInt(14500)))
	assert.Equal(t, "$19.90", FormatMoney(decimal.RequireFromString("19.9")))
	assert.Equal(t, "-$50.00", FormatMoney(decimal.NewFromInt(-50)))
}

func TestLabelsFallBackToCode(t *testing.T) {
	l := LabelsFor("en")
	assert.Equal(t, "Phone/WhatsApp Call", l.AppointmentType(models.AppointmentPhoneCall))
	assert.Equal(t, "IN_PERSON", l.AppointmentType("IN_PERSON"))
	assert.Equal(t, "PENDING", l.Status("PENDING"))
}

func TestGeneratePortfolioGraph(t *testing.T) {
	s := setupTestState(t)
	generator := NewGraphGenerator(s)

	dot, err := generator.GeneratePortfolioGraph(nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(dot), "digraph"))
	assert.Contains(t, dot, "client_1")
	assert.Contains(t, dot, "client_2")
	assert.Contains(t, dot, "contact_1")
	assert.Contains(t, dot, "Widget")

	acmeID := int64(1)
	dot, err = generator.GeneratePortfolioGraph(&acmeID)
	require.NoError(t, err)
	assert.Contains(t, dot, "client_1")
	assert.NotContains(t, dot, "client_2")

	missing := int64(99)
	_, err = generator.GeneratePortfolioGraph(&missing)
	assert.Error(t, err)
}
