// ABOUTME: Tests for revenue, totals, and upcoming appointment projections
// ABOUTME: Pure functions are tested directly; the dashboard goes through State
package crm

import (
	"testing"
	"time"

	"github.com/ostwick/crm/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(negID int64, qty int, price, discount string) models.NegotiationLineItem {
	return models.NegotiationLineItem{
		NegotiationID: negID,
		Quantity:      qty,
		UnitPrice:     decimal.RequireFromString(price),
		Discount:      decimal.RequireFromString(discount),
	}
}

func TestLineItemSubtotal(t *testing.T) {
	tests := []struct {
		name string
		item models.NegotiationLineItem
		want string
	}{
		{"no discount", item(1, 10, "200", "0"), "2000"},
		{"with discount", item(1, 5, "3000", "500"), "14500"},
		{"fractional price", item(1, 3, "19.90", "0"), "59.7"},
		{"discount above gross goes negative", item(1, 1, "100", "150"), "-50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineItemSubtotal(tt.item).String())
		})
	}
}

func TestNegotiationTotalOnlyCountsItsItems(t *testing.T) {
	items := []models.NegotiationLineItem{
		item(1, 2, "10", "0"),
		item(2, 1, "1000", "0"),
		item(1, 1, "5", "1"),
	}

	assert.Equal(t, "24", NegotiationTotal(items, 1).String())
	assert.Equal(t, "1000", NegotiationTotal(items, 2).String())
	assert.True(t, NegotiationTotal(items, 3).IsZero())
}

func TestWonRevenue(t *testing.T) {
	negotiations := []models.Negotiation{
		{ID: 1, Status: models.StatusWon},
		{ID: 2, Status: models.StatusOpen},
		{ID: 3, Status: models.StatusWon},
		{ID: 4, Status: models.StatusLost},
	}
	items := []models.NegotiationLineItem{
		item(1, 1, "100", "0"),
		item(2, 1, "999", "0"),
		item(3, 2, "50", "20"),
		item(4, 1, "999", "0"),
		item(5, 1, "999", "0"),
	}

	assert.Equal(t, "180", WonRevenue(negotiations, items).String())
	assert.True(t, WonRevenue(nil, items).IsZero())
	assert.Equal(t, 1, OpenNegotiationCount(negotiations))
}

func TestWonRevenueFollowsStatusChanges(t *testing.T) {
	s, _ := setupTestState(t)
	c := mustClient(t, s, "acme")
	p := mustProduct(t, s, "License", 400)
	n, err := s.AddNegotiation(models.Negotiation{ClientID: c.ID})
	require.NoError(t, err)
	_, err = s.AddLineItem(LineItemInput{NegotiationID: n.ID, ProductID: p.ID, Quantity: 2, Discount: decimal.NewFromInt(50)})
	require.NoError(t, err)

	assert.True(t, s.WonRevenue().IsZero())
	assert.Equal(t, 1, s.OpenNegotiationCount())

	_, err = s.SetNegotiationStatus(n.ID, models.StatusWon)
	require.NoError(t, err)
	assert.Equal(t, "750", s.WonRevenue().String())
	assert.Equal(t, 0, s.OpenNegotiationCount())

	_, err = s.SetNegotiationStatus(n.ID, models.StatusLost)
	require.NoError(t, err)
	assert.True(t, s.WonRevenue().IsZero())
}

func TestUpcomingAppointments(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour
	schedules := []models.Schedule{
		{ID: 1, Date: models.FormatTimestamp(now.Add(5 * day))},
		{ID: 2, Date: ""},
		{ID: 3, Date: models.FormatTimestamp(now.Add(-day))},
		{ID: 4, Date: "not a date"},
		{ID: 5, Date: models.FormatTimestamp(now.Add(2 * day))},
		{ID: 6, Date: models.FormatTimestamp(now)},
	}

	got := UpcomingAppointments(schedules, now)

	require.Len(t, got, 2)
	assert.Equal(t, int64(5), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)
	assert.True(t, got[0].When.Equal(now.Add(2*day)))
	assert.NotNil(t, UpcomingAppointments(nil, now))
}

func TestUpcomingAppointmentsKeepsInsertionOrderForTies(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	same := models.FormatTimestamp(now.Add(time.Hour))
	schedules := []models.Schedule{{ID: 9, Date: same}, {ID: 3, Date: same}, {ID: 7, Date: same}}

	got := UpcomingAppointments(schedules, now)

	require.Len(t, got, 3)
	assert.Equal(t, []int64{9, 3, 7}, []int64{got[0].ID, got[1].ID, got[2].ID})
}

func TestClientDisplayName(t *testing.T) {
	clients := []models.Client{{ID: 1, Name: "Acme"}}

	assert.Equal(t, "Acme", ClientDisplayName(clients, 1))
	assert.Equal(t, UnknownClient, ClientDisplayName(clients, 2))
	assert.Equal(t, UnknownClient, ClientDisplayName(nil, 1))
}

func TestDashboard(t *testing.T) {
	s, _ := setupTestState(t, WithSeed(true))

	d := s.Dashboard(testNow)

	assert.Equal(t, 2, d.TotalClients)
	assert.Equal(t, 1, d.OpenNegotiations)
	assert.Equal(t, "2000", d.WonRevenue.String())
	require.Len(t, d.Upcoming, 2)
	assert.Equal(t, "Tech Solutions Inc.", d.Upcoming[0].ClientName)
	assert.Equal(t, "Innovate Creations", d.Upcoming[1].ClientName)

	later := s.Dashboard(testNow.Add(3 * 24 * time.Hour))
	require.Len(t, later.Upcoming, 1)
	assert.Equal(t, "Innovate Creations", later.Upcoming[0].ClientName)
}
