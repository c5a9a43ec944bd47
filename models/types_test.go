// ABOUTME: Tests for CRM data models
// ABOUTME: Covers enum normalization, timestamp parsing, and field validation
package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentTypeLegacyLabels(t *testing.T) {
	var s Schedule
	err := json.Unmarshal([]byte(`{"id":1,"clientId":2,"type":"Phone/WhatsApp Call","date":"","notes":""}`), &s)
	require.NoError(t, err)
	assert.Equal(t, AppointmentPhoneCall, s.Type)

	err = json.Unmarshal([]byte(`{"type":"video_conference"}`), &s)
	require.NoError(t, err)
	assert.Equal(t, AppointmentVideoConference, s.Type)

	err = json.Unmarshal([]byte(`{"type":"Carrier Pigeon"}`), &s)
	require.NoError(t, err)
	assert.Equal(t, AppointmentType("Carrier Pigeon"), s.Type)
	assert.False(t, s.Type.Valid())
}

func TestNegotiationStatusLegacyLabels(t *testing.T) {
	var n Negotiation
	err := json.Unmarshal([]byte(`{"id":1,"clientId":1,"status":"Won","description":"x","createdAt":"2024-03-01T10:00:00.000Z"}`), &n)
	require.NoError(t, err)
	assert.Equal(t, StatusWon, n.Status)
	assert.Equal(t, 2024, n.CreatedAt.Year())

	data, err := json.Marshal(n)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"WON"`)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"2025-01-02T10:00:00.000Z", true},
		{"2025-01-02T10:00:00+02:00", true},
		{"2025-01-02T10:00", true},
		{"2025-01-02", true},
		{"", false},
		{"   ", false},
		{"next tuesday", false},
	}

	for _, tt := range tests {
		_, ok := ParseTimestamp(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
	}
}

func TestFormatTimestampIsUTC(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	ts := time.Date(2025, 6, 1, 9, 30, 0, 0, loc)
	assert.Equal(t, "2025-06-01T12:30:00.000Z", FormatTimestamp(ts))
}

func TestClientProblems(t *testing.T) {
	assert.Empty(t, Client{Name: "Acme", Email: "a@acme.com"}.Problems())
	assert.Equal(t, []string{"name", "email"}, Client{}.Problems())
	assert.Equal(t, []string{"email"}, Client{Name: "Acme", Email: "  "}.Problems())
}

func TestLineItemProblems(t *testing.T) {
	item := NegotiationLineItem{Quantity: 1, UnitPrice: decimal.NewFromInt(10), Discount: decimal.NewFromInt(50)}
	assert.Empty(t, item.Problems(), "discount above gross value is allowed")

	item.Quantity = 0
	item.Discount = decimal.NewFromInt(-1)
	assert.Equal(t, []string{"quantity", "discount"}, item.Problems())
}

func TestProductPriceAcceptsNumbersAndStrings(t *testing.T) {
	var products []Product
	err := json.Unmarshal([]byte(`[{"id":"prod-001","name":"A","price":1500},{"id":"prod-002","name":"B","price":"19.90"}]`), &products)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.True(t, products[0].Price.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, "19.9", products[1].Price.String())
}
