// ABOUTME: Tests for spreadsheet export
// ABOUTME: Writes workbooks to temp dirs and reads them back with excelize
package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ostwick/crm/crm"
	"github.com/ostwick/crm/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkbookLayout(t *testing.T) {
	products := []models.Product{
		{ID: "prod-001", Name: "License", Price: decimal.RequireFromString("1500.50")},
		{ID: "prod-002", Name: "Support", Price: decimal.NewFromInt(200)},
	}

	file, err := Workbook(products)
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, []string{SheetName}, file.GetSheetList())

	rows, err := file.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "name", "price"}, rows[0])
	assert.Equal(t, []string{"prod-001", "License", "1500.5"}, rows[1])
	assert.Equal(t, "Support", rows[2][1])
}

func TestWorkbookEmptyCollectionHasHeader(t *testing.T) {
	file, err := Workbook([]models.Contact{})
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "clientId", rows[0][1])
}

func TestWriteAll(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s := crm.New(nil, crm.WithClock(func() time.Time { return now }))
	c, err := s.AddClient(models.Client{Name: "Acme", Email: "hi@acme.com"})
	require.NoError(t, err)
	_, err = s.AddNegotiation(models.Negotiation{ClientID: c.ID, Status: models.StatusWon})
	require.NoError(t, err)

	dir := t.TempDir()
	paths, err := WriteAll(s, dir)
	require.NoError(t, err)
	assert.Len(t, paths, len(Collections))

	file, err := excelize.OpenFile(filepath.Join(dir, "negotiations.xlsx"))
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "1", "WON", "", "2025-03-10T12:00:00.000Z"}, rows[1])
}

func TestWriteCollectionUnknownName(t *testing.T) {
	_, err := WriteCollection(crm.New(nil), "deals", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown collection")
}
