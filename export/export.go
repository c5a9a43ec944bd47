// ABOUTME: Spreadsheet export of CRM collections
// ABOUTME: Each collection becomes a workbook with a single sheet named Data
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ostwick/crm/crm"
	"github.com/xuri/excelize/v2"
)

// SheetName is the only sheet in every exported workbook.
const SheetName = "Data"

// Row is a record that can be laid out as a spreadsheet row.
type Row interface {
	Columns() []string
	Values() []any
}

// Workbook lays rows out under a header row. An empty collection yields a
// header-only sheet when a zero value can still name the columns.
func Workbook[T Row](rows []T) (*excelize.File, error) {
	file := excelize.NewFile()
	if err := file.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	var zero T
	header := zero.Columns()
	for i, col := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := file.SetCellValue(SheetName, cell, col); err != nil {
			return nil, err
		}
	}

	for r, row := range rows {
		for c, value := range row.Values() {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := file.SetCellValue(SheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", cell, err)
			}
		}
	}

	if len(header) > 0 {
		last, _ := excelize.ColumnNumberToName(len(header))
		_ = file.SetColWidth(SheetName, "A", last, 18)
	}
	file.SetActiveSheet(0)
	return file, nil
}

// Collections maps export names to workbook builders over a State.
var Collections = map[string]func(*crm.State) (*excelize.File, error){
	"clients":              func(s *crm.State) (*excelize.File, error) { return Workbook(s.Clients()) },
	"contacts":             func(s *crm.State) (*excelize.File, error) { return Workbook(s.Contacts()) },
	"schedules":            func(s *crm.State) (*excelize.File, error) { return Workbook(s.Schedules()) },
	"negotiations":         func(s *crm.State) (*excelize.File, error) { return Workbook(s.Negotiations()) },
	"negotiation_products": func(s *crm.State) (*excelize.File, error) { return Workbook(s.LineItems()) },
	"products":             func(s *crm.State) (*excelize.File, error) { return Workbook(s.Products()) },
}

// Names returns the exportable collection names, sorted.
func Names() []string {
	names := make([]string, 0, len(Collections))
	for name := range Collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteCollection exports one collection to dir/<name>.xlsx and returns the path.
func WriteCollection(s *crm.State, name, dir string) (string, error) {
	build, ok := Collections[name]
	if !ok {
		return "", fmt.Errorf("unknown collection %q (valid: %v)", name, Names())
	}

	file, err := build(s)
	if err != nil {
		return "", fmt.Errorf("failed to build %s workbook: %w", name, err)
	}
	defer file.Close()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	path := filepath.Join(dir, name+".xlsx")
	if err := file.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// WriteAll exports every collection into dir.
func WriteAll(s *crm.State, dir string) ([]string, error) {
	var paths []string
	for _, name := range Names() {
		path, err := WriteCollection(s, name, dir)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
