package testutil

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// SheetFixture describes one sheet of a generated workbook. Rows include the
// header row; cell values are written as-is, so time.Time values become
// Excel date serials and strings stay text.
type SheetFixture struct {
	Name string
	Rows [][]interface{}
}

// WriteWorkbook saves an .xlsx with the given sheets, in order, under
// t.TempDir() and returns its path.
func WriteWorkbook(t *testing.T, name string, sheets ...SheetFixture) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			t.Fatalf("new sheet %q: %v", sheet.Name, err)
		}

		for r, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			values := row
			if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
				t.Fatalf("write row %d of %q: %v", r+1, sheet.Name, err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// LoadSheetFixture is a "datetime"/"load" sheet with readings on two days.
func LoadSheetFixture(name string) SheetFixture {
	return SheetFixture{
		Name: name,
		Rows: [][]interface{}{
			{"datetime", "load"},
			{"2024-01-01 00:30", "1.5"},
			{"2024-01-01 00:00", "2.0"},
			{"2024-01-02 00:00", "3.0"},
		},
	}
}

// PVSheetFixture is a "datetime"/"generator" sheet for the PV dataset.
func PVSheetFixture(name string) SheetFixture {
	return SheetFixture{
		Name: name,
		Rows: [][]interface{}{
			{"datetime", "generator"},
			{"2024-01-01 12:00:00", "4.25"},
			{"2024-01-01 06:00:00", "0"},
		},
	}
}
