package workbook

import (
	"fmt"
	"strings"
)

// Sheet is one loaded worksheet: a header and the data rows beneath it.
// Cells are raw strings; interpretation is left to the caller.
type Sheet struct {
	Name    string
	Columns []string
	Rows    [][]string
	// Date1904 is set when the workbook counts serial dates from 1904-01-01.
	Date1904 bool
}

// NewSheet builds a Sheet from raw rows where raw[0] is the header. Header
// names are normalized, blank data rows dropped and short rows padded.
func NewSheet(name string, raw [][]string, date1904 bool) *Sheet {
	sheet := &Sheet{Name: name, Date1904: date1904}
	if len(raw) == 0 {
		return sheet
	}

	width := 0
	for _, row := range raw {
		if len(row) > width {
			width = len(row)
		}
	}

	sheet.Columns = normalizeHeader(raw[0], width)
	sheet.Rows = make([][]string, 0, len(raw)-1)
	for _, row := range raw[1:] {
		if isBlankRow(row) {
			continue
		}
		padded := make([]string, width)
		copy(padded, row)
		sheet.Rows = append(sheet.Rows, padded)
	}
	return sheet
}

// ColumnIndex returns the position of the named column.
func (s *Sheet) ColumnIndex(name string) (int, bool) {
	for i, c := range s.Columns {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

// Len returns the number of data rows.
func (s *Sheet) Len() int {
	return len(s.Rows)
}

// normalizeHeader names blank cells "Unnamed: N" and suffixes repeats.
func normalizeHeader(header []string, width int) []string {
	columns := make([]string, width)
	seen := make(map[string]int, width)

	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = header[i]
		}
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}

		if n, dup := seen[name]; dup {
			base := name
			for {
				n++
				name = fmt.Sprintf("%s.%d", base, n)
				if _, taken := seen[name]; !taken {
					break
				}
			}
			seen[base] = n
		}
		seen[name] = 0
		columns[i] = name
	}
	return columns
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
