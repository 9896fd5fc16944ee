package dayseries

import (
	"sort"

	apperrors "loadpv/internal/errors"
	"loadpv/internal/workbook"
	"loadpv/pkg/contracts/domain"
)

// ColumnMapping binds the datetime and value roles to sheet column names.
type ColumnMapping struct {
	Datetime string
	Value    string
}

// Required lists the mapped columns in role order.
func (m ColumnMapping) Required() []string {
	return []string{m.Datetime, m.Value}
}

// ExtractDay parses dateStr with ParseDate and extracts that day.
func ExtractDay(sheet *workbook.Sheet, mapping ColumnMapping, dateStr string) (domain.DaySeries, error) {
	date, err := ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	return Extract(sheet, mapping, date)
}

// Extract returns the readings of sheet that fall on date, sorted by label.
// The returned slice is never nil and is owned by the caller.
func Extract(sheet *workbook.Sheet, mapping ColumnMapping, date Date) (domain.DaySeries, error) {
	if sheet == nil {
		return nil, apperrors.NewAppValidationError("no sheet to extract from")
	}

	dtCol, hasDatetime := sheet.ColumnIndex(mapping.Datetime)
	valCol, hasValue := sheet.ColumnIndex(mapping.Value)
	if !hasDatetime || !hasValue {
		return nil, apperrors.NewColumnMissingError(mapping.Required(), append([]string(nil), sheet.Columns...))
	}

	stamps := make([]Timestamp, len(sheet.Rows))
	parsed := 0
	for i, row := range sheet.Rows {
		stamps[i] = ParseTimestamp(cell(row, dtCol), sheet.Date1904)
		if stamps[i].Valid {
			parsed++
		}
	}
	if len(sheet.Rows) > 0 && parsed == 0 {
		return nil, apperrors.NewDataUnparseableError(mapping.Datetime, len(sheet.Rows))
	}

	series := make(domain.DaySeries, 0)
	for i, row := range sheet.Rows {
		ts := stamps[i]
		if !ts.Valid || DateOf(ts.Time) != date {
			continue
		}
		series = append(series, domain.Point{
			Time:  Label(ts.Time),
			Value: ParseValue(cell(row, valCol)),
		})
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Time < series[j].Time
	})
	return series, nil
}

func cell(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}
