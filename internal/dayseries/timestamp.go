package dayseries

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/xuri/excelize/v2"

	apperrors "loadpv/internal/errors"
)

// Timestamp is the outcome of leniently parsing one datetime cell: either a
// parsed time (Valid) or unparseable.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

// Date is a calendar date without time or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the wall-clock calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format(time.DateOnly)
}

// maxExcelSerial is the serial of 9999-12-31, the last date Excel represents.
const maxExcelSerial = 2958466

// Target dates only accept forms that cannot be read two ways.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"20060102",
}

// Datetime cells are read leniently. Fractional seconds are accepted after
// any seconds field without being spelled out here. Cells matching none of
// these go through dateparse.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05 Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"2006/1/2",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006-1-2",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006",
	"2006.01.02 15:04:05",
	"2006.01.02 15:04",
	"2006.01.02",
	"20060102 15:04:05",
	"20060102 15:04",
	"20060102T150405",
	"02-Jan-2006 15:04:05",
	"02-Jan-2006 15:04",
	"02-Jan-2006",
	"2 Jan 2006 15:04:05",
	"2 Jan 2006 15:04",
	"2 Jan 2006",
	"Jan 2, 2006 15:04:05",
	"Jan 2, 2006 15:04",
	"Jan 2, 2006",
	"January 2, 2006 15:04",
	"January 2, 2006",
}

// ParseDate parses a caller-supplied target date. It accepts YYYY-MM-DD,
// YYYY/MM/DD, YYYYMMDD and RFC 3339 timestamps (date part as written).
func ParseDate(s string) (Date, error) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return DateOf(t), nil
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, trimmed); err == nil {
		return DateOf(t), nil
	}
	return Date{}, apperrors.NewDateUnparseableError(s, nil)
}

// ParseTimestamp leniently parses one datetime cell. Numeric cells are
// Excel serial dates in the given date system; eight-digit integers are
// read as YYYYMMDD first. Zone-less text is read as UTC wall clock.
func ParseTimestamp(cell string, date1904 bool) Timestamp {
	s := strings.TrimSpace(cell)
	if s == "" {
		return Timestamp{}
	}

	if len(s) == 8 && isDigits(s) {
		if t, err := time.Parse("20060102", s); err == nil {
			return Timestamp{Time: t, Valid: true}
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(serial) || serial <= 0 || serial >= maxExcelSerial {
			return Timestamp{}
		}
		t, err := excelize.ExcelDateToTime(serial, date1904)
		if err != nil {
			return Timestamp{}
		}
		return Timestamp{Time: t.Round(time.Second), Valid: true}
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t, Valid: true}
		}
	}

	// Digit-only strings never reach here, so dateparse cannot take them
	// for unix timestamps.
	if t, err := dateparse.ParseIn(s, time.UTC); err == nil {
		return Timestamp{Time: t, Valid: true}
	}
	return Timestamp{}
}

// Label formats t as a zero-padded 24-hour "HH:MM", dropping seconds.
func Label(t time.Time) string {
	return t.Format("15:04")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
