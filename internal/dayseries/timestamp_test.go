package dayseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "loadpv/internal/errors"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{input: "2024-01-01", want: Date{2024, time.January, 1}},
		{input: " 2024-02-29 ", want: Date{2024, time.February, 29}},
		{input: "2024/03/15", want: Date{2024, time.March, 15}},
		{input: "20241231", want: Date{2024, time.December, 31}},
		{input: "2024-06-01T23:30:00+05:00", want: Date{2024, time.June, 1}},
		{input: "01/02/2024", wantErr: true},
		{input: "2023-02-29", wantErr: true},
		{input: "tomorrow", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperrors.ErrTypeDateUnparseable, apperrors.TypeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		cell      string
		wantValid bool
		wantDate  Date
		wantLabel string
	}{
		{"2024-01-01 00:00", true, Date{2024, 1, 1}, "00:00"},
		{"2024-01-01 07:45:59", true, Date{2024, 1, 1}, "07:45"},
		{"2024-01-01 07:45:59.999", true, Date{2024, 1, 1}, "07:45"},
		{"2024-01-01T18:05:00", true, Date{2024, 1, 1}, "18:05"},
		{"2024-01-01T18:05:00Z", true, Date{2024, 1, 1}, "18:05"},
		{"2024-01-01", true, Date{2024, 1, 1}, "00:00"},
		{"2024/01/01 09:30", true, Date{2024, 1, 1}, "09:30"},
		{"2024/1/1 01:00", true, Date{2024, 1, 1}, "01:00"},
		{"2024/1/1 1:00", true, Date{2024, 1, 1}, "01:00"},
		{"2024/1/1 13:20:59", true, Date{2024, 1, 1}, "13:20"},
		{"2024-1-1 01:00", true, Date{2024, 1, 1}, "01:00"},
		{"2024-3-9", true, Date{2024, 3, 9}, "00:00"},
		{"2024/1/1", true, Date{2024, 1, 1}, "00:00"},
		{"Mon Jan 1 08:15:00 2024", true, Date{2024, 1, 1}, "08:15"},
		{"1/2/2024 9:05", true, Date{2024, 1, 2}, "09:05"},
		{"1/2/2024 9:05 PM", true, Date{2024, 1, 2}, "21:05"},
		{"2024.01.05 10:00", true, Date{2024, 1, 5}, "10:00"},
		{"20240107", true, Date{2024, 1, 7}, "00:00"},
		{"05-Jan-2024 14:00", true, Date{2024, 1, 5}, "14:00"},
		{"Jan 5, 2024", true, Date{2024, 1, 5}, "00:00"},
		{"45292.5", true, Date{2024, 1, 1}, "12:00"},
		{"45292.0208333333", true, Date{2024, 1, 1}, "00:30"},
		{"", false, Date{}, ""},
		{"   ", false, Date{}, ""},
		{"abc", false, Date{}, ""},
		{"-3", false, Date{}, ""},
		{"3000000", false, Date{}, ""},
		{"NaN", false, Date{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			ts := ParseTimestamp(tt.cell, false)
			assert.Equal(t, tt.wantValid, ts.Valid)
			if tt.wantValid {
				assert.Equal(t, tt.wantDate, DateOf(ts.Time))
				assert.Equal(t, tt.wantLabel, Label(ts.Time))
			}
		})
	}
}

func TestLabel_RecoversWallClock(t *testing.T) {
	for h := 0; h < 24; h++ {
		for _, m := range []int{0, 1, 30, 59} {
			original := time.Date(2024, 7, 9, h, m, 42, 0, time.FixedZone("x", 3*3600))
			ts := ParseTimestamp(original.Format(time.RFC3339), false)
			require.True(t, ts.Valid)
			assert.Equal(t, original.Format("15:04"), Label(ts.Time))
		}
	}
}

func TestDate_String(t *testing.T) {
	assert.Equal(t, "2024-01-09", Date{2024, time.January, 9}.String())
}
