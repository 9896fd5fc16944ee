package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	api "loadpv/pkg/contracts/api/v1"
	"loadpv/pkg/contracts/domain"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0.000000"},
		{123, "123.000000"},
		{-456.5, "-456.500000"},
		{0.0000004, "0.000000"},
		{0.0000005001, "0.000001"},
		{1234567.1234567, "1234567.123457"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatValue(tt.input))
		})
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name     string
		meta     domain.DatasetMeta
		format   api.ExportFormat
		expected string
	}{
		{
			name:     "load with village",
			meta:     domain.DatasetMeta{Name: "load", Village: "Alpha", Date: "2024-01-01"},
			format:   api.ExportCSV,
			expected: "load_Alpha_2024-01-01.csv",
		},
		{
			name:     "pv without village",
			meta:     domain.DatasetMeta{Name: "pv", Date: "2024-01-01"},
			format:   api.ExportPDF,
			expected: "pv_2024-01-01.pdf",
		},
		{
			name:     "unsafe characters",
			meta:     domain.DatasetMeta{Name: "load", Village: "Upper / Valley", Date: "2024-01-01"},
			format:   api.ExportXLSX,
			expected: "load_Upper-Valley_2024-01-01.xlsx",
		},
		{
			name:     "non-latin village kept",
			meta:     domain.DatasetMeta{Name: "load", Village: "東村", Date: "2024-01-01"},
			format:   api.ExportCSV,
			expected: "load_東村_2024-01-01.csv",
		},
		{
			name:     "nothing usable",
			meta:     domain.DatasetMeta{Name: "???"},
			format:   api.ExportPNG,
			expected: "series.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FileName(tt.meta, tt.format))
		})
	}
}

func TestASCIIFileName(t *testing.T) {
	assert.Equal(t, "load_2024-01-01.csv",
		ASCIIFileName(domain.DatasetMeta{Name: "load", Village: "東村", Date: "2024-01-01"}, api.ExportCSV))
	assert.Equal(t, "load_Z-rich_2024-01-01.pdf",
		ASCIIFileName(domain.DatasetMeta{Name: "load", Village: "Zürich", Date: "2024-01-01"}, api.ExportPDF))
}

func TestContentDisposition(t *testing.T) {
	assert.Equal(t, `attachment; filename="load_Alpha_2024-01-01.csv"`,
		ContentDisposition("attachment", domain.DatasetMeta{Name: "load", Village: "Alpha", Date: "2024-01-01"}, api.ExportCSV))
	assert.Equal(t, `attachment; filename="load_2024-01-01.csv"; filename*=UTF-8''load_%E6%9D%B1%E6%9D%91_2024-01-01.csv`,
		ContentDisposition("attachment", domain.DatasetMeta{Name: "load", Village: "東村", Date: "2024-01-01"}, api.ExportCSV))
}

func TestRoundedValues(t *testing.T) {
	series := domain.DaySeries{
		{Time: "00:00", Value: 1.23456789},
		{Time: "00:30", Value: -0.0000004},
		{Time: "01:00", Value: 42},
	}
	got := RoundedValues(series)
	assert.InDeltaSlice(t, []float64{1.234568, 0, 42}, got, 1e-12)
	assert.Equal(t, FormatValue(series[0].Value), FormatValue(got[0]))
}
