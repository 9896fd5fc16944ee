package dayseries

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		cell string
		want float64
	}{
		{"5.1", 5.1},
		{"  42 ", 42},
		{"-0.75", -0.75},
		{"1e3", 1000},
		{"1,234.5", 1234.5},
		{"12,345,678", 12345678},
		{"1,5", 0},
		{"abc", 0},
		{"", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"-infinity", 0},
		{"1.2.3", 0},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseValue(tt.cell))
		})
	}
}
