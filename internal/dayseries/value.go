package dayseries

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// thousandsGrouped matches numbers written with comma thousands separators,
// e.g. "1,234.5". A lone comma such as "1,5" does not match.
var thousandsGrouped = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d*)?$`)

// ParseValue coerces a value cell to a finite number. Blank, non-numeric,
// NaN and infinite cells read as 0.
func ParseValue(cell string) float64 {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0
	}
	if thousandsGrouped.MatchString(s) {
		s = strings.ReplaceAll(s, ",", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
