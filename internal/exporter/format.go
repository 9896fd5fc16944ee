package exporter

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"

	api "loadpv/pkg/contracts/api/v1"
	"loadpv/pkg/contracts/domain"
)

// ValueDecimals is the number of decimals shown for series values.
const ValueDecimals = 6

// FormatValue formats a series value with exactly ValueDecimals decimals.
func FormatValue(f float64) string {
	return fmt.Sprintf("%.*f", ValueDecimals, f)
}

var valueScale = math.Pow10(ValueDecimals)

// RoundValue rounds f half away from zero to ValueDecimals decimals.
func RoundValue(f float64) float64 {
	return math.Round(f*valueScale) / valueScale
}

// RoundedValues returns the series values rounded with RoundValue, in order.
func RoundedValues(series domain.DaySeries) []float64 {
	values := series.Values()
	for i, v := range values {
		values[i] = RoundValue(v)
	}
	return values
}

var (
	unsafeFileChars   = regexp.MustCompile(`[^\p{L}\p{N}._-]+`)
	nonASCIIFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
)

// FileName builds a download name such as "load_Alpha_2024-01-01.csv".
// Letters outside ASCII are kept.
func FileName(meta domain.DatasetMeta, format api.ExportFormat) string {
	return fileName(meta, format, unsafeFileChars)
}

// ASCIIFileName is FileName restricted to ASCII, for clients that ignore
// RFC 6266 extended parameters. Parts left empty are dropped.
func ASCIIFileName(meta domain.DatasetMeta, format api.ExportFormat) string {
	return fileName(meta, format, nonASCIIFileChars)
}

// ContentDisposition builds the Content-Disposition value for a download.
// Non-ASCII names are sent percent-encoded in filename* with an ASCII
// filename beside them.
func ContentDisposition(disposition string, meta domain.DatasetMeta, format api.ExportFormat) string {
	name := FileName(meta, format)
	fallback := ASCIIFileName(meta, format)
	if name == fallback {
		return fmt.Sprintf("%s; filename=%q", disposition, name)
	}
	return fmt.Sprintf("%s; filename=%q; filename*=UTF-8''%s", disposition, fallback, url.PathEscape(name))
}

func fileName(meta domain.DatasetMeta, format api.ExportFormat, unsafe *regexp.Regexp) string {
	var parts []string
	for _, part := range []string{meta.Name, meta.Village, meta.Date} {
		part = strings.Trim(unsafe.ReplaceAllString(part, "-"), "-_.")
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return "series." + string(format)
	}
	return strings.Join(parts, "_") + "." + string(format)
}
