package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"loadpv/pkg/contracts/domain"
)

// utf8BOM helps Excel recognize UTF-8 CSV files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DefaultHeaders is the header row of every exported series.
var DefaultHeaders = []string{"time", "value"}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string // defaults to DefaultHeaders
	BOMPrefix bool     // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes series as time,value rows with six-decimal values.
func WriteCSV(w io.Writer, series domain.DaySeries, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	headers := options.Headers
	if len(headers) == 0 {
		headers = DefaultHeaders
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, p := range series {
		if err := writer.Write([]string{p.Time, FormatValue(p.Value)}); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
