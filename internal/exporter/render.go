package exporter

import (
	"bytes"
	"fmt"

	"loadpv/internal/chart"
	api "loadpv/pkg/contracts/api/v1"
	"loadpv/pkg/contracts/domain"
)

// RenderOptions configures Render.
type RenderOptions struct {
	BOMPrefix   bool
	ChartWidth  int
	ChartHeight int
}

// Render produces the series in the requested download format.
func Render(format api.ExportFormat, meta domain.DatasetMeta, series domain.DaySeries, opts RenderOptions) ([]byte, error) {
	switch format {
	case api.ExportCSV:
		var buf bytes.Buffer
		if err := WriteCSV(&buf, series, WriteOptions{BOMPrefix: opts.BOMPrefix}); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case api.ExportXLSX:
		return BuildXLSX(meta, series)
	case api.ExportPDF:
		return BuildPDF(meta, series)
	case api.ExportPNG:
		return chart.RenderPNG(meta, series, opts.ChartWidth, opts.ChartHeight)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}
