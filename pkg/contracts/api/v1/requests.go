// Package api contains the request contracts of the viewer's HTTP API.
package api

// SeriesQuery holds the query parameters of /view and /api/series.
type SeriesQuery struct {
	Village string `json:"village" query:"village" validate:"required,max=128,printable"`
	Date    string `json:"date" query:"date" validate:"required,max=40"`
}

// DatasetQuery holds the query parameters of /api/series/{dataset}. Village
// is only required by datasets whose sheet follows the village.
type DatasetQuery struct {
	Village string `json:"village" query:"village" validate:"omitempty,max=128,printable"`
	Date    string `json:"date" query:"date" validate:"required,max=40"`
}

// ExportFormat names a downloadable rendering of a series.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
	ExportPDF  ExportFormat = "pdf"
	ExportPNG  ExportFormat = "png"
)

// ContentType returns the MIME type of the format.
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportCSV:
		return "text/csv; charset=utf-8"
	case ExportXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ExportPDF:
		return "application/pdf"
	case ExportPNG:
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

// Valid reports whether f is a known format.
func (f ExportFormat) Valid() bool {
	switch f {
	case ExportCSV, ExportXLSX, ExportPDF, ExportPNG:
		return true
	}
	return false
}
