// Package exporter turns a day series into downloadable files: CSV with
// six-decimal values, an XLSX workbook via excelize, a PDF table via gofpdf
// and, through the chart package, a PNG line chart.
//
// Example usage:
//
//	data, err := exporter.Render(api.ExportXLSX, result.DatasetMeta, result.Series, exporter.RenderOptions{})
//	name := exporter.FileName(result.DatasetMeta, api.ExportXLSX)
package exporter
