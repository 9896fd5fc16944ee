package exporter

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"loadpv/pkg/contracts/domain"
)

const (
	seriesSheet = "Series"
	infoSheet   = "Info"
)

// BuildXLSX writes the series to a workbook. Values are stored as numbers;
// a second sheet records where the series came from.
func BuildXLSX(meta domain.DatasetMeta, series domain.DaySeries) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", seriesSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(infoSheet); err != nil {
		return nil, fmt.Errorf("failed to add info sheet: %w", err)
	}

	header := make([]interface{}, len(DefaultHeaders))
	for i, h := range DefaultHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(seriesSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, p := range series {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(seriesSheet, cell, &[]interface{}{p.Time, p.Value}); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	info := [][]interface{}{
		{"Dataset", meta.Title},
		{"Village", meta.Village},
		{"Date", meta.Date},
		{"Unit", meta.Unit},
		{"Points", len(series)},
	}
	for i, row := range info {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(infoSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
