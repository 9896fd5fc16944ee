package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	apperrors "loadpv/internal/errors"
)

type excelSource struct {
	path     string
	file     *excelize.File
	date1904 bool
}

func openExcelize(path string) (Source, error) {
	f, err := excelize.OpenFile(path, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewSourceInvalidError(path, err)
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	return &excelSource{path: path, file: f, date1904: date1904}, nil
}

func (s *excelSource) SheetNames() []string {
	return s.file.GetSheetList()
}

func (s *excelSource) Sheet(sel Selector) (*Sheet, error) {
	name, err := sel.resolve(s.SheetNames())
	if err != nil {
		return nil, err
	}

	rows, err := s.file.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewSourceInvalidError(s.path, fmt.Errorf("read sheet %q: %w", name, err))
	}
	return NewSheet(name, rows, s.date1904), nil
}

func (s *excelSource) Close() error {
	return s.file.Close()
}
