package workbook

import (
	"fmt"

	"github.com/extrame/xls"

	apperrors "loadpv/internal/errors"
)

type xlsSource struct {
	path  string
	book  *xls.WorkBook
	names []string
}

func openXLS(path string) (src Source, err error) {
	// the BIFF parser panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			src = nil
			err = apperrors.NewSourceInvalidError(path, fmt.Errorf("xls parse: %v", r))
		}
	}()

	book, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, apperrors.NewSourceInvalidError(path, err)
	}

	names := make([]string, 0, book.NumSheets())
	for i := 0; i < book.NumSheets(); i++ {
		if sheet := book.GetSheet(i); sheet != nil {
			names = append(names, sheet.Name)
		}
	}
	return &xlsSource{path: path, book: book, names: names}, nil
}

func (s *xlsSource) SheetNames() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s *xlsSource) Sheet(sel Selector) (sheet *Sheet, err error) {
	name, err := sel.resolve(s.names)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			sheet = nil
			err = apperrors.NewSourceInvalidError(s.path, fmt.Errorf("read sheet %q: %v", name, r))
		}
	}()

	var ws *xls.WorkSheet
	for i := 0; i < s.book.NumSheets(); i++ {
		if candidate := s.book.GetSheet(i); candidate != nil && candidate.Name == name {
			ws = candidate
			break
		}
	}
	if ws == nil {
		return nil, apperrors.NewSheetNotFoundError(sel.String(), s.names)
	}

	raw := make([][]string, 0, int(ws.MaxRow)+1)
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := ws.Row(i)
		if row == nil {
			raw = append(raw, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			cells[c] = row.Col(c)
		}
		raw = append(raw, cells)
	}

	// extrame/xls renders dated cells as text, so the date system never
	// reaches the extractor.
	return NewSheet(name, trimTrailingBlank(raw), false), nil
}

func (s *xlsSource) Close() error {
	return nil
}

func trimTrailingBlank(raw [][]string) [][]string {
	end := len(raw)
	for end > 0 && isBlankRow(raw[end-1]) {
		end--
	}
	return raw[:end]
}
