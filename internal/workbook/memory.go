package workbook

import (
	"context"

	apperrors "loadpv/internal/errors"
)

// MemorySource is a Source backed by sheets held in memory.
type MemorySource struct {
	sheets []*Sheet
}

// NewMemorySource builds a source whose declared order is the argument order.
func NewMemorySource(sheets ...*Sheet) *MemorySource {
	return &MemorySource{sheets: sheets}
}

// SheetNames implements Source.
func (m *MemorySource) SheetNames() []string {
	names := make([]string, len(m.sheets))
	for i, s := range m.sheets {
		names[i] = s.Name
	}
	return names
}

// Sheet implements Source. The returned sheet is a copy.
func (m *MemorySource) Sheet(sel Selector) (*Sheet, error) {
	name, err := sel.resolve(m.SheetNames())
	if err != nil {
		return nil, err
	}
	for _, s := range m.sheets {
		if s.Name == name {
			return cloneSheet(s), nil
		}
	}
	return nil, apperrors.NewSheetNotFoundError(sel.String(), m.SheetNames())
}

// Close implements Source.
func (m *MemorySource) Close() error { return nil }

// MemoryOpener serves MemorySources by path. Unknown paths are
// SOURCE_NOT_FOUND, matching FileOpener.
type MemoryOpener map[string]*MemorySource

// Open implements Opener.
func (o MemoryOpener) Open(ctx context.Context, path string) (Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src, ok := o[path]
	if !ok {
		return nil, apperrors.NewSourceNotFoundError(path, nil)
	}
	return src, nil
}

func cloneSheet(s *Sheet) *Sheet {
	out := &Sheet{
		Name:     s.Name,
		Columns:  append([]string(nil), s.Columns...),
		Rows:     make([][]string, len(s.Rows)),
		Date1904: s.Date1904,
	}
	for i, row := range s.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}
