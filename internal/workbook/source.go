package workbook

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	apperrors "loadpv/internal/errors"
)

// Source is an opened workbook.
type Source interface {
	// SheetNames lists sheets in the order the workbook declares them.
	SheetNames() []string
	// Sheet loads the selected sheet.
	Sheet(sel Selector) (*Sheet, error)
	Close() error
}

// Opener opens a Source by path. Services take an Opener so tests can inject
// in-memory workbooks.
type Opener interface {
	Open(ctx context.Context, path string) (Source, error)
}

// FileOpener opens workbooks from the filesystem.
type FileOpener struct{}

// Open implements Opener. A cancelled context stops before any I/O.
func (FileOpener) Open(ctx context.Context, path string) (Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path)
}

// Open opens the workbook at path, choosing the reader by extension.
func Open(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewSourceNotFoundError(path, err)
		}
		return nil, apperrors.NewSourceInvalidError(path, err)
	}
	if info.IsDir() {
		return nil, apperrors.NewSourceInvalidError(path, errors.New("path is a directory"))
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xls":
		return openXLS(path)
	default:
		return openExcelize(path)
	}
}

// ListSheets returns the sheet names of the workbook at path.
func ListSheets(path string) ([]string, error) {
	src, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return src.SheetNames(), nil
}

// LoadSheet opens the workbook at path and loads one sheet.
func LoadSheet(path string, sel Selector) (*Sheet, error) {
	src, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return src.Sheet(sel)
}
