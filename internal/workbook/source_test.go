package workbook

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "loadpv/internal/errors"
	"loadpv/internal/shared/testutil"
)

func TestListSheets(t *testing.T) {
	path := testutil.WriteWorkbook(t, "villages.xlsx",
		testutil.LoadSheetFixture("Zeta"),
		testutil.LoadSheetFixture("Alpha"),
		testutil.LoadSheetFixture("Mid"),
	)

	names, err := ListSheets(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, names)
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()
	notWorkbook := filepath.Join(dir, "notes.xlsx")
	require.NoError(t, os.WriteFile(notWorkbook, []byte("just text"), 0o644))
	badXLS := filepath.Join(dir, "legacy.xls")
	require.NoError(t, os.WriteFile(badXLS, []byte("not a compound document"), 0o644))

	tests := []struct {
		name     string
		path     string
		wantType apperrors.ErrorType
	}{
		{"missing file", filepath.Join(dir, "missing.xlsx"), apperrors.ErrTypeSourceNotFound},
		{"directory", dir, apperrors.ErrTypeSourceInvalid},
		{"text file with xlsx extension", notWorkbook, apperrors.ErrTypeSourceInvalid},
		{"corrupt xls", badXLS, apperrors.ErrTypeSourceInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ListSheets(tt.path)
			require.Error(t, err)
			assert.Equal(t, tt.wantType, apperrors.TypeOf(err))

			_, err = LoadSheet(tt.path, ByIndex(0))
			assert.Equal(t, tt.wantType, apperrors.TypeOf(err))
		})
	}
}

func TestLoadSheet(t *testing.T) {
	path := testutil.WriteWorkbook(t, "villages.xlsx",
		testutil.LoadSheetFixture("Beta"),
		testutil.SheetFixture{Name: "Alpha", Rows: [][]interface{}{
			{"datetime", "load"},
			{"2024-03-01 10:00", 7.5},
		}},
	)

	t.Run("by name", func(t *testing.T) {
		sheet, err := LoadSheet(path, ByName("Alpha"))
		require.NoError(t, err)
		assert.Equal(t, "Alpha", sheet.Name)
		assert.Equal(t, []string{"datetime", "load"}, sheet.Columns)
		assert.Equal(t, [][]string{{"2024-03-01 10:00", "7.5"}}, sheet.Rows)
	})

	t.Run("by index", func(t *testing.T) {
		sheet, err := LoadSheet(path, ByIndex(0))
		require.NoError(t, err)
		assert.Equal(t, "Beta", sheet.Name)
		assert.Equal(t, 3, sheet.Len())
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := LoadSheet(path, ByName("Gamma"))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSheetNotFound))
		assert.Contains(t, err.Error(), "Alpha")
	})

	t.Run("index out of range", func(t *testing.T) {
		for _, idx := range []int{2, -1} {
			_, err := LoadSheet(path, ByIndex(idx))
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSheetNotFound), "index %d", idx)
		}
	})
}

func TestLoadSheet_DateCellsAreSerials(t *testing.T) {
	path := testutil.WriteWorkbook(t, "serials.xlsx", testutil.SheetFixture{
		Name: "Data",
		Rows: [][]interface{}{
			{"datetime", "load"},
			{time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC), 1.25},
		},
	})

	sheet, err := LoadSheet(path, ByName("Data"))
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)

	serial, err := strconv.ParseFloat(sheet.Rows[0][0], 64)
	require.NoError(t, err)
	assert.InDelta(t, 45292.25, serial, 1e-6)
	assert.False(t, sheet.Date1904)
}

func TestLoadSheet_SkipsBlankRows(t *testing.T) {
	path := testutil.WriteWorkbook(t, "gaps.xlsx", testutil.SheetFixture{
		Name: "Data",
		Rows: [][]interface{}{
			{"datetime", "load"},
			{"2024-01-01 00:00", "1"},
			{nil, nil},
			{"2024-01-01 01:00", "2"},
		},
	})

	sheet, err := LoadSheet(path, ByIndex(0))
	require.NoError(t, err)
	assert.Equal(t, 2, sheet.Len())
}

func TestFileOpener_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FileOpener{}.Open(ctx, "whatever.xlsx")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSelector(t *testing.T) {
	assert.Equal(t, `"Alpha"`, ByName("Alpha").String())
	assert.Equal(t, "index 2", ByIndex(2).String())
	assert.Equal(t, ByName("Alpha"), SelectorFor("Alpha", 3))
	assert.Equal(t, ByIndex(3), SelectorFor("", 3))
}
