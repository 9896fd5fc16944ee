package workbook

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "loadpv/internal/errors"
)

func TestMemorySource(t *testing.T) {
	src := NewMemorySource(
		NewSheet("Zeta", [][]string{{"datetime", "load"}, {"2024-01-01 00:00", "1"}}, false),
		NewSheet("Alpha", [][]string{{"datetime", "load"}}, false),
	)

	assert.Equal(t, []string{"Zeta", "Alpha"}, src.SheetNames())

	sheet, err := src.Sheet(ByIndex(0))
	require.NoError(t, err)
	sheet.Rows[0][1] = "mutated"

	again, err := src.Sheet(ByName("Zeta"))
	require.NoError(t, err)
	assert.Equal(t, "1", again.Rows[0][1])

	_, err = src.Sheet(ByName("Nope"))
	assert.ErrorIs(t, err, apperrors.ErrSheetNotFound)
	assert.NoError(t, src.Close())
}

func TestMemoryOpener(t *testing.T) {
	opener := MemoryOpener{"load.xlsx": NewMemorySource()}

	src, err := opener.Open(context.Background(), "load.xlsx")
	require.NoError(t, err)
	assert.Empty(t, src.SheetNames())

	_, err = opener.Open(context.Background(), "pv.xlsx")
	assert.ErrorIs(t, err, apperrors.ErrSourceNotFound)
}
