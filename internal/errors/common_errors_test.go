package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without cause",
			err:      NewAppError(ErrTypeSheetNotFound, "sheet missing", nil),
			expected: "[SHEET_NOT_FOUND] sheet missing",
		},
		{
			name:     "with cause",
			err:      NewAppError(ErrTypeSourceInvalid, "bad workbook", fmt.Errorf("zip: not a valid zip file")),
			expected: "[SOURCE_INVALID] bad workbook: zip: not a valid zip file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("open data/load.xlsx: no such file or directory")
	err := NewSourceNotFoundError("data/load.xlsx", cause)

	assert.Equal(t, cause, errors.Unwrap(err))
	assert.True(t, errors.Is(err, cause))
}

func TestAppError_IsSentinel(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		want     bool
	}{
		{"source not found", NewSourceNotFoundError("x.xlsx", nil), ErrSourceNotFound, true},
		{"wrapped sheet not found", fmt.Errorf("load: %w", NewSheetNotFoundError(`"Z"`, []string{"A"})), ErrSheetNotFound, true},
		{"different type", NewDateUnparseableError("nope", nil), ErrDataUnparseable, false},
		{"plain error", fmt.Errorf("boom"), ErrSourceInvalid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.sentinel))
		})
	}
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"nil", nil, ErrTypeUnknown},
		{"plain", fmt.Errorf("boom"), ErrTypeUnknown},
		{"direct", NewDataUnparseableError("datetime", 3), ErrTypeDataUnparseable},
		{"wrapped twice", fmt.Errorf("a: %w", fmt.Errorf("b: %w", NewColumnMissingError(nil, nil))), ErrTypeColumnMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeOf(tt.err))
		})
	}

	assert.True(t, IsType(NewConfigError("bad", nil), ErrTypeConfig))
	assert.False(t, IsType(nil, ErrTypeUnknown))
}

func TestAppError_WithContext_NilContext(t *testing.T) {
	err := &AppError{Type: ErrTypeValidation, Message: "x"}
	err.WithContext("field", "date")

	require.NotNil(t, err.Context)
	assert.Equal(t, "date", err.Context["field"])
}

func TestNewColumnMissingError(t *testing.T) {
	err := NewColumnMissingError([]string{"datetime", "load"}, []string{"timestamp", "load"})

	assert.Equal(t, ErrTypeColumnMissing, err.Type)
	assert.Equal(t, []string{"datetime", "load"}, err.Context["required"])
	assert.Equal(t, []string{"datetime"}, err.Context["missing"])
	assert.Equal(t, []string{"timestamp", "load"}, err.Context["present"])
	assert.Contains(t, err.Message, "required [datetime, load]")
	assert.Contains(t, err.Message, "present [timestamp, load]")
}

func TestNewSheetNotFoundError(t *testing.T) {
	err := NewSheetNotFoundError(`"Zeta"`, []string{"Alpha", "Beta"})

	assert.Equal(t, ErrTypeSheetNotFound, err.Type)
	assert.Contains(t, err.Message, `sheet "Zeta" not found`)
	assert.Contains(t, err.Message, "[Alpha, Beta]")
	assert.Equal(t, []string{"Alpha", "Beta"}, err.Context["available"])
}

func TestDomainConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		contains string
	}{
		{"source not found", NewSourceNotFoundError("data/pv.xlsx", nil), ErrTypeSourceNotFound, "data/pv.xlsx"},
		{"source invalid", NewSourceInvalidError("data/pv.xlsx", fmt.Errorf("bad zip")), ErrTypeSourceInvalid, "not a readable workbook"},
		{"date unparseable", NewDateUnparseableError("31/02", nil), ErrTypeDateUnparseable, `"31/02"`},
		{"data unparseable", NewDataUnparseableError("datetime", 4), ErrTypeDataUnparseable, "could not be parsed"},
		{"validation", NewAppValidationError("village is required"), ErrTypeValidation, "village is required"},
		{"config", NewConfigError("data dir missing", nil), ErrTypeConfig, "data dir missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Contains(t, tt.err.Error(), tt.contains)
		})
	}
}

func TestMessageOf(t *testing.T) {
	wrapped := fmt.Errorf("load dataset: %w", NewDataUnparseableError("dt", 3))
	assert.Equal(t, `date column "dt" could not be parsed`, MessageOf(wrapped))
	assert.Equal(t, "plain", MessageOf(errors.New("plain")))
}
