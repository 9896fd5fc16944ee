package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorType represents the kind of failure. The set is closed so callers can
// tell "no data" from "bad input" from "bad source" without reading messages.
type ErrorType string

const (
	// ErrTypeSourceNotFound means the data source file does not exist.
	ErrTypeSourceNotFound ErrorType = "SOURCE_NOT_FOUND"
	// ErrTypeSourceInvalid means the file exists but is not a readable workbook.
	ErrTypeSourceInvalid ErrorType = "SOURCE_INVALID"
	// ErrTypeSheetNotFound means a sheet selector did not resolve to a sheet.
	ErrTypeSheetNotFound ErrorType = "SHEET_NOT_FOUND"
	// ErrTypeColumnMissing means a mapped column is absent from the sheet.
	ErrTypeColumnMissing ErrorType = "COLUMN_MISSING"
	// ErrTypeDateUnparseable means the caller-supplied target date is malformed.
	ErrTypeDateUnparseable ErrorType = "DATE_UNPARSEABLE"
	// ErrTypeDataUnparseable means no row of the datetime column could be parsed.
	ErrTypeDataUnparseable ErrorType = "DATA_UNPARSEABLE"
	ErrTypeValidation      ErrorType = "VALIDATION"
	ErrTypeConfig          ErrorType = "CONFIG"
	ErrTypeUnknown         ErrorType = "UNKNOWN"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError of the same type. A bare
// &AppError{Type: X} works as a sentinel for errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Type == e.Type && t.Message == "" && t.Cause == nil
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// TypeOf returns the ErrorType carried by err, or ErrTypeUnknown.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrTypeUnknown
}

// MessageOf returns the human-readable part of err: the AppError message
// without its type prefix or cause, or err.Error() for other errors.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// IsType reports whether err carries the given ErrorType.
func IsType(err error, errType ErrorType) bool {
	return err != nil && TypeOf(err) == errType
}

// Sentinels usable with errors.Is.
var (
	ErrSourceNotFound  = &AppError{Type: ErrTypeSourceNotFound}
	ErrSourceInvalid   = &AppError{Type: ErrTypeSourceInvalid}
	ErrSheetNotFound   = &AppError{Type: ErrTypeSheetNotFound}
	ErrColumnMissing   = &AppError{Type: ErrTypeColumnMissing}
	ErrDateUnparseable = &AppError{Type: ErrTypeDateUnparseable}
	ErrDataUnparseable = &AppError{Type: ErrTypeDataUnparseable}
)

// NewSourceNotFoundError reports a missing data source.
func NewSourceNotFoundError(path string, cause error) *AppError {
	return NewAppError(ErrTypeSourceNotFound, fmt.Sprintf("data source not found: %s", path), cause).
		WithContext("path", path)
}

// NewSourceInvalidError reports a data source that exists but cannot be read as a workbook.
func NewSourceInvalidError(path string, cause error) *AppError {
	return NewAppError(ErrTypeSourceInvalid, fmt.Sprintf("data source is not a readable workbook: %s", path), cause).
		WithContext("path", path)
}

// NewSheetNotFoundError reports a selector that does not resolve, listing the
// sheets that do exist.
func NewSheetNotFoundError(selector string, available []string) *AppError {
	return NewAppError(ErrTypeSheetNotFound,
		fmt.Sprintf("sheet %s not found; available sheets: [%s]", selector, strings.Join(available, ", ")), nil).
		WithContext("selector", selector).
		WithContext("available", available)
}

// NewColumnMissingError enumerates required vs. present columns.
func NewColumnMissingError(required, present []string) *AppError {
	missing := missingColumns(required, present)
	return NewAppError(ErrTypeColumnMissing,
		fmt.Sprintf("columns not found: required [%s], missing [%s], present [%s]",
			strings.Join(required, ", "), strings.Join(missing, ", "), strings.Join(present, ", ")), nil).
		WithContext("required", required).
		WithContext("missing", missing).
		WithContext("present", present)
}

// NewDateUnparseableError reports a malformed target date.
func NewDateUnparseableError(input string, cause error) *AppError {
	return NewAppError(ErrTypeDateUnparseable, fmt.Sprintf("date %q could not be parsed; use YYYY-MM-DD", input), cause).
		WithContext("input", input)
}

// NewDataUnparseableError reports a datetime column where no row parsed.
func NewDataUnparseableError(column string, rows int) *AppError {
	return NewAppError(ErrTypeDataUnparseable, fmt.Sprintf("date column %q could not be parsed", column), nil).
		WithContext("column", column).
		WithContext("rows", rows)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

func missingColumns(required, present []string) []string {
	have := make(map[string]struct{}, len(present))
	for _, p := range present {
		have[p] = struct{}{}
	}
	var missing []string
	for _, r := range required {
		if _, ok := have[r]; !ok {
			missing = append(missing, r)
		}
	}
	sort.Strings(missing)
	return missing
}
