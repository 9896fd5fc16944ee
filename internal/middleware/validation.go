package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"

	apperrors "loadpv/internal/errors"
)

// QueryValidator decodes query parameters into tagged structs and validates
// them with go-playground/validator.
type QueryValidator struct {
	decoder   *form.Decoder
	validator *validator.Validate
	logger    *slog.Logger
}

// NewQueryValidator creates a new query validator
func NewQueryValidator(logger *slog.Logger) *QueryValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterValidation("printable", isPrintable)

	// Report fields by their query parameter names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	decoder := form.NewDecoder()
	decoder.SetTagName("query")

	return &QueryValidator{
		decoder:   decoder,
		validator: v,
		logger:    logger.With(slog.String("component", "query_validator")),
	}
}

// Decode fills dst from r's trimmed query parameters by their `query` tags
// and validates the result. Parameters absent from the query leave their
// fields at the zero value for validation to report.
func (v *QueryValidator) Decode(r *http.Request, dst interface{}) error {
	if err := v.decoder.Decode(dst, trimValues(r.URL.Query())); err != nil {
		return fmt.Errorf("failed to decode query: %w", err)
	}
	if err := v.ValidateStruct(dst); err != nil {
		v.logger.DebugContext(r.Context(), "query validation failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

// ValidateStruct validates a struct and returns validation errors
func (v *QueryValidator) ValidateStruct(s interface{}) error {
	err := v.validator.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewAppValidationError(err.Error())
	}

	validationErrors := make([]apperrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		validationErrors = append(validationErrors, apperrors.ValidationError{
			Field:   fe.Field(),
			Message: formatValidationError(fe),
		})
	}
	return apperrors.NewValidationErrors(validationErrors)
}

func trimValues(values url.Values) url.Values {
	trimmed := make(url.Values, len(values))
	for key, vals := range values {
		out := make([]string, len(vals))
		for i, val := range vals {
			out[i] = strings.TrimSpace(val)
		}
		trimmed[key] = out
	}
	return trimmed
}

// formatValidationError formats validation error messages
func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "printable":
		return fmt.Sprintf("%s must not contain control characters", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

// isPrintable rejects control characters, which never appear in sheet names
// or dates.
func isPrintable(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}
