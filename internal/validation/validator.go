// Package validation wraps go-playground/validator with a shared instance,
// the custom tags of the lure domain and readable error messages.
//
// Field names in messages are the JSON names, so they match what API callers send.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/okian/lurespread/internal/domain/model"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is one field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// RequestValidationError collects every failing field of a struct.
type RequestValidationError struct {
	errors []FieldError
}

// Errors returns the failing fields.
func (ve *RequestValidationError) Errors() []FieldError {
	return ve.errors
}

// Messages returns one readable sentence per failing field.
func (ve *RequestValidationError) Messages() []string {
	out := make([]string, len(ve.errors))
	for i, e := range ve.errors {
		out[i] = e.Message
	}
	return out
}

func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	return strings.Join(ve.Messages(), "; ")
}

// GetValidator returns the shared validator. Safe for concurrent use.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonName)
		_ = validate.RegisterValidation("species", isCanonicalSpecies)
	})
	return validate
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	default:
		return name
	}
}

func isCanonicalSpecies(fl validator.FieldLevel) bool {
	return model.Species(fl.Field().String()).IsCanonical()
}

// ValidateStruct validates s and returns nil or the collected field errors.
func ValidateStruct(s any) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{errors: []FieldError{{
			Field:   "unknown",
			Tag:     "unknown",
			Message: err.Error(),
		}}}
	}

	out := make([]FieldError, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: translate(fe),
		}
	}
	return &RequestValidationError{errors: out}
}

var plainMessages = map[string]string{
	"required": "%s is required",
	"species":  "%s is not a known species",
}

var paramMessages = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
	"min":   "%s must be at least %s",
	"max":   "%s must be at most %s",
}

func translate(fe validator.FieldError) string {
	if tmpl, ok := plainMessages[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, fe.Field())
	}
	if tmpl, ok := paramMessages[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}
