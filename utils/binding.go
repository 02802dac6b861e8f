package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"crm-api/errs"
)

// BindingError converts a gin binding failure into a field-level validation error.
func BindingError(err error) error {
	ve := &errs.ValidationError{}

	var fieldErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			ve.Add(jsonFieldName(fe), describeTag(fe))
		}
	case errors.As(err, &typeErr):
		ve.Add(typeErr.Field, fmt.Sprintf("must be a %s", typeErr.Type.String()))
	case errors.As(err, &syntaxErr):
		ve.Add("body", "malformed JSON")
	default:
		ve.Add("body", err.Error())
	}
	return ve
}

func jsonFieldName(fe validator.FieldError) string {
	return snakeCase(fe.Field())
}

// snakeCase converts a Go field name to its json name; acronyms stay together
// (CompanyID -> company_id).
func snakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1]))) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "mobile":
		return "must be a valid mobile number"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "is invalid"
	}
}
