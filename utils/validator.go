// utils/validator.go - Input validation
package utils

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	mobileRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateMobile accepts 7-15 digits with an optional leading +. Spaces and dashes are
// ignored.
func ValidateMobile(mobile string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(mobile)
	return mobileRegex.MatchString(cleaned)
}

// ValidatePassword checks password strength
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}

	return true, ""
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}

// SanitizePtr applies SanitizeInput to an optional field.
func SanitizePtr(input *string) *string {
	if input == nil {
		return nil
	}
	v := SanitizeInput(*input)
	return &v
}

// RegisterBindingValidators adds the custom tags used in request structs to gin's
// validator engine.
func RegisterBindingValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return ValidateMobile(fl.Field().String())
	})
}
