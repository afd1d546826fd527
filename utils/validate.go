// utils/validate.go - Request validation helpers
package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs validator tags on a request struct.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail applies the validator email check plus a few stricter rules:
// RFC length caps and the dot placements the format check lets through.
func ValidEmail(email string) bool {
	if email == "" {
		return false
	}
	if len(email) > 254 {
		return false
	}

	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	if len(email[:at]) > 64 {
		return false
	}

	if strings.Contains(email, "..") {
		return false
	}
	if strings.HasPrefix(email, ".") || strings.HasSuffix(email, ".") {
		return false
	}

	return validate.Var(email, "email") == nil
}
