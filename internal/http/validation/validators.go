// Package validation holds the field rule chains used by the console forms.
// Every rule is a Validator closure that returns an error message or "".
// Only NotEmpty and Required reject empty input; every format rule accepts it,
// so a field is required exactly when its chain contains one of those two.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
)

// Validator is a function that validates a string value and returns an error message if invalid.
type Validator func(v string) string

// Chain composes validators left to right and returns the first failure.
func Chain(validators ...Validator) Validator {
	return func(v string) string {
		for _, fn := range validators {
			if msg := fn(v); msg != "" {
				return msg
			}
		}
		return ""
	}
}

// NotEmpty validates that a field holds something other than whitespace.
func NotEmpty(fieldName string) Validator {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return fieldName + " is required."
		}
		return ""
	}
}

// NotValue treats a placeholder option (such as "category") as an empty selection.
func NotValue(fieldName, placeholder string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" || v == placeholder {
			return fieldName + " is required."
		}
		return ""
	}
}

// Required validates that a field is not empty and does not exceed maxLen characters.
// Uses rune count for proper Unicode support.
func Required(fieldName string, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required."
		}
		if utf8.RuneCountInString(v) > maxLen {
			return fmt.Sprintf("%s cannot exceed %d characters.", fieldName, maxLen)
		}
		return ""
	}
}

// Email validates the local@domain.tld shape. Empty input passes.
func Email(fieldName string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		at := strings.LastIndex(v, "@")
		if at <= 0 || !strings.Contains(v[at+1:], ".") || !govalidator.IsEmail(v) {
			return fieldName + " must be a valid email address."
		}
		return ""
	}
}

// Pattern validates that a field matches the provided regular expression. Empty input passes.
func Pattern(fieldName string, re *regexp.Regexp) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		if !re.MatchString(v) {
			return fieldName + " has an invalid format."
		}
		return ""
	}
}

// OneOf validates that a field matches one of the provided options (case-insensitive).
// Empty input passes.
func OneOf(fieldName string, options []string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		for _, opt := range options {
			if strings.EqualFold(v, opt) {
				return ""
			}
		}
		return fmt.Sprintf("%s must be one of: %s", fieldName, strings.Join(options, ", "))
	}
}

// Integer validates that a field is a whole number. Empty input passes.
func Integer(fieldName string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		if _, err := strconv.ParseInt(v, 10, 64); err != nil {
			return fieldName + " must be a whole number."
		}
		return ""
	}
}
