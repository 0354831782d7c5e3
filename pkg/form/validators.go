package form

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// Validator checks one field's value.
type Validator interface {
	// Validate checks if the value is valid.
	// Returns nil if valid, or an error with a message if invalid.
	Validate(value string) error
}

// ValidatorFunc is a function that implements Validator.
type ValidatorFunc func(value string) error

func (f ValidatorFunc) Validate(value string) error {
	return f(value)
}

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// Required validates that the value is non-empty after trimming whitespace.
func Required(msg string) Validator {
	if msg == "" {
		msg = "This field is required"
	}
	return ValidatorFunc(func(value string) error {
		if strings.TrimSpace(value) == "" {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// MinLength validates that the value has at least n characters.
func MinLength(n int, msg string) Validator {
	if msg == "" {
		msg = fmt.Sprintf("Must be at least %d characters", n)
	}
	return ValidatorFunc(func(value string) error {
		if value == "" {
			return nil // Let Required handle empty values
		}
		if len([]rune(value)) < n {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// MaxLength validates that the value has at most n characters.
func MaxLength(n int, msg string) Validator {
	if msg == "" {
		msg = fmt.Sprintf("Must be at most %d characters", n)
	}
	return ValidatorFunc(func(value string) error {
		if len([]rune(value)) > n {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// Pattern validates that the value matches the given regular expression.
func Pattern(pattern string, msg string) Validator {
	re := regexp.MustCompile(pattern)
	if msg == "" {
		msg = "Invalid format"
	}
	return ValidatorFunc(func(value string) error {
		if value == "" {
			return nil
		}
		if !re.MatchString(value) {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// emailPattern requires @ and a dotted domain part. Basic sanity check, not
// full RFC 5322.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email validates that the value is a valid email address.
func Email(msg string) Validator {
	if msg == "" {
		msg = "Invalid email address"
	}
	return ValidatorFunc(func(value string) error {
		if value == "" {
			return nil
		}
		if !emailPattern.MatchString(value) {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// URLField validates that the value parses as an absolute URL.
func URLField(msg string) Validator {
	if msg == "" {
		msg = "Invalid URL"
	}
	return ValidatorFunc(func(value string) error {
		if value == "" {
			return nil
		}
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// Alpha validates that the value contains only letters.
func Alpha(msg string) Validator {
	if msg == "" {
		msg = "Must contain only letters"
	}
	return ValidatorFunc(func(value string) error {
		for _, r := range value {
			if !unicode.IsLetter(r) {
				return ValidationError{Message: msg}
			}
		}
		return nil
	})
}

// AlphaNumeric validates that the value contains only letters and digits.
func AlphaNumeric(msg string) Validator {
	if msg == "" {
		msg = "Must contain only letters and numbers"
	}
	return ValidatorFunc(func(value string) error {
		for _, r := range value {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return ValidationError{Message: msg}
			}
		}
		return nil
	})
}

// Numeric validates that the value contains only digits.
func Numeric(msg string) Validator {
	if msg == "" {
		msg = "Must contain only numbers"
	}
	return ValidatorFunc(func(value string) error {
		for _, r := range value {
			if !unicode.IsDigit(r) {
				return ValidationError{Message: msg}
			}
		}
		return nil
	})
}

// Custom creates a validator from a custom function.
func Custom(fn func(value string) error) Validator {
	return ValidatorFunc(fn)
}

// All combines validators; the first failure wins.
func All(validators ...Validator) Validator {
	return ValidatorFunc(func(value string) error {
		for _, v := range validators {
			if err := v.Validate(value); err != nil {
				return err
			}
		}
		return nil
	})
}
