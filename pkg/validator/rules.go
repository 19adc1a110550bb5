package validator

import (
	"net/mail"
	"strings"
	"unicode"
)

// Password length bounds. The upper bound stays under bcrypt's 72-byte
// input limit.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 64
)

// Required fails on empty or whitespace-only values.
func Required(field, value string) Rule {
	return Rule{
		Field:   field,
		Message: "is required",
		Check:   func() bool { return strings.TrimSpace(value) != "" },
	}
}

// ValidEmail accepts addresses parseable by net/mail with a dotted domain.
func ValidEmail(field, value string) Rule {
	return Rule{
		Field:   field,
		Message: "must be a valid email address",
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}
			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value {
				return false
			}
			_, domain, ok := strings.Cut(value, "@")
			return ok && strings.Contains(domain, ".")
		},
	}
}

// StrongPassword enforces length bounds and at least two character classes
// (lower, upper, digit, other).
func StrongPassword(field, value string) Rule {
	return Rule{
		Field:   field,
		Message: "must be 8-64 characters with at least two character classes",
		Check: func() bool {
			if len(value) < MinPasswordLength || len(value) > MaxPasswordLength {
				return false
			}
			var lower, upper, digit, other bool
			for _, r := range value {
				switch {
				case unicode.IsLower(r):
					lower = true
				case unicode.IsUpper(r):
					upper = true
				case unicode.IsDigit(r):
					digit = true
				default:
					other = true
				}
			}
			classes := 0
			for _, ok := range []bool{lower, upper, digit, other} {
				if ok {
					classes++
				}
			}
			return classes >= 2
		},
	}
}

// ExactLength fails unless value has exactly n bytes.
func ExactLength(field, value string, n int) Rule {
	return Rule{
		Field:   field,
		Message: "has wrong length",
		Check:   func() bool { return len(value) == n },
	}
}
