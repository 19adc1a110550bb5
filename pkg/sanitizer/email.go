package sanitizer

import (
	"regexp"
	"strings"
)

var consecutiveDots = regexp.MustCompile(`\.{2,}`)

// NormalizeEmail lowercases and trims an email address and collapses
// consecutive dots in the local part. Strings that do not look like an
// address are returned trimmed and lowercased; validation is a separate
// concern.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return email
	}

	local = consecutiveDots.ReplaceAllString(local, ".")
	local = strings.Trim(local, ".")

	return local + "@" + domain
}

// EmailDomain returns the domain part of an address, or "" when the input
// is not an address.
func EmailDomain(email string) string {
	_, domain, ok := strings.Cut(NormalizeEmail(email), "@")
	if !ok {
		return ""
	}
	return domain
}
