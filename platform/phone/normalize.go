// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "FI"

// finnishRegex matches national Finnish numbers: a +358 or 0 prefix, a
// non-zero significant digit, then 7-9 more digits. Separators must be
// stripped before matching.
var finnishRegex = regexp.MustCompile(`^(\+358|0)[1-9]\d{7,9}$`)

// Strip removes the separators (spaces and hyphens) callers are allowed
// to type. The stripped form is what gets validated and stored.
func Strip(input string) string {
	cleaned := strings.ReplaceAll(strings.TrimSpace(input), " ", "")
	return strings.ReplaceAll(cleaned, "-", "")
}

// IsValidFinnish reports whether the input is a plausible Finnish phone
// number after separator stripping.
func IsValidFinnish(input string) bool {
	return finnishRegex.MatchString(Strip(input))
}

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns
// the stripped input so storage stays deterministic.
func NormalizeE164(input string) string {
	stripped := Strip(input)
	if stripped == "" {
		return stripped
	}

	number, err := phonenumbers.Parse(stripped, defaultRegion)
	if err != nil {
		return stripped
	}

	if !phonenumbers.IsValidNumber(number) {
		return stripped
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}
