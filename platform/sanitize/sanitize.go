// Package sanitize provides text sanitization utilities to prevent XSS attacks,
// plus best-effort heuristics for flagging injection-shaped input.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	// htmlTagRegex matches HTML tags
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)
	// jsProtoRegex matches javascript: protocol references
	jsProtoRegex = regexp.MustCompile(`(?i)javascript:`)
	// eventAttrRegex matches inline event handler attributes like onclick=
	eventAttrRegex = regexp.MustCompile(`(?i)on\w+\s*=`)
)

// StripHTML removes all HTML tags from a string, making it safe for text-only display.
// This is a defense-in-depth measure; frontend should also escape output.
func StripHTML(s string) string {
	// Remove HTML tags
	result := htmlTagRegex.ReplaceAllString(s, "")
	// Decode common HTML entities
	result = strings.ReplaceAll(result, "&lt;", "<")
	result = strings.ReplaceAll(result, "&gt;", ">")
	result = strings.ReplaceAll(result, "&amp;", "&")
	result = strings.ReplaceAll(result, "&quot;", "\"")
	result = strings.ReplaceAll(result, "&#39;", "'")
	// Re-strip after entity decode to catch encoded tags
	result = htmlTagRegex.ReplaceAllString(result, "")
	result = jsProtoRegex.ReplaceAllString(result, "")
	result = eventAttrRegex.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// Text sanitizes a string for safe text storage by stripping HTML
// and normalizing whitespace. Use for user-provided text fields like
// messages, names, and notes.
func Text(s string) string {
	return StripHTML(s)
}

// TextPtr is a helper for optional string pointers
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	result := Text(*s)
	return &result
}

// Escape entity-encodes the characters that matter for HTML contexts.
// More aggressive than StripHTML, suitable for user-generated content that
// gets embedded in notification emails.
func Escape(s string) string {
	if s == "" {
		return ""
	}
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&#x27;",
	)
	return strings.TrimSpace(replacer.Replace(s))
}

// sqlPatterns are injection-shaped substrings. Matching one does not prove
// malice; plain Finnish prose can trip them.
var sqlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\bOR\b|\bAND\b).*[=<>]`),
	regexp.MustCompile(`(?i)UNION.*SELECT`),
	regexp.MustCompile(`(?i)INSERT.*INTO`),
	regexp.MustCompile(`(?i)UPDATE.*SET`),
	regexp.MustCompile(`(?i)DELETE.*FROM`),
	regexp.MustCompile(`(?i)DROP.*TABLE`),
	regexp.MustCompile(`(?i)CREATE.*TABLE`),
	regexp.MustCompile(`(?i)ALTER.*TABLE`),
	regexp.MustCompile(`(?i)EXEC.*\(`),
	regexp.MustCompile(`(?i)EXECUTE.*\(`),
	regexp.MustCompile(`--`),
	regexp.MustCompile(`/\*`),
	regexp.MustCompile(`(?i)xp_`),
	regexp.MustCompile(`(?i)sp_`),
}

// xssPatterns are script-injection-shaped substrings.
var xssPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
	regexp.MustCompile(`(?i)<iframe`),
	regexp.MustCompile(`(?i)<embed`),
	regexp.MustCompile(`(?i)<object`),
	regexp.MustCompile(`(?i)eval\(`),
	regexp.MustCompile(`(?i)expression\(`),
}

// ContainsSQLInjection reports whether the input matches a SQL-injection-like
// pattern. Best-effort signal only; queries are parameterized regardless.
func ContainsSQLInjection(input string) bool {
	for _, pattern := range sqlPatterns {
		if pattern.MatchString(input) {
			return true
		}
	}
	return false
}

// ContainsXSS reports whether the input matches an XSS-like pattern.
func ContainsXSS(input string) bool {
	for _, pattern := range xssPatterns {
		if pattern.MatchString(input) {
			return true
		}
	}
	return false
}

// IsInputSafe returns true when the input trips neither heuristic.
// Treat a false result as a monitoring signal, not a hard block: well-formed
// input that merely resembles these patterns must still be accepted.
func IsInputSafe(input string) bool {
	if input == "" {
		return true
	}
	return !ContainsSQLInjection(input) && !ContainsXSS(input)
}
