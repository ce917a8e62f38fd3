package domain

import "regexp"

// urlPattern matches URL-shaped substrings, including any embedded
// userinfo. Solver output frequently echoes index URLs carrying credentials.
var urlPattern = regexp.MustCompile(`(?:https?|git|ssh)://[^\s"'<>]+`)

// RedactURLs replaces every URL-shaped substring in s with a placeholder.
// Error messages surfaced to callers must never contain raw credentials.
func RedactURLs(s string) string {
	return urlPattern.ReplaceAllString(s, "<redacted>")
}
