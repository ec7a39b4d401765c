// Package redact strips credentials from text before it is logged or printed.
// Driver errors and configuration errors may echo the connection string they
// were given, password included.
package redact

import "regexp"

// Placeholders substituted for redacted text.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	KeyPlaceholder        = "[REDACTED_KEY]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

var rules = []rule{
	// userinfo of a connection URL; the scheme and host stay readable
	{
		pattern:     regexp.MustCompile(`(?i)\b([a-z][a-z0-9+.-]*://)[^@/\s]+@`),
		replacement: "${1}" + CredentialPlaceholder + "@",
	},
	// libpq keyword form: password=secret or password='secret'
	{
		pattern:     regexp.MustCompile(`(?i)\b(password|passwd|pwd)\s*=\s*('[^']*'|"[^"]*"|[^\s&;]+)`),
		replacement: "${1}=" + CredentialPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(api[_-]?key|token|secret)(\s*[:=]\s*)[A-Za-z0-9_\-.~+/]{8,}`),
		replacement: "${1}${2}" + KeyPlaceholder,
	},
}

// String redacts credentials from s.
func String(s string) string {
	if s == "" {
		return s
	}
	for _, r := range rules {
		s = r.pattern.ReplaceAllString(s, r.replacement)
	}
	return s
}

// Error redacts credentials from err.Error(). A nil error yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
