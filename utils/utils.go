package utils

import "strings"

// Slugify turns a display title into a URL segment: lowercase, runs of
// non-alphanumerics collapse to a single dash, no leading or trailing dash.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true // suppress a leading dash

	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// PrivacyMode controls how competitor names are rendered at the API boundary.
// The default is a deployment policy (PRIVACY_MODE), never part of the
// aggregation core.
type PrivacyMode string

const (
	PrivacyFull     PrivacyMode = "full"
	PrivacyInitials PrivacyMode = "initials"
	PrivacyHidden   PrivacyMode = "hidden"
)

// ValidPrivacyMode reports whether mode is one of the known modes.
func ValidPrivacyMode(mode PrivacyMode) bool {
	switch mode {
	case PrivacyFull, PrivacyInitials, PrivacyHidden:
		return true
	}
	return false
}

// DisplayName renders a competitor name under the given privacy mode.
// Unknown modes fall back to the full name.
func DisplayName(name string, mode PrivacyMode) string {
	switch mode {
	case PrivacyInitials:
		return initials(name)
	case PrivacyHidden:
		return "Anonymous"
	}
	return name
}

func initials(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		runes := []rune(field)
		parts = append(parts, strings.ToUpper(string(runes[0]))+".")
	}
	return strings.Join(parts, " ")
}
