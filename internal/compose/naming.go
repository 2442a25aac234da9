package compose

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SanitizeSuffix prepares a caller-supplied filename suffix for use in a
// suggested filename. This is a pure function: raw suffix → safe suffix.
//
// Character handling:
// - Non-ASCII → normalized to ASCII equivalents (ō→o, é→e)
// - Spaces → underscores
// - / and \ → underscores (filesystem-illegal)
// - Shell metacharacters ($ ! * ? & ; | < > etc.) → underscores
// - Quotes (' " `) → removed
// - Multiple consecutive underscores → collapsed to single underscore
// - Trailing underscores → trimmed (a leading one separates the suffix
//   from the component list, so it is kept)
func SanitizeSuffix(suffix string) string {
	s := normalizeToASCII(suffix)

	var b strings.Builder
	b.Grow(len(s))

	lastWasUnderscore := false
	for _, r := range s {
		switch r {
		// Remove quotes (require shell escaping)
		case '\'', '"', '`':
			// skip - remove entirely

		// Replace with underscore
		case ' ': // space
			fallthrough
		case '/', '\\': // filesystem-illegal
			fallthrough
		case '$', '!': // shell expansion
			fallthrough
		case '*', '?', '[', ']': // glob patterns
			fallthrough
		case '(', ')': // subshell
			fallthrough
		case '{', '}': // brace expansion
			fallthrough
		case '<', '>', '|': // redirection/pipe
			fallthrough
		case '&', ';': // background/separator
			if !lastWasUnderscore {
				b.WriteByte('_')
				lastWasUnderscore = true
			}

		default:
			b.WriteRune(r)
			lastWasUnderscore = r == '_'
		}
	}

	return strings.TrimRight(b.String(), "_")
}

// normalizeToASCII converts non-ASCII characters to their ASCII equivalents.
// Uses NFKD normalization to decompose characters (ō→o, é→e, etc.)
// and strips any remaining non-ASCII characters.
func normalizeToASCII(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	result, _, _ := transform.String(t, s)

	// Strip any remaining non-ASCII
	var b strings.Builder
	for _, r := range result {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
