package match

import "strings"

// Normalize canonicalizes a free-text ingredient name for comparison:
// lowercase, strip everything that is not a letter, digit or whitespace,
// trim. Idempotent, never fails.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ', r == '\t', r == '\n':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// meaningfulTokens splits a normalized string on whitespace and keeps only
// tokens longer than two characters, filtering stopwords like "a" or "of".
func meaningfulTokens(normalized string) []string {
	fields := strings.Fields(normalized)
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) > 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
