package artcache

import (
	"strings"
	"unicode"
)

// Slugify derives the filesystem-safe cache key for a subject's display
// name: trimmed, case-folded, with runs of whitespace and punctuation
// collapsed to a single hyphen. "Red Panda" and "  red   panda! " share one
// cache entry.
func Slugify(subjectName string) string {
	var b strings.Builder
	pendingSep := false

	for _, r := range strings.TrimSpace(subjectName) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(unicode.ToLower(r))
		default:
			pendingSep = true
		}
	}

	return b.String()
}
