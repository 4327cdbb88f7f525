package textutil

import (
	"strings"
	"unicode"
)

// CleanFileName converts an arbitrary resource title into a name that is
// safe to use as a file name.
//
// The transform runs in four ordered steps: every character outside ASCII
// letters, digits, whitespace, and '.' becomes '_'; runs of '_' collapse to
// a single '_'; leading and trailing '_' are trimmed; remaining whitespace
// is deleted. The order matters: reordering the steps changes the output
// for titles that mix spaces and disallowed characters.
func CleanFileName(title string) string {
	if title == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(title))
	prevUnderscore := false
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevUnderscore = false
		case r == '.' || unicode.IsSpace(r):
			b.WriteRune(r)
			prevUnderscore = false
		default:
			if !prevUnderscore {
				b.WriteByte('_')
			}
			prevUnderscore = true
		}
	}

	cleaned := strings.Trim(b.String(), "_")
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, cleaned)
}
