package utils

import (
	"strings"
	"unicode"
)

// Slugify lower-cases the title and collapses every run of non-alphanumeric
// characters into a single hyphen: "Backend Engineer" -> "backend-engineer".
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
