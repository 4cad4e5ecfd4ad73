package util

import (
	"strings"
	"unicode"
)

// Slugify lowercases, keeps alphanumerics and collapses everything else into
// single hyphens: "Free-Range Eggs (x12)" -> "free-range-eggs-x12".
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
