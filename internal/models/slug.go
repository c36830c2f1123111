// ABOUTME: Slug generation for exercise names.
// ABOUTME: Lowercases and collapses non-alphanumerics to single hyphens.
package models

import "strings"

// Slugify converts a display name into a URL-safe slug.
// "Dumbbell Bench Press" becomes "dumbbell-bench-press".
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
