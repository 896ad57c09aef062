// Package eval pairs audio inputs with reference answers, scores model
// output against them, and aggregates precision/recall/F1.
package eval

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes free text for comparison: lower-case, trim, and
// collapse every whitespace run to a single space. It is pure, total, and
// idempotent; whitespace-only input yields the empty string.
func Normalize(text string) string {
	var builder strings.Builder
	builder.Grow(len(text))

	pendingSpace := false
	for _, r := range strings.ToLower(text) {
		if unicode.IsSpace(r) {
			if builder.Len() > 0 {
				pendingSpace = true
			}
			continue
		}
		if pendingSpace {
			builder.WriteByte(' ')
			pendingSpace = false
		}
		builder.WriteRune(r)
	}

	return builder.String()
}
