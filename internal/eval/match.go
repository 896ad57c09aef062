package eval

import (
	"fmt"
	"strings"
)

// Mode selects the comparison rule applied to normalized text.
type Mode string

const (
	// ModeExact requires the normalized strings to be identical.
	ModeExact Mode = "exact"

	// ModeContains requires the normalized reference to be a contiguous
	// substring of the normalized prediction. This accepts elaborated
	// answers that include the expected phrase.
	ModeContains Mode = "contains"
)

// matchers maps each mode to its predicate over normalized text. New modes
// register here; nothing else changes.
var matchers = map[Mode]func(pred, ref string) bool{
	ModeExact:    func(pred, ref string) bool { return pred == ref },
	ModeContains: func(pred, ref string) bool { return strings.Contains(pred, ref) },
}

// ParseMode validates a mode tag. Unknown modes are a configuration error
// and must be rejected before any inference runs.
func ParseMode(s string) (Mode, error) {
	mode := Mode(s)
	if _, ok := matchers[mode]; !ok {
		return "", fmt.Errorf("unknown match mode %q (valid: %s, %s)", s, ModeExact, ModeContains)
	}
	return mode, nil
}

// Matches reports whether a normalized prediction satisfies a normalized
// reference under the mode. Unknown modes never match; ParseMode is the
// gate that keeps them out of a run.
func (m Mode) Matches(normPred, normRef string) bool {
	match, ok := matchers[m]
	if !ok {
		return false
	}
	return match(normPred, normRef)
}
