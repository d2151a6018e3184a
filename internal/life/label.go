package life

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeLabel trims surrounding whitespace and applies Unicode NFC so that
// canonically equivalent spellings share one key. Case is preserved: labels
// are case-sensitive.
func NormalizeLabel(label string) string {
	return norm.NFC.String(strings.TrimSpace(label))
}
