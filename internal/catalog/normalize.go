package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// FoldTag returns the comparison key for an instrument tag: NFKC-normalised,
// Unicode case-folded, inner whitespace collapsed. Two tags are the same tag
// when their keys are equal.
func FoldTag(tag string) string {
	// cases.Caser is stateful, so one per call.
	folded := cases.Fold().String(norm.NFKC.String(tag))
	return strings.Join(strings.Fields(folded), " ")
}

// NormalizeKey returns the lookup key for genre names and keywords. Besides
// folding it treats '-' and '_' as spaces so "hip-hop" finds "hip hop".
func NormalizeKey(name string) string {
	return FoldTag(strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return ' '
		}
		return r
	}, name))
}
