package services

import (
	"regexp"
	"strings"

	"github.com/Conceptual-Machines/songprompt/internal/catalog"
	"github.com/Conceptual-Machines/songprompt/pkg/embedded"
)

var (
	vocalKeywordPattern = regexp.MustCompile(`(?i)\b(vocals?|voices?|singers?|singing|sung|delivery|vox)\b`)

	vocalTechniquePattern = wholePhrasePattern(embedded.WordList(embedded.VocalTechniquesTxt))

	vocalStyleSplitter = regexp.MustCompile(`(?i)\s*(?:[,;/\n]|\s(?:and|with|plus)\s|&)\s*`)
)

// wholePhrasePattern matches any of the phrases as whole words.
func wholePhrasePattern(phrases []string) *regexp.Regexp {
	quoted := make([]string, 0, len(phrases))
	for _, p := range phrases {
		quoted = append(quoted, regexp.QuoteMeta(p))
	}
	return regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])(?:` + strings.Join(quoted, "|") + `)(?:$|[^\p{L}\p{N}])`)
}

// IsVocalStyleItem reports whether a tag describes vocal delivery rather than
// an instrument: it mentions voice or singing, or names a vocal technique.
func IsVocalStyleItem(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false
	}
	return vocalKeywordPattern.MatchString(tag) || vocalTechniquePattern.MatchString(tag)
}

// ParseVocalStyleTags turns a free-text vocal description into discrete tags.
// Fragments the classifier would not recognise get " vocals" appended so they
// still read as vocal-style items ("breathy and warm" gives "breathy",
// "warm vocals").
func ParseVocalStyleTags(description string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, part := range vocalStyleSplitter.Split(description, -1) {
		part = strings.Trim(strings.TrimSpace(part), ".!\"'")
		part = strings.Join(strings.Fields(part), " ")
		if part == "" {
			continue
		}
		if !IsVocalStyleItem(part) {
			part += " vocals"
		}
		k := catalog.FoldTag(part)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, part)
	}
	return out
}

// InjectVocalStyleIntoInstrumentsCSV replaces any vocal-style items in an
// instruments list with the tags parsed from description.
func InjectVocalStyleIntoInstrumentsCSV(csv, description string, maxItems int) string {
	return MergeInstrumentTags(csv, ParseVocalStyleTags(description), MergeOptions{
		MaxItems:        maxItems,
		StripVocalStyle: true,
	})
}
