package services

import (
	"regexp"
	"strings"

	"github.com/Conceptual-Machines/songprompt/internal/catalog"
)

// genreSeparators split free genre text into independent segments before
// n-gram matching. "x" and "meets" are common fusion phrasings.
var genreSeparators = regexp.MustCompile(`(?i)\s*(?:[,;/+|]|\bx\b|\bmeets\b|\bvs\.?)\s*`)

// SplitGenreTokens breaks free text such as "jazz rock" or "afrobeat, deep
// house" into genre tokens. Within each segment the longest run of words that
// matches a genre name or keyword wins; words that match nothing are returned
// as single tokens so the caller can decide to drop them.
func SplitGenreTokens(text string, cat *catalog.Catalog) []string {
	if cat == nil || strings.TrimSpace(text) == "" {
		return nil
	}

	known := make(map[string]bool)
	maxWords := 1
	for _, l := range cat.Lookups() {
		known[l] = true
		if n := len(strings.Fields(l)); n > maxWords {
			maxWords = n
		}
	}

	var tokens []string
	for _, segment := range genreSeparators.Split(text, -1) {
		words := strings.Fields(catalog.NormalizeKey(segment))
		for i := 0; i < len(words); {
			matched := 0
			for n := min(maxWords, len(words)-i); n > 0; n-- {
				if known[strings.Join(words[i:i+n], " ")] {
					matched = n
					break
				}
			}
			if matched == 0 {
				tokens = append(tokens, words[i])
				i++
				continue
			}
			tokens = append(tokens, strings.Join(words[i:i+matched], " "))
			i += matched
		}
	}
	return tokens
}
