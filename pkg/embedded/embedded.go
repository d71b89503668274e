package embedded

import (
	_ "embed"
	"strings"
)

// Embedded data tables: the genre catalog, its guidance and the word lists
// used by the text post-processor and vocal-style classifier.
//
//go:embed data/genres.yaml
var GenresYAML []byte

//go:embed data/genre_guidance.yaml
var GenreGuidanceYAML []byte

//go:embed data/stop_words.txt
var StopWordsTxt []byte

//go:embed data/meta_phrases.txt
var MetaPhrasesTxt []byte

//go:embed data/section_names.txt
var SectionNamesTxt []byte

//go:embed data/vocal_techniques.txt
var VocalTechniquesTxt []byte

// WordList splits an embedded list into its entries: one per line, trimmed,
// skipping blank lines and lines starting with '#'.
func WordList(data []byte) []string {
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}
