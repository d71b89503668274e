package prompt

import (
	"github.com/Conceptual-Machines/songprompt/internal/catalog"
	"github.com/Conceptual-Machines/songprompt/internal/rng"
	"github.com/Conceptual-Machines/songprompt/internal/services"
)

// DefaultMaxInstrumentTags caps the Instruments field when the caller gives
// no cap of its own.
const DefaultMaxInstrumentTags = 8

// Builder fills the Instruments field of a prompt from tag lists, vocal
// descriptions or the genre catalog.
type Builder struct {
	catalog  *catalog.Catalog
	maxItems int
}

// NewPromptBuilder creates a new prompt builder. maxItems <= 0 selects
// DefaultMaxInstrumentTags.
func NewPromptBuilder(cat *catalog.Catalog, maxItems int) *Builder {
	if maxItems <= 0 {
		maxItems = DefaultMaxInstrumentTags
	}
	return &Builder{catalog: cat, maxItems: maxItems}
}

func (b *Builder) limit(maxItems int) int {
	if maxItems > 0 {
		return maxItems
	}
	return b.maxItems
}

// InjectInstrumentTags merges tags into the Instruments field. When the
// prompt has no Instruments line one is inserted in the encoding picked by
// maxMode.
func (b *Builder) InjectInstrumentTags(text string, tags []string, maxMode bool, maxItems int) string {
	existing, _ := GetField(text, FieldInstruments)
	merged := services.MergeInstrumentTags(existing, tags, services.MergeOptions{
		MaxItems: b.limit(maxItems),
	})
	return b.writeInstruments(text, existing, merged, maxMode)
}

// InjectVocalStyle swaps the vocal-style items of the Instruments field for
// the tags parsed from description.
func (b *Builder) InjectVocalStyle(text, description string, maxMode bool, maxItems int) string {
	existing, _ := GetField(text, FieldInstruments)
	merged := services.InjectVocalStyleIntoInstrumentsCSV(existing, description, b.limit(maxItems))
	return b.writeInstruments(text, existing, merged, maxMode)
}

func (b *Builder) writeInstruments(text, existing, merged string, maxMode bool) string {
	if merged == "" || merged == existing {
		return text
	}
	return SetField(text, FieldInstruments, merged, ModeFromFlag(maxMode))
}

// ApplyGenreInstruments selects instruments for the genres named in
// genreText and injects them. ok is false when no genre resolves, in which
// case the text is returned unchanged.
func (b *Builder) ApplyGenreInstruments(text, genreText string, seed int64, maxMode bool) (out string, tags []string, ok bool) {
	if b.catalog == nil {
		return text, nil, false
	}
	var genres []*catalog.GenreDefinition
	seen := make(map[string]bool)
	for _, tok := range services.SplitGenreTokens(genreText, b.catalog) {
		g, found := b.catalog.Resolve(tok)
		if !found || seen[g.Name] {
			continue
		}
		seen[g.Name] = true
		genres = append(genres, g)
	}
	if len(genres) == 0 {
		return text, nil, false
	}

	tags = services.SelectInstrumentsForGenres(genres, rng.New(seed), b.maxItems)
	return b.InjectInstrumentTags(text, tags, maxMode, 0), tags, true
}
