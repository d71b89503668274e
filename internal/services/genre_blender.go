package services

import (
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/songprompt/internal/catalog"
	"github.com/Conceptual-Machines/songprompt/internal/rng"
)

// Guidance is the blended musical nuance for a set of active genres.
// Empty fields are not rendered.
type Guidance struct {
	Genres        []string `json:"genres"`
	BPMMin        int      `json:"bpm_min,omitempty"`
	BPMMax        int      `json:"bpm_max,omitempty"`
	HarmonicStyle string   `json:"harmonic_style,omitempty"`
	TimeSignature string   `json:"time_signature,omitempty"`
	Polyrhythm    string   `json:"polyrhythm,omitempty"`
}

// HasBPM reports whether any resolved genre carried a tempo envelope.
func (g *Guidance) HasBPM() bool {
	return g.BPMMax > 0
}

// String renders the guidance as prompt lines.
func (g *Guidance) String() string {
	if g == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Blended genres: %s", strings.Join(g.Genres, " + "))
	if g.HasBPM() {
		fmt.Fprintf(&b, "\nBPM Range: between %d and %d", g.BPMMin, g.BPMMax)
	}
	if g.HarmonicStyle != "" {
		fmt.Fprintf(&b, "\nSuggested harmonic style: %s", g.HarmonicStyle)
	}
	if g.TimeSignature != "" {
		fmt.Fprintf(&b, "\nSuggested time signature: %s", g.TimeSignature)
	}
	if g.Polyrhythm != "" {
		fmt.Fprintf(&b, "\nSuggested polyrhythm: %s", g.Polyrhythm)
	}
	return b.String()
}

// Blender combines tempo and harmonic guidance across several genres.
type Blender struct {
	catalog *catalog.Catalog
}

// NewBlender creates a blender over a loaded catalog.
func NewBlender(cat *catalog.Catalog) *Blender {
	return &Blender{catalog: cat}
}

// Blend resolves tokens to genres and blends their guidance. Unknown tokens
// are dropped; nil is returned when nothing resolves. A nil src is replaced
// by a source seeded from the resolved genre names, so the result is still
// repeatable.
func (b *Blender) Blend(tokens []string, src rng.Source) *Guidance {
	genres := b.resolve(tokens)
	if len(genres) == 0 {
		return nil
	}

	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.Name
	}
	if src == nil {
		src = rng.New(rng.SeedFromStrings(names...))
	}

	out := &Guidance{Genres: names}
	out.BPMMin, out.BPMMax = blendBPM(genres)

	var harmonic, meter, poly [][]string
	for _, g := range genres {
		gd, ok := b.catalog.Guidance(g.Name)
		if !ok {
			continue
		}
		harmonic = append(harmonic, gd.HarmonicStyles)
		meter = append(meter, gd.TimeSignatures)
		if gd.HasPolyrhythm() {
			poly = append(poly, gd.Polyrhythms)
		}
	}

	out.HarmonicStyle = pickShared(harmonic, src)
	out.TimeSignature = pickShared(meter, src)
	out.Polyrhythm = pickShared(poly, src)
	return out
}

// BlendText splits free genre text into tokens and blends them.
func (b *Blender) BlendText(text string, src rng.Source) *Guidance {
	return b.Blend(SplitGenreTokens(text, b.catalog), src)
}

func (b *Blender) resolve(tokens []string) []*catalog.GenreDefinition {
	if b == nil || b.catalog == nil {
		return nil
	}
	seen := make(map[string]bool, len(tokens))
	var out []*catalog.GenreDefinition
	for _, tok := range tokens {
		g, ok := b.catalog.Resolve(tok)
		if !ok || seen[g.Name] {
			continue
		}
		seen[g.Name] = true
		out = append(out, g)
	}
	return out
}

// blendBPM intersects the tempo envelopes when they overlap and otherwise
// spans from the lowest minimum to the highest maximum. Zeroes mean no genre
// had a tempo.
func blendBPM(genres []*catalog.GenreDefinition) (lo, hi int) {
	interLo, interHi := 0, 0
	spanLo, spanHi := 0, 0
	found := false
	for _, g := range genres {
		if g.BPM == nil {
			continue
		}
		if !found {
			interLo, interHi = g.BPM.Min, g.BPM.Max
			spanLo, spanHi = g.BPM.Min, g.BPM.Max
			found = true
			continue
		}
		interLo = max(interLo, g.BPM.Min)
		interHi = min(interHi, g.BPM.Max)
		spanLo = min(spanLo, g.BPM.Min)
		spanHi = max(spanHi, g.BPM.Max)
	}
	if !found {
		return 0, 0
	}
	if interLo <= interHi {
		return interLo, interHi
	}
	return spanLo, spanHi
}

// pickShared chooses one candidate from the union of lists. Candidates
// offered by the most genres are the only ones eligible when that count is
// above one; otherwise every candidate is. Order of first appearance fixes
// the candidate order so the draw is reproducible.
func pickShared(lists [][]string, src rng.Source) string {
	counts := make(map[string]int)
	var order []string
	for _, list := range lists {
		inList := make(map[string]bool, len(list))
		for _, item := range list {
			k := catalog.FoldTag(item)
			if k == "" || inList[k] {
				continue
			}
			inList[k] = true
			if counts[k] == 0 {
				order = append(order, item)
			}
			counts[k]++
		}
	}
	if len(order) == 0 {
		return ""
	}

	best := 0
	for _, c := range counts {
		best = max(best, c)
	}
	candidates := order
	if best > 1 {
		candidates = make([]string, 0, len(order))
		for _, item := range order {
			if counts[catalog.FoldTag(item)] == best {
				candidates = append(candidates, item)
			}
		}
	}

	choice, _ := rng.Pick(candidates, src)
	return choice
}
