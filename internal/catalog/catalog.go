// Package catalog holds the immutable genre table: per-genre instrument pools,
// tempo envelopes and moods, plus the separate nuance table (harmonic styles,
// time signatures, polyrhythms) the blender draws from.
//
// A Catalog is built once at start-up, validated, and only read afterwards, so
// it is safe to share between goroutines.
package catalog

import (
	"sort"
)

// Catalog is a validated, read-only genre table keyed by canonical name.
type Catalog struct {
	genres   map[string]*GenreDefinition
	keywords map[string]string
	guidance map[string]GenreGuidance
	names    []string
	warnings []string
}

// Genre returns the definition for an exact canonical name.
func (c *Catalog) Genre(name string) (*GenreDefinition, bool) {
	g, ok := c.genres[NormalizeKey(name)]
	return g, ok
}

// Resolve finds a genre by canonical name or by one of its keywords.
func (c *Catalog) Resolve(token string) (*GenreDefinition, bool) {
	key := NormalizeKey(token)
	if key == "" {
		return nil, false
	}
	if g, ok := c.genres[key]; ok {
		return g, true
	}
	if name, ok := c.keywords[key]; ok {
		return c.genres[name], true
	}
	return nil, false
}

// Knows reports whether token resolves to a genre.
func (c *Catalog) Knows(token string) bool {
	_, ok := c.Resolve(token)
	return ok
}

// Guidance returns the nuance candidates for a canonical genre name. Genres
// without an entry get the zero value and ok=false.
func (c *Catalog) Guidance(name string) (GenreGuidance, bool) {
	g, ok := c.guidance[NormalizeKey(name)]
	return g, ok
}

// Names returns all canonical genre names, sorted.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len is the number of genres.
func (c *Catalog) Len() int {
	return len(c.genres)
}

// Warnings lists best-effort problems found at load (for example exclusion
// rules naming tags no pool offers). They never prevent start-up.
func (c *Catalog) Warnings() []string {
	out := make([]string, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// Lookups returns every name and keyword the catalog answers to, longest
// first. The genre token splitter matches against this list.
func (c *Catalog) Lookups() []string {
	out := make([]string, 0, len(c.genres)+len(c.keywords))
	for name := range c.genres {
		out = append(out, name)
	}
	for kw := range c.keywords {
		out = append(out, kw)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}
