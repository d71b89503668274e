package catalog

// GenreDefinition is one immutable row of the genre table. Definitions handed
// out by a Catalog are shared between callers and must be treated as read-only.
type GenreDefinition struct {
	Name           string                    `yaml:"name" json:"name"`
	Keywords       []string                  `yaml:"keywords" json:"keywords,omitempty"`
	Description    string                    `yaml:"description" json:"description,omitempty"`
	Pools          map[string]InstrumentPool `yaml:"pools" json:"pools"`
	PoolOrder      []string                  `yaml:"pool_order" json:"pool_order"`
	MaxTags        int                       `yaml:"max_tags" json:"max_tags"`
	ExclusionRules []ExclusionRule           `yaml:"exclusions" json:"exclusions,omitempty"`
	BPM            *BPMRange                 `yaml:"bpm" json:"bpm,omitempty"`
	Moods          []string                  `yaml:"moods" json:"moods,omitempty"`
}

// InstrumentPool is a named bucket of candidate tags.
type InstrumentPool struct {
	Pick            PickRange `yaml:"pick" json:"pick"`
	Instruments     []string  `yaml:"instruments" json:"instruments"`
	ChanceToInclude *float64  `yaml:"chance_to_include" json:"chance_to_include,omitempty"`
}

// PickRange bounds how many tags a pool contributes.
type PickRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// BPMRange is the tempo envelope of a genre.
type BPMRange struct {
	Min     int `yaml:"min" json:"min"`
	Max     int `yaml:"max" json:"max"`
	Typical int `yaml:"typical" json:"typical"`
}

// ExclusionRule is an unordered pair of tags that must never co-occur. In
// YAML it is written as a two-element sequence: [Rhodes, electric piano].
type ExclusionRule [2]string

// Involves reports whether tag is one side of the rule and returns the other
// side. Comparison is case-insensitive.
func (r ExclusionRule) Involves(tag string) (partner string, ok bool) {
	k := FoldTag(tag)
	switch k {
	case FoldTag(r[0]):
		return r[1], true
	case FoldTag(r[1]):
		return r[0], true
	}
	return "", false
}

// GenreGuidance holds the musical nuance candidates for one genre. It is kept
// apart from GenreDefinition because it comes from a separate table.
type GenreGuidance struct {
	HarmonicStyles []string `yaml:"harmonic_styles" json:"harmonic_styles,omitempty"`
	TimeSignatures []string `yaml:"time_signatures" json:"time_signatures,omitempty"`
	Polyrhythms    []string `yaml:"polyrhythms" json:"polyrhythms,omitempty"`
}

// HasPolyrhythm reports whether the genre carries a polyrhythm tradition.
func (g GenreGuidance) HasPolyrhythm() bool {
	return len(g.Polyrhythms) > 0
}

type genreFile struct {
	Genres []GenreDefinition `yaml:"genres"`
}

type guidanceFile struct {
	Guidance map[string]GenreGuidance `yaml:"guidance"`
}
