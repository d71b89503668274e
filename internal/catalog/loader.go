package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Conceptual-Machines/songprompt/pkg/embedded"
)

// Sources says where the two tables come from. Empty paths fall back to the
// tables embedded in the binary.
type Sources struct {
	GenrePath    string
	GuidancePath string
}

// LoadDefault builds the catalog from the embedded tables.
func LoadDefault() (*Catalog, error) {
	return Load(Sources{})
}

// Load reads, decodes and validates both tables. Any structural problem is a
// configuration error and the whole load fails.
func Load(src Sources) (*Catalog, error) {
	genreData, err := readTable(src.GenrePath, embedded.GenresYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to read genre table: %w", err)
	}
	// A custom genre table does not inherit the embedded guidance: its
	// genres would not line up.
	defaultGuidance := embedded.GenreGuidanceYAML
	if strings.TrimSpace(src.GenrePath) != "" {
		defaultGuidance = nil
	}
	guidanceData, err := readTable(src.GuidancePath, defaultGuidance)
	if err != nil {
		return nil, fmt.Errorf("failed to read genre guidance table: %w", err)
	}
	return Parse(genreData, guidanceData)
}

// Parse builds a catalog from raw YAML. guidanceData may be empty.
func Parse(genreData, guidanceData []byte) (*Catalog, error) {
	var gf genreFile
	if err := yaml.Unmarshal(genreData, &gf); err != nil {
		return nil, fmt.Errorf("failed to decode genre table: %w", err)
	}

	var nf guidanceFile
	if len(strings.TrimSpace(string(guidanceData))) > 0 {
		if err := yaml.Unmarshal(guidanceData, &nf); err != nil {
			return nil, fmt.Errorf("failed to decode genre guidance table: %w", err)
		}
	}

	return New(gf.Genres, nf.Guidance)
}

// New validates the given definitions and guidance and indexes them. The
// slices and maps are copied so later changes by the caller cannot leak in.
func New(defs []GenreDefinition, guidance map[string]GenreGuidance) (*Catalog, error) {
	if err := Validate(defs, guidance); err != nil {
		return nil, err
	}

	c := &Catalog{
		genres:   make(map[string]*GenreDefinition, len(defs)),
		keywords: make(map[string]string),
		guidance: make(map[string]GenreGuidance, len(guidance)),
		names:    make([]string, 0, len(defs)),
	}

	for i := range defs {
		def := cloneDefinition(defs[i])
		key := NormalizeKey(def.Name)
		def.Name = key
		c.genres[key] = &def
		c.names = append(c.names, key)
		for _, kw := range def.Keywords {
			if k := NormalizeKey(kw); k != "" && k != key {
				c.keywords[k] = key
			}
		}
		c.warnings = append(c.warnings, exclusionWarnings(&def)...)
	}
	sort.Strings(c.names)

	for name, g := range guidance {
		c.guidance[NormalizeKey(name)] = GenreGuidance{
			HarmonicStyles: cloneStrings(g.HarmonicStyles),
			TimeSignatures: cloneStrings(g.TimeSignatures),
			Polyrhythms:    cloneStrings(g.Polyrhythms),
		}
	}

	return c, nil
}

func readTable(path string, fallback []byte) ([]byte, error) {
	if path = strings.TrimSpace(path); path != "" {
		return os.ReadFile(path)
	}
	return fallback, nil
}

func cloneDefinition(d GenreDefinition) GenreDefinition {
	out := d
	out.Keywords = cloneStrings(d.Keywords)
	out.PoolOrder = cloneStrings(d.PoolOrder)
	out.Moods = cloneStrings(d.Moods)
	if d.ExclusionRules != nil {
		out.ExclusionRules = make([]ExclusionRule, len(d.ExclusionRules))
		copy(out.ExclusionRules, d.ExclusionRules)
	}
	if d.BPM != nil {
		bpm := *d.BPM
		out.BPM = &bpm
	}
	out.Pools = make(map[string]InstrumentPool, len(d.Pools))
	for name, p := range d.Pools {
		cp := p
		cp.Instruments = cloneStrings(p.Instruments)
		if p.ChanceToInclude != nil {
			chance := *p.ChanceToInclude
			cp.ChanceToInclude = &chance
		}
		out.Pools[name] = cp
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
