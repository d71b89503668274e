package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCatalog wraps every structural problem found by Validate.
var ErrInvalidCatalog = errors.New("invalid genre catalog")

// Validate checks the shape rules that make selection total: pool order is a
// permutation of the pools, caps and pick ranges are sane, tempo envelopes are
// ordered, names and keywords are unambiguous. All problems are reported at
// once.
func Validate(defs []GenreDefinition, guidance map[string]GenreGuidance) error {
	var problems []error
	if len(defs) == 0 {
		problems = append(problems, errors.New("no genres defined"))
	}

	owner := make(map[string]string)
	for i := range defs {
		def := &defs[i]
		name := NormalizeKey(def.Name)
		if name == "" {
			problems = append(problems, fmt.Errorf("genre #%d: name is required", i))
			continue
		}
		if prev, ok := owner[name]; ok {
			problems = append(problems, fmt.Errorf("genre %q: name already used by %q", name, prev))
			continue
		}
		owner[name] = name
		for _, err := range validateGenre(def) {
			problems = append(problems, fmt.Errorf("genre %q: %w", name, err))
		}
	}

	// Keywords are checked after all names are known so a keyword can never
	// shadow another genre's canonical name.
	for i := range defs {
		name := NormalizeKey(defs[i].Name)
		if name == "" {
			continue
		}
		for _, kw := range defs[i].Keywords {
			k := NormalizeKey(kw)
			if k == "" || k == name {
				continue
			}
			if prev, ok := owner[k]; ok && prev != name {
				problems = append(problems, fmt.Errorf("genre %q: keyword %q already belongs to %q", name, kw, prev))
				continue
			}
			owner[k] = name
		}
	}

	for gname, g := range guidance {
		if !isCanonical(defs, NormalizeKey(gname)) {
			problems = append(problems, fmt.Errorf("guidance %q: no such genre", gname))
		}
		if hasBlank(g.HarmonicStyles) || hasBlank(g.TimeSignatures) || hasBlank(g.Polyrhythms) {
			problems = append(problems, fmt.Errorf("guidance %q: blank entry", gname))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(problems...))
}

func validateGenre(def *GenreDefinition) []error {
	var errs []error

	if def.MaxTags <= 0 {
		errs = append(errs, fmt.Errorf("max_tags must be positive, got %d", def.MaxTags))
	}
	if len(def.Pools) == 0 {
		errs = append(errs, errors.New("no pools defined"))
	}

	seen := make(map[string]bool, len(def.PoolOrder))
	for _, p := range def.PoolOrder {
		if _, ok := def.Pools[p]; !ok {
			errs = append(errs, fmt.Errorf("pool_order references unknown pool %q", p))
			continue
		}
		if seen[p] {
			errs = append(errs, fmt.Errorf("pool_order lists pool %q twice", p))
		}
		seen[p] = true
	}
	for name := range def.Pools {
		if !seen[name] {
			errs = append(errs, fmt.Errorf("pool %q missing from pool_order", name))
		}
	}

	for name, pool := range def.Pools {
		if pool.Pick.Min < 0 {
			errs = append(errs, fmt.Errorf("pool %q: pick.min must not be negative", name))
		}
		if pool.Pick.Min > pool.Pick.Max {
			errs = append(errs, fmt.Errorf("pool %q: pick.min %d > pick.max %d", name, pool.Pick.Min, pool.Pick.Max))
		}
		if pool.ChanceToInclude != nil && (*pool.ChanceToInclude < 0 || *pool.ChanceToInclude > 1) {
			errs = append(errs, fmt.Errorf("pool %q: chance_to_include %.2f outside [0,1]", name, *pool.ChanceToInclude))
		}
		if hasBlank(pool.Instruments) {
			errs = append(errs, fmt.Errorf("pool %q: blank instrument", name))
		}
	}

	if b := def.BPM; b != nil {
		if b.Min <= 0 || b.Min > b.Typical || b.Typical > b.Max {
			errs = append(errs, fmt.Errorf("bpm must satisfy 0 < min <= typical <= max, got %d/%d/%d", b.Min, b.Typical, b.Max))
		}
	}

	for _, rule := range def.ExclusionRules {
		if strings.TrimSpace(rule[0]) == "" || strings.TrimSpace(rule[1]) == "" {
			errs = append(errs, fmt.Errorf("exclusion %v: both sides are required", rule))
		} else if FoldTag(rule[0]) == FoldTag(rule[1]) {
			errs = append(errs, fmt.Errorf("exclusion %v: a tag cannot exclude itself", rule))
		}
	}

	return errs
}

// exclusionWarnings flags rules that name tags no pool offers. Such rules are
// harmless but usually a typo in the table.
func exclusionWarnings(def *GenreDefinition) []string {
	known := make(map[string]bool)
	for _, pool := range def.Pools {
		for _, inst := range pool.Instruments {
			known[FoldTag(inst)] = true
		}
	}
	var out []string
	for _, rule := range def.ExclusionRules {
		for _, side := range rule {
			if !known[FoldTag(side)] {
				out = append(out, fmt.Sprintf("genre %q: exclusion tag %q not offered by any pool", def.Name, side))
			}
		}
	}
	return out
}

func isCanonical(defs []GenreDefinition, key string) bool {
	for i := range defs {
		if NormalizeKey(defs[i].Name) == key {
			return true
		}
	}
	return false
}

func hasBlank(items []string) bool {
	for _, s := range items {
		if strings.TrimSpace(s) == "" {
			return true
		}
	}
	return false
}
