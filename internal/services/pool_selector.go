package services

import (
	"github.com/Conceptual-Machines/songprompt/internal/catalog"
	"github.com/Conceptual-Machines/songprompt/internal/rng"
)

// tagSet is an insertion-ordered set of tags keyed by their folded form.
type tagSet struct {
	order []string
	keys  map[string]bool
}

func newTagSet(capacity int) *tagSet {
	return &tagSet{
		order: make([]string, 0, capacity),
		keys:  make(map[string]bool, capacity),
	}
}

func (s *tagSet) has(tag string) bool {
	return s.keys[catalog.FoldTag(tag)]
}

// add inserts tag and reports whether it was new.
func (s *tagSet) add(tag string) bool {
	k := catalog.FoldTag(tag)
	if s.keys[k] {
		return false
	}
	s.keys[k] = true
	s.order = append(s.order, tag)
	return true
}

func (s *tagSet) len() int {
	return len(s.order)
}

// SelectInstruments picks an ordered, de-duplicated set of instrument tags for
// one genre. Pools are visited in PoolOrder; each one may be skipped by its
// inclusion chance, then contributes a random count of tags drawn without
// replacement from the candidates that are neither chosen nor excluded yet.
// The result never exceeds MaxTags and never holds both sides of an exclusion
// rule. Tight constraints simply yield fewer tags.
//
// The random source is consumed in a fixed order (chance roll, count,
// shuffle) per visited pool, so equal seeds give equal selections.
func SelectInstruments(genre *catalog.GenreDefinition, src rng.Source) []string {
	if genre == nil || genre.MaxTags <= 0 {
		return []string{}
	}

	selected := newTagSet(genre.MaxTags)
	excluded := newTagSet(len(genre.ExclusionRules))

	for _, poolName := range genre.PoolOrder {
		if selected.len() >= genre.MaxTags {
			break
		}
		pool, ok := genre.Pools[poolName]
		if !ok {
			continue
		}
		if pool.ChanceToInclude != nil && !rng.Chance(*pool.ChanceToInclude, src) {
			continue
		}

		count := rng.IntInclusive(pool.Pick.Min, pool.Pick.Max, src)

		eligible := eligibleCandidates(pool.Instruments, selected, excluded)
		if count > len(eligible) {
			count = len(eligible)
		}
		if room := genre.MaxTags - selected.len(); count > room {
			count = room
		}
		if count <= 0 {
			continue
		}

		for _, tag := range rng.Shuffle(eligible, src) {
			if count == 0 {
				break
			}
			// A tag chosen earlier in this same pick may have excluded this one.
			if excluded.has(tag) {
				continue
			}
			if !selected.add(tag) {
				continue
			}
			count--
			for _, rule := range genre.ExclusionRules {
				if partner, ok := rule.Involves(tag); ok {
					excluded.add(partner)
				}
			}
		}
	}

	return selected.order
}

// eligibleCandidates filters a pool down to tags that can still be picked,
// dropping repeats within the pool itself.
func eligibleCandidates(instruments []string, selected, excluded *tagSet) []string {
	seen := newTagSet(len(instruments))
	out := make([]string, 0, len(instruments))
	for _, inst := range instruments {
		if selected.has(inst) || excluded.has(inst) {
			continue
		}
		if seen.add(inst) {
			out = append(out, inst)
		}
	}
	return out
}

// SelectInstrumentsForGenres runs SelectInstruments for each genre with the
// same source and interleaves the results round-robin, de-duplicated, up to
// maxTotal tags (maxTotal <= 0 means no overall cap). Exclusion rules of every
// genre apply across the merged result.
func SelectInstrumentsForGenres(genres []*catalog.GenreDefinition, src rng.Source, maxTotal int) []string {
	picks := make([][]string, 0, len(genres))
	longest := 0
	for _, g := range genres {
		p := SelectInstruments(g, src)
		picks = append(picks, p)
		if len(p) > longest {
			longest = len(p)
		}
	}

	merged := newTagSet(longest * len(picks))
	excluded := newTagSet(0)
	for i := 0; i < longest; i++ {
		for _, p := range picks {
			if maxTotal > 0 && merged.len() >= maxTotal {
				return merged.order
			}
			if i >= len(p) || excluded.has(p[i]) {
				continue
			}
			if !merged.add(p[i]) {
				continue
			}
			for _, g := range genres {
				if g == nil {
					continue
				}
				for _, rule := range g.ExclusionRules {
					if partner, ok := rule.Involves(p[i]); ok {
						excluded.add(partner)
					}
				}
			}
		}
	}
	return merged.order
}
