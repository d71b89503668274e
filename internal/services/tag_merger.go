package services

import (
	"strings"
)

// MergeOptions controls MergeInstrumentTags.
type MergeOptions struct {
	// MaxItems caps the result; zero or negative means no cap.
	MaxItems int
	// StripVocalStyle drops vocal-style items from the existing list before
	// the new tags are added.
	StripVocalStyle bool
}

// SplitCSV splits a comma-separated tag list, trimming items and dropping
// empty ones.
func SplitCSV(csv string) []string {
	var out []string
	for _, item := range strings.Split(csv, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// MergeInstrumentTags appends newTags to an existing comma-separated
// instruments list. Items are de-duplicated case-insensitively, keeping the
// first spelling and position. When the cap is exceeded only instrument tags
// are dropped: vocal-style items always survive and move to the end.
func MergeInstrumentTags(existingCSV string, newTags []string, opts MergeOptions) string {
	existing := SplitCSV(existingCSV)
	if opts.StripVocalStyle {
		kept := existing[:0]
		for _, item := range existing {
			if !IsVocalStyleItem(item) {
				kept = append(kept, item)
			}
		}
		existing = kept
	}

	merged := newTagSet(len(existing) + len(newTags))
	for _, item := range existing {
		merged.add(item)
	}
	// A new tag may itself be a comma list ("guitar, bass").
	for _, tag := range newTags {
		for _, item := range SplitCSV(tag) {
			merged.add(item)
		}
	}

	items := merged.order
	if opts.MaxItems <= 0 || len(items) <= opts.MaxItems {
		return strings.Join(items, ", ")
	}

	var vocal, other []string
	for _, item := range items {
		if IsVocalStyleItem(item) {
			vocal = append(vocal, item)
		} else {
			other = append(other, item)
		}
	}
	if len(vocal) >= opts.MaxItems {
		return strings.Join(vocal[:opts.MaxItems], ", ")
	}

	out := make([]string, 0, opts.MaxItems)
	out = append(out, other[:opts.MaxItems-len(vocal)]...)
	out = append(out, vocal...)
	return strings.Join(out, ", ")
}
