package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/songprompt/internal/catalog"
)

func TestMergeInstrumentTags(t *testing.T) {
	tests := []struct {
		name     string
		csv      string
		tags     []string
		opts     MergeOptions
		expected string
	}{
		{
			name:     "keeps vocal items when capping",
			csv:      "piano, vocals, humming",
			tags:     []string{"guitar"},
			opts:     MergeOptions{MaxItems: 3},
			expected: "piano, vocals, humming",
		},
		{
			name:     "within cap appends",
			csv:      "piano, bass",
			tags:     []string{"kalimba", "flute"},
			opts:     MergeOptions{MaxItems: 8},
			expected: "piano, bass, kalimba, flute",
		},
		{
			name:     "dedup keeps first spelling and position",
			csv:      "Piano,  bass ,, drums",
			tags:     []string{"piano", "BASS", "Shaker"},
			opts:     MergeOptions{},
			expected: "Piano, bass, drums, Shaker",
		},
		{
			name:     "vocal items move behind instruments when capped",
			csv:      "breathy vocals, piano, bass, drums",
			tags:     []string{"strings"},
			opts:     MergeOptions{MaxItems: 3},
			expected: "piano, bass, breathy vocals",
		},
		{
			name:     "only vocal items when they fill the cap",
			csv:      "piano, male vocals, falsetto, choir",
			tags:     nil,
			opts:     MergeOptions{MaxItems: 2},
			expected: "male vocals, falsetto",
		},
		{
			name:     "strip vocal style",
			csv:      "piano, raspy lead vocals, whisper",
			tags:     []string{"falsetto"},
			opts:     MergeOptions{StripVocalStyle: true},
			expected: "piano, falsetto",
		},
		{
			name:     "comma inside a new tag counts against the cap",
			csv:      "",
			tags:     []string{"guitar, bass", "drums"},
			opts:     MergeOptions{MaxItems: 2},
			expected: "guitar, bass",
		},
		{
			name:     "comma inside a new tag is deduplicated",
			csv:      "guitar",
			tags:     []string{"Guitar, bass"},
			opts:     MergeOptions{MaxItems: 5},
			expected: "guitar, bass",
		},
		{
			name:     "empty input",
			csv:      "  ",
			tags:     []string{" ", ""},
			opts:     MergeOptions{MaxItems: 4},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MergeInstrumentTags(tt.csv, tt.tags, tt.opts))
		})
	}
}

func TestMergeInstrumentTagsProperties(t *testing.T) {
	csvs := []string{
		"piano, Piano, PIANO, vocals",
		"a, b, c, d, e, f",
		"humming, falsetto, whisper, choir, guitar",
		"",
	}
	tags := [][]string{
		{"A", "b", "new"},
		{"vocals", "Vocals"},
		{"A, new, b", "NEW,vocals"},
		{},
	}

	for _, csv := range csvs {
		for _, tt := range tags {
			for limit := 0; limit <= 6; limit++ {
				out := MergeInstrumentTags(csv, tt, MergeOptions{MaxItems: limit})
				items := SplitCSV(out)

				if limit > 0 {
					assert.LessOrEqual(t, len(items), limit, "csv %q tags %v limit %d", csv, tt, limit)
				}
				seen := map[string]bool{}
				for _, item := range items {
					k := catalog.FoldTag(item)
					require.False(t, seen[k], "duplicate %q in %q", item, out)
					seen[k] = true
				}
			}
		}
	}
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, SplitCSV(" a ,, b c ,"))
	assert.Nil(t, SplitCSV(""))
}

func TestIsVocalStyleItem(t *testing.T) {
	vocal := []string{
		"vocals", "Female Vocal", "deep voice", "singer", "soft singing", "sung softly",
		"laid-back delivery", "vox", "humming", "Falsetto", "spoken word", "ad-libs",
		"call-and-response", "rap", "vocal harmonies",
	}
	for _, tag := range vocal {
		assert.True(t, IsVocalStyleItem(tag), tag)
	}

	instruments := []string{"piano", "guitar", "trap drums", "rhodes", "", "voicing pad"}
	for _, tag := range instruments {
		assert.False(t, IsVocalStyleItem(tag), tag)
	}
}

func TestParseVocalStyleTags(t *testing.T) {
	tests := []struct {
		description string
		expected    []string
	}{
		{"breathy female vocals with falsetto and humming", []string{"breathy female vocals", "falsetto", "humming"}},
		{"warm; intimate", []string{"warm vocals", "intimate vocals"}},
		{"raspy / Raspy", []string{"raspy"}},
		{"Spoken word.", []string{"Spoken word"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseVocalStyleTags(tt.description))
		})
	}
}

func TestInjectVocalStyleIntoInstrumentsCSV(t *testing.T) {
	out := InjectVocalStyleIntoInstrumentsCSV("piano, male vocals, bass, drums", "soft falsetto and whispered", 4)
	items := SplitCSV(out)

	assert.Len(t, items, 4)
	assert.NotContains(t, items, "male vocals")
	assert.Equal(t, []string{"piano", "bass", "soft falsetto", "whispered"}, items)
	assert.False(t, strings.HasSuffix(out, ", "))
}
