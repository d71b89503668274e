package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/songprompt/internal/rng"
)

func TestBlendTextJazzRock(t *testing.T) {
	b := NewBlender(defaultCatalog(t))

	g := b.BlendText("jazz rock", rng.New(7))
	require.NotNil(t, g)
	assert.Equal(t, []string{"jazz", "rock"}, g.Genres)

	text := g.String()
	assert.Contains(t, text, "BPM Range: between")
	assert.Contains(t, text, "Suggested harmonic style:")
	assert.Contains(t, text, "Suggested time signature:")
}

func TestBlendNothingResolves(t *testing.T) {
	b := NewBlender(defaultCatalog(t))

	assert.Nil(t, b.BlendText("", rng.New(1)))
	assert.Nil(t, b.BlendText("   ", rng.New(1)))
	assert.Nil(t, b.BlendText("polka zydeco", rng.New(1)))
	assert.Nil(t, b.Blend(nil, rng.New(1)))
	assert.Nil(t, b.Blend([]string{"", " "}, rng.New(1)))

	var none *Guidance
	assert.Equal(t, "", none.String())
}

func TestBlendDeterministic(t *testing.T) {
	b := NewBlender(defaultCatalog(t))
	tokens := []string{"afrobeat", "jazz", "house"}

	for seed := int64(0); seed < 30; seed++ {
		first := b.Blend(tokens, rng.New(seed))
		second := b.Blend(tokens, rng.New(seed))
		require.NotNil(t, first)
		assert.Equal(t, first.String(), second.String(), "seed %d", seed)
	}

	// Without a source the genre names fix the seed.
	assert.Equal(t, b.Blend(tokens, nil).String(), b.Blend(tokens, nil).String())
}

func TestBlendCollapsesDuplicatesAndDropsUnknown(t *testing.T) {
	b := NewBlender(defaultCatalog(t))

	g := b.Blend([]string{"Jazz", "bebop", "polka", "JAZZ"}, rng.New(1))
	require.NotNil(t, g)
	assert.Equal(t, []string{"jazz"}, g.Genres)
}

const blendGenres = `
genres:
  - name: slow
    max_tags: 1
    bpm: {min: 60, max: 80, typical: 70}
    pool_order: [a]
    pools:
      a: {pick: {min: 1, max: 1}, instruments: [x]}
  - name: mid
    max_tags: 1
    bpm: {min: 75, max: 110, typical: 90}
    pool_order: [a]
    pools:
      a: {pick: {min: 1, max: 1}, instruments: [x]}
  - name: fast
    max_tags: 1
    bpm: {min: 160, max: 180, typical: 170}
    pool_order: [a]
    pools:
      a: {pick: {min: 1, max: 1}, instruments: [x]}
  - name: free
    max_tags: 1
    pool_order: [a]
    pools:
      a: {pick: {min: 1, max: 1}, instruments: [x]}
`

const blendGuidance = `
guidance:
  slow:
    harmonic_styles: [lush pads, shared cadence]
    time_signatures: [3/4]
  mid:
    harmonic_styles: [Shared Cadence, bright riffs]
    time_signatures: [4/4]
    polyrhythms: [3 over 2]
  fast:
    harmonic_styles: [bright riffs]
    time_signatures: [4/4]
`

func TestBlendBPM(t *testing.T) {
	b := NewBlender(parseCatalog(t, blendGenres, blendGuidance))

	tests := []struct {
		name   string
		tokens []string
		lo, hi int
	}{
		{"single", []string{"slow"}, 60, 80},
		{"overlap intersects", []string{"slow", "mid"}, 75, 80},
		{"disjoint spans", []string{"slow", "fast"}, 60, 180},
		{"genre without tempo ignored", []string{"free", "mid"}, 75, 110},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := b.Blend(tt.tokens, rng.New(1))
			require.NotNil(t, g)
			assert.Equal(t, tt.lo, g.BPMMin)
			assert.Equal(t, tt.hi, g.BPMMax)
		})
	}

	g := b.Blend([]string{"free"}, rng.New(1))
	require.NotNil(t, g)
	assert.False(t, g.HasBPM())
	assert.NotContains(t, g.String(), "BPM Range")
}

func TestBlendPrefersSharedCandidates(t *testing.T) {
	b := NewBlender(parseCatalog(t, blendGenres, blendGuidance))

	for seed := int64(0); seed < 40; seed++ {
		g := b.Blend([]string{"slow", "mid"}, rng.New(seed))
		require.NotNil(t, g)
		assert.Equal(t, "shared cadence", g.HarmonicStyle)

		g = b.Blend([]string{"mid", "fast"}, rng.New(seed))
		require.NotNil(t, g)
		assert.Equal(t, "bright riffs", g.HarmonicStyle)
		assert.Equal(t, "4/4", g.TimeSignature)
	}
}

func TestBlendPolyrhythmOnlyWhenKnown(t *testing.T) {
	b := NewBlender(parseCatalog(t, blendGenres, blendGuidance))

	g := b.Blend([]string{"slow", "fast"}, rng.New(1))
	require.NotNil(t, g)
	assert.NotContains(t, g.String(), "polyrhythm")

	g = b.Blend([]string{"slow", "mid"}, rng.New(1))
	require.NotNil(t, g)
	assert.Equal(t, "3 over 2", g.Polyrhythm)
	assert.Contains(t, g.String(), "Suggested polyrhythm: 3 over 2")
}

func TestGuidanceString(t *testing.T) {
	g := &Guidance{
		Genres:        []string{"jazz", "rock"},
		BPMMin:        100,
		BPMMax:        150,
		HarmonicStyle: "modal harmony",
		TimeSignature: "4/4",
	}
	assert.Equal(t, "Blended genres: jazz + rock\n"+
		"BPM Range: between 100 and 150\n"+
		"Suggested harmonic style: modal harmony\n"+
		"Suggested time signature: 4/4", g.String())
}

func TestSplitGenreTokens(t *testing.T) {
	cat := defaultCatalog(t)

	tests := []struct {
		text string
		want []string
	}{
		{"jazz rock", []string{"jazz", "rock"}},
		{"Afrobeat, deep house", []string{"afrobeat", "deep house"}},
		{"Drum and Bass meets Lo-Fi", []string{"drum and bass", "lo fi"}},
		{"rock and roll", []string{"rock and roll"}},
		{"synthwave x trap", []string{"synthwave", "trap"}},
		{"polka jazz", []string{"polka", "jazz"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitGenreTokens(tt.text, cat))
		})
	}
}
