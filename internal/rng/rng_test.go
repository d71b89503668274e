package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource replays a list of floats, cycling when exhausted.
type fixedSource struct {
	values []float64
	pos    int
}

func (f *fixedSource) Float64() float64 {
	v := f.values[f.pos%len(f.values)]
	f.pos++
	return v
}

func TestNewSameSeedSameSequence(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 1000; i++ {
		require.Equal(t, a.Float64(), b.Float64(), "draw %d diverged", i)
	}
}

func TestNewDifferentSeedsDiffer(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 100; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	assert.Less(t, same, 100)
}

func TestFloat64Range(t *testing.T) {
	src := New(7)
	for i := 0; i < 10000; i++ {
		v := src.Float64()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestPick(t *testing.T) {
	_, ok := Pick([]string{}, New(1))
	assert.False(t, ok)

	items := []string{"a", "b", "c", "d"}
	got, ok := Pick(items, &fixedSource{values: []float64{0.0}})
	require.True(t, ok)
	assert.Equal(t, "a", got)

	got, _ = Pick(items, &fixedSource{values: []float64{0.99}})
	assert.Equal(t, "d", got)

	got, _ = Pick(items, &fixedSource{values: []float64{0.5}})
	assert.Equal(t, "c", got)
}

func TestShuffleIsPermutationAndCopy(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	out := Shuffle(items, New(3))

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, items, "input must not be modified")
	assert.ElementsMatch(t, items, out)
}

func TestShuffleDeterministic(t *testing.T) {
	items := []string{"kick", "snare", "hat", "clap", "tom", "ride"}
	assert.Equal(t, Shuffle(items, New(9)), Shuffle(items, New(9)))
}

func TestChance(t *testing.T) {
	assert.True(t, Chance(0.5, &fixedSource{values: []float64{0.49}}))
	assert.False(t, Chance(0.5, &fixedSource{values: []float64{0.5}}))
	assert.False(t, Chance(0, &fixedSource{values: []float64{0}}))
	assert.True(t, Chance(1, &fixedSource{values: []float64{0.999}}))
}

func TestChanceAlwaysDraws(t *testing.T) {
	src := &fixedSource{values: []float64{0.1, 0.2}}
	Chance(0, src)
	Chance(1, src)
	assert.Equal(t, 2, src.pos)
}

func TestIntInclusive(t *testing.T) {
	assert.Equal(t, 2, IntInclusive(2, 5, &fixedSource{values: []float64{0}}))
	assert.Equal(t, 5, IntInclusive(2, 5, &fixedSource{values: []float64{0.999}}))
	assert.Equal(t, 3, IntInclusive(3, 3, &fixedSource{values: []float64{0.7}}))
	assert.Equal(t, 5, IntInclusive(5, 2, &fixedSource{values: []float64{0.999}}))

	src := New(11)
	for i := 0; i < 1000; i++ {
		v := IntInclusive(1, 3, src)
		require.GreaterOrEqual(t, v, 1)
		require.LessOrEqual(t, v, 3)
	}
}

func TestSeedFromStrings(t *testing.T) {
	assert.Equal(t, SeedFromStrings("jazz", "rock"), SeedFromStrings("jazz", "rock"))
	assert.NotEqual(t, SeedFromStrings("jazz", "rock"), SeedFromStrings("jazzrock"))
	assert.GreaterOrEqual(t, SeedFromStrings("x"), int64(0))
}
