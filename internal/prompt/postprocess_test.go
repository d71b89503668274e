package prompt

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func newTestPostProcessor(t *testing.T, threshold int) *PostProcessor {
	t.Helper()
	p, err := NewPostProcessor(NewPromptLoader(), threshold)
	if err != nil {
		t.Fatalf("NewPostProcessor() returned error: %v", err)
	}
	return p
}

const repetitiveLyrics = `Genre: fire fire fire
[CHORUS]
Fire in the night, fire in the sky
burning fire, burning night, burning light
`

func TestDetectRepeatedWords(t *testing.T) {
	p := newTestPostProcessor(t, 0)
	if p.Threshold() != DefaultRepetitionThreshold {
		t.Fatalf("Threshold() = %d, want %d", p.Threshold(), DefaultRepetitionThreshold)
	}

	got := p.DetectRepeatedWords(repetitiveLyrics)
	want := []string{"fire", "burning"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DetectRepeatedWords() = %v, want %v", got, want)
	}

	got = newTestPostProcessor(t, 2).DetectRepeatedWords(repetitiveLyrics)
	want = []string{"fire", "burning", "night"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DetectRepeatedWords() threshold 2 = %v, want %v", got, want)
	}

	if got := p.DetectRepeatedWords("the the the and and and"); len(got) != 0 {
		t.Errorf("stop words reported: %v", got)
	}
}

func TestStripLeakedMetaLines(t *testing.T) {
	p := newTestPostProcessor(t, 0)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "drops instructions keeps structure",
			in: `Here is the revised prompt:
Genre: jazz
Mood: avoid repetition

[VERSE]
Walking down the avenue
Note: I removed repeated words

[CHORUS]
Shine on`,
			want: `Genre: jazz
Mood: avoid repetition

[VERSE]
Walking down the avenue

[CHORUS]
Shine on`,
		},
		{
			name: "merges blank lines left by removal",
			in:   "line a\n\nOutput only the lyrics.\n\nline b",
			want: "line a\n\nline b",
		},
		{
			name: "trailing instruction",
			in:   "line a\n\n```",
			want: "line a",
		},
		{
			name: "lyrics that look like notes survive",
			in:   "[VERSE]\nDon't change for anyone\nDo not add me to your list\nSystem: overload in my heart\nHere is the lyrics of my life\nNote: you left at noon",
			want: "[VERSE]\nDon't change for anyone\nDo not add me to your list\nSystem: overload in my heart\nHere is the lyrics of my life\nNote: you left at noon",
		},
		{
			name: "instruction phrasings dropped",
			in:   "[VERSE]\nDon't repeat words\nSystem: you are a lyricist\nNote: replaced the second chorus\nla la",
			want: "[VERSE]\nla la",
		},
		{
			name: "clean text untouched",
			in:   "Genre: pop\n\n[VERSE]\nhello\n",
			want: "Genre: pop\n\n[VERSE]\nhello\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.StripLeakedMetaLines(tt.in); got != tt.want {
				t.Errorf("StripLeakedMetaLines() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestTruncateToLimit(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		max    int
		locked string
		want   string
	}{
		{"within budget", "short text", 20, "", "short text"},
		{"word boundary", "the quick brown fox jumps", 12, "", "the quick"},
		{"no boundary", "abcdefghij", 4, "", "abcd"},
		{"zero budget", "anything", 0, "", ""},
		{"runes not bytes", "ééééé ééééé", 7, "", "ééééé"},
		{"phrase inside budget", "keep this phrase then more words", 20, "this phrase", "keep this phrase"},
		{"window slides to phrase", "first line\nsecond line\nLOCKED END", 22, "LOCKED END", "second line\nLOCKED END"},
		{"phrase too long", "alpha beta gamma", 8, "alpha beta gamma", "alpha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateToLimit(tt.text, tt.max, tt.locked); got != tt.want {
				t.Errorf("TruncateToLimit() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncateToLimitKeepsLockedPhrase(t *testing.T) {
	texts := []string{
		"Genre: afrobeat\nMood: joyful\n\n[VERSE]\nwe dance in the golden light until the morning comes around again",
		"one two three four five six seven eight nine ten eleven twelve",
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa tail",
	}
	locks := []string{"golden light", "Mood: joyful", "until the morning", "nine ten", "twelve", "tail", "one", "aaaa"}

	for _, text := range texts {
		for _, lock := range locks {
			for limit := 1; limit <= utf8.RuneCountInString(text)+2; limit++ {
				got := TruncateToLimit(text, limit, lock)
				if n := utf8.RuneCountInString(got); n > limit {
					t.Fatalf("TruncateToLimit(%d, %q) returned %d chars", limit, lock, n)
				}
				if strings.Contains(text, lock) && limit >= utf8.RuneCountInString(lock) && !strings.Contains(got, lock) {
					t.Fatalf("TruncateToLimit(%d, %q) lost the phrase: %q", limit, lock, got)
				}
			}
		}
	}
}

func TestValidateAndFixFormatStandard(t *testing.T) {
	p := newTestPostProcessor(t, 0)

	in := "Genre: pop   \n\nverse 1:\nhello there\n(Chorus)\nla la\n**Bridge**\nend"
	want := "Genre: pop\n\n[VERSE 1]\nhello there\n[CHORUS]\nla la\n[BRIDGE]\nend"
	if got := p.ValidateAndFixFormat(in); got != want {
		t.Errorf("ValidateAndFixFormat() =\n%q\nwant\n%q", got, want)
	}

	in = "Genre: pop\nMood: happy\n\n\n\nsunshine on me\nall day"
	want = "Genre: pop\nMood: happy\n\n[VERSE]\nsunshine on me\nall day"
	if got := p.ValidateAndFixFormat(in); got != want {
		t.Errorf("ValidateAndFixFormat() =\n%q\nwant\n%q", got, want)
	}

	in = "Genre: pop\n[chorus]\nla"
	want = "Genre: pop\n[CHORUS]\nla"
	if got := p.ValidateAndFixFormat(in); got != want {
		t.Errorf("ValidateAndFixFormat() =\n%q\nwant\n%q", got, want)
	}
}

func TestValidateAndFixFormatMax(t *testing.T) {
	p := newTestPostProcessor(t, 0)

	in := "[Is_MAX_MODE: MAX](MAX)\nGenre: jazz\nbpm: \"120\nmood: \"calm \"cool\" vibes\""
	want := "[Is_MAX_MODE: MAX](MAX)\ngenre: \"jazz\"\nbpm: \"120\"\nmood: \"calm 'cool' vibes\""
	if got := p.ValidateAndFixFormat(in); got != want {
		t.Errorf("ValidateAndFixFormat() =\n%q\nwant\n%q", got, want)
	}
}

func TestValidateAndFixFormatIdempotent(t *testing.T) {
	p := newTestPostProcessor(t, 0)
	inputs := []string{
		standardPrompt,
		maxPrompt,
		"verse 1:\nhello\n\n\n\nchorus:\nla",
		"just some words\nand more",
	}
	for _, in := range inputs {
		once := p.ValidateAndFixFormat(in)
		if twice := p.ValidateAndFixFormat(once); twice != once {
			t.Errorf("not idempotent:\n%q\n%q", once, twice)
		}
	}
}
