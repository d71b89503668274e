package prompt

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultRepetitionThreshold is how often a content word must occur before
// DetectRepeatedWords reports it.
const DefaultRepetitionThreshold = 3

var (
	wordPattern    = regexp.MustCompile(`[\p{L}\p{N}]+(?:'[\p{L}]+)?`)
	bracketLine    = regexp.MustCompile(`^\s*\[[^\]]*\]\s*$`)
	blankRunsRegex = regexp.MustCompile(`\n{3,}`)
)

// PostProcessor cleans up generated prompt text. It is built once from the
// embedded word lists and is safe for concurrent use.
type PostProcessor struct {
	stopWords    map[string]bool
	sectionNames map[string]bool
	metaPatterns []*regexp.Regexp
	threshold    int
}

// NewPostProcessor compiles the tables from loader. threshold <= 0 selects
// DefaultRepetitionThreshold.
func NewPostProcessor(loader *Loader, threshold int) (*PostProcessor, error) {
	if threshold <= 0 {
		threshold = DefaultRepetitionThreshold
	}

	stopWords, err := loader.GetStopWords()
	if err != nil {
		return nil, fmt.Errorf("failed to load stop words: %w", err)
	}
	sections, err := loader.GetSectionNames()
	if err != nil {
		return nil, fmt.Errorf("failed to load section names: %w", err)
	}
	phrases, err := loader.GetMetaPhrases()
	if err != nil {
		return nil, fmt.Errorf("failed to load meta phrases: %w", err)
	}

	p := &PostProcessor{
		stopWords:    toSet(stopWords),
		sectionNames: toSet(sections),
		threshold:    threshold,
	}
	for _, phrase := range phrases {
		re, err := regexp.Compile(`(?i)` + phrase)
		if err != nil {
			return nil, fmt.Errorf("failed to compile meta phrase %q: %w", phrase, err)
		}
		p.metaPatterns = append(p.metaPatterns, re)
	}
	return p, nil
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = true
	}
	return set
}

// Threshold is the repetition count DetectRepeatedWords reports from.
func (p *PostProcessor) Threshold() int {
	return p.threshold
}

// isStructural reports lines that post-processing must never drop or count:
// field lines, section markers and Max signatures.
func (p *PostProcessor) isStructural(line string) bool {
	if isFieldLine(line) || isSignatureLine(line) || bracketLine.MatchString(line) {
		return true
	}
	_, ok := p.sectionHeader(line)
	return ok
}

// DetectRepeatedWords lists lower-cased content words used at least
// Threshold times, most frequent first and then by first appearance. Stop
// words, words shorter than three letters and structural lines are ignored.
func (p *PostProcessor) DetectRepeatedWords(text string) []string {
	type wordCount struct {
		word  string
		count int
		first int
	}
	counts := make(map[string]*wordCount)
	pos := 0
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if p.isStructural(line) {
			continue
		}
		for _, w := range wordPattern.FindAllString(line, -1) {
			w = strings.ToLower(w)
			if utf8.RuneCountInString(w) < 3 || p.stopWords[w] {
				continue
			}
			if c, ok := counts[w]; ok {
				c.count++
				continue
			}
			counts[w] = &wordCount{word: w, count: 1, first: pos}
			pos++
		}
	}

	var repeated []*wordCount
	for _, c := range counts {
		if c.count >= p.threshold {
			repeated = append(repeated, c)
		}
	}
	slices.SortFunc(repeated, func(a, b *wordCount) int {
		if a.count != b.count {
			return b.count - a.count
		}
		return a.first - b.first
	})

	out := make([]string, len(repeated))
	for i, c := range repeated {
		out[i] = c.word
	}
	return out
}

// StripLeakedMetaLines drops whole lines that are instructions to a model
// rather than content ("Here is the revised prompt:", "Note: removed
// repetition"). Structural lines are always kept. Blank lines left next to
// each other by a removal are merged.
func (p *PostProcessor) StripLeakedMetaLines(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	removed := false

	for _, line := range lines {
		if !p.isStructural(line) && p.isMeta(line) {
			removed = true
			continue
		}
		blank := strings.TrimSpace(line) == ""
		if blank && removed && (len(out) == 0 || strings.TrimSpace(out[len(out)-1]) == "") {
			continue
		}
		if !blank {
			removed = false
		}
		out = append(out, line)
	}
	if removed {
		for len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
			out = out[:len(out)-1]
		}
	}
	return strings.Join(out, "\n")
}

func (p *PostProcessor) isMeta(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	for _, re := range p.metaPatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// TruncateToLimit shortens text to at most maxChars characters, cutting at
// a word boundary. When lockedPhrase occurs in text and fits the budget it
// always survives intact: if it ends past the budget the kept window slides
// forward, starting at a line or word boundary before the phrase.
func TruncateToLimit(text string, maxChars int, lockedPhrase string) string {
	if maxChars <= 0 {
		return ""
	}
	r := []rune(text)
	if len(r) <= maxChars {
		return text
	}

	phraseLen := utf8.RuneCountInString(lockedPhrase)
	idx := -1
	if lockedPhrase != "" && phraseLen <= maxChars {
		idx = strings.Index(text, lockedPhrase)
	}
	if idx < 0 {
		return cutAtBoundary(r, maxChars, 0)
	}

	start := utf8.RuneCountInString(text[:idx])
	end := start + phraseLen
	if end <= maxChars {
		return cutAtBoundary(r, maxChars, end)
	}

	ws := windowStart(r, end-maxChars, start)
	return cutAtBoundary(r[ws:], maxChars, end-ws)
}

// windowStart picks where a window that must reach the phrase at start may
// begin: the first line start in [lo, start], else the first word start,
// else lo itself.
func windowStart(r []rune, lo, start int) int {
	for i := lo; i <= start; i++ {
		if i == 0 || r[i-1] == '\n' {
			return i
		}
	}
	for i := lo; i <= start; i++ {
		if unicode.IsSpace(r[i-1]) && !unicode.IsSpace(r[i]) {
			return i
		}
	}
	ws := lo
	for ws < start && unicode.IsSpace(r[ws]) {
		ws++
	}
	return ws
}

// cutAtBoundary keeps at most maxLen runes, preferring to end just before
// whitespace, and never cuts below minEnd.
func cutAtBoundary(r []rune, maxLen, minEnd int) string {
	if len(r) <= maxLen {
		return string(r)
	}
	cut := maxLen
	for p := maxLen; p >= minEnd && p > 0; p-- {
		if unicode.IsSpace(r[p]) {
			cut = p
			break
		}
	}
	for cut > minEnd && unicode.IsSpace(r[cut-1]) {
		cut--
	}
	return string(r[:cut])
}

// CollapseBlankLines reduces runs of blank lines to a single blank line.
func CollapseBlankLines(text string) string {
	return blankRunsRegex.ReplaceAllString(text, "\n\n")
}
