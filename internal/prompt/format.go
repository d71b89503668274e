package prompt

import (
	"regexp"
	"slices"
	"strings"
)

// sectionHeaderPattern matches a lone section label in the loose forms
// models like to produce: "verse 1:", "(Chorus)", "**Bridge**", "[chorus]".
var sectionHeaderPattern = regexp.MustCompile(
	`^\s*(\*\*|__)?\s*([\[(])?\s*([A-Za-z][A-Za-z -]*?)\s*(\d+)?\s*([\])])?\s*(\*\*|__)?\s*(:)?\s*$`)

// sectionHeader returns the canonical marker for a header line, for example
// "[VERSE 1]". A bare word is only a header when it carries decoration or a
// number, so a lyric line reading "Drop" stays a lyric.
func (p *PostProcessor) sectionHeader(line string) (string, bool) {
	m := sectionHeaderPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	name := strings.ToLower(strings.Join(strings.Fields(m[3]), " "))
	if !p.sectionNames[name] {
		return "", false
	}
	decorated := m[1] != "" || m[2] != "" || m[5] != "" || m[6] != "" || m[7] != ""
	if !decorated && m[4] == "" {
		return "", false
	}
	if (m[2] == "[") != (m[5] == "]") || (m[2] == "(") != (m[5] == ")") {
		return "", false
	}

	marker := strings.ToUpper(name)
	if m[4] != "" {
		marker += " " + m[4]
	}
	return "[" + marker + "]", true
}

// ValidateAndFixFormat makes the structural markers of the detected mode
// present and well formed. It only applies these edits:
//
//   - Max mode: field names are lower-cased and values double-quoted, closing
//     any quote left open.
//   - Standard mode: loose section headers become bracketed markers such as
//     [VERSE 1] or [CHORUS], and a lyric body with no marker gets [VERSE]
//     before its first line.
//   - Both: trailing spaces are trimmed and runs of blank lines collapsed.
func (p *PostProcessor) ValidateAndFixFormat(text string) string {
	t := Parse(text)

	for i, line := range t.Lines {
		t.Lines[i] = strings.TrimRight(line, " \t")
	}

	if t.Mode == Max {
		for _, loc := range t.Fields {
			t.Lines[loc.Line] = fixMaxField(t.Lines[loc.Line])
		}
	} else {
		p.fixSections(t)
	}

	return CollapseBlankLines(t.String())
}

// fixMaxField rewrites a field line as `name: "value"`.
func fixMaxField(line string) string {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return line
	}
	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	name := strings.ToLower(strings.TrimSpace(line[:idx]))
	value := strings.TrimSpace(line[idx+1:])
	value = strings.TrimPrefix(value, `"`)
	value = strings.TrimSuffix(value, `"`)
	return indent + name + `: "` + cleanValue(value, Max) + `"`
}

func (p *PostProcessor) fixSections(t *Template) {
	hasMarker := false
	for i, line := range t.Lines {
		if isFieldLine(line) || isSignatureLine(line) {
			continue
		}
		if marker, ok := p.sectionHeader(line); ok {
			t.Lines[i] = marker
			hasMarker = true
			continue
		}
		if bracketLine.MatchString(line) {
			hasMarker = true
		}
	}
	if hasMarker {
		return
	}

	// The lyric body starts after the last field line.
	bodyStart := 0
	if n := len(t.Fields); n > 0 {
		bodyStart = t.Fields[n-1].Line + 1
	}
	for i := bodyStart; i < len(t.Lines); i++ {
		line := t.Lines[i]
		if strings.TrimSpace(line) == "" || isFieldLine(line) || isSignatureLine(line) {
			continue
		}
		t.Lines = slices.Insert(t.Lines, i, "[VERSE]")
		return
	}
}
