// Package prompt edits music-prompt text: structured fields (Genre, Mood,
// Instruments, BPM, Key, Recording) written in either the Standard or the Max
// encoding, plus post-processing of generated lyrics and prompt bodies.
//
// Every function here is pure: text in, text out.
package prompt

import (
	"regexp"
	"strings"
)

// Encoding is the way a field line is written.
type Encoding int

const (
	// Standard lines read `FieldName: value`.
	Standard Encoding = iota
	// Max lines read `fieldname: "value"`.
	Max
)

func (e Encoding) String() string {
	if e == Max {
		return "max"
	}
	return "standard"
}

// ModeFromFlag maps the max-mode switch used by callers to an encoding.
func ModeFromFlag(maxMode bool) Encoding {
	if maxMode {
		return Max
	}
	return Standard
}

// Field is a logical prompt field.
type Field string

const (
	FieldGenre       Field = "Genre"
	FieldMood        Field = "Mood"
	FieldInstruments Field = "Instruments"
	FieldBPM         Field = "BPM"
	FieldKey         Field = "Key"
	FieldRecording   Field = "Recording"
)

// Fields lists every supported field.
var Fields = []Field{FieldGenre, FieldMood, FieldInstruments, FieldBPM, FieldKey, FieldRecording}

var (
	standardOrder = []Field{FieldGenre, FieldMood, FieldInstruments, FieldBPM, FieldKey, FieldRecording}
	maxOrder      = []Field{FieldGenre, FieldBPM, FieldInstruments, FieldMood, FieldKey, FieldRecording}
)

// fieldAliases maps lower-case names as they appear in text to fields.
var fieldAliases = map[string]Field{
	"genre":       FieldGenre,
	"mood":        FieldMood,
	"instruments": FieldInstruments,
	"bpm":         FieldBPM,
	"tempo":       FieldBPM,
	"key":         FieldKey,
	"recording":   FieldRecording,
}

// ParseField resolves a field name case-insensitively. Tempo is an alias of
// BPM.
func ParseField(name string) (Field, bool) {
	f, ok := fieldAliases[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// maxName is the lower-case spelling used by the Max encoding.
func (f Field) maxName() string {
	return strings.ToLower(string(f))
}

const fieldNames = `genre|mood|instruments|bpm|tempo|key|recording`

var (
	maxLinePattern      = regexp.MustCompile(`^(\s*(` + fieldNames + `)\s*:\s*")(.*)"\s*$`)
	standardLinePattern = regexp.MustCompile(`^(\s*((?i:` + fieldNames + `))\s*:[ \t]*)(.*?)\s*$`)

	maxModeSignature = regexp.MustCompile(`(?i)^\s*\[\s*is_max_mode\s*:\s*max\s*\]\s*\(\s*max\s*\)\s*$`)
	tagsSignature    = regexp.MustCompile(`(?i)^\s*::\s*tags\b.*::\s*$`)
)

// Location is a field found in a parsed template.
type Location struct {
	Field    Field
	Line     int
	Encoding Encoding
	Value    string

	// prefix is everything before the value, so a replacement keeps the
	// original indentation and spelling of the name.
	prefix string
}

// Template is prompt text split into lines with its field lines located.
type Template struct {
	Lines  []string
	Fields []Location
	Mode   Encoding
}

// Parse normalises line endings and locates every field line.
func Parse(text string) *Template {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	t := &Template{Lines: strings.Split(text, "\n")}

	for i, line := range t.Lines {
		if isSignatureLine(line) {
			t.Mode = Max
			continue
		}
		loc, ok := parseFieldLine(line)
		if !ok {
			continue
		}
		loc.Line = i
		if loc.Encoding == Max {
			t.Mode = Max
		}
		t.Fields = append(t.Fields, loc)
	}
	return t
}

func parseFieldLine(line string) (Location, bool) {
	if m := maxLinePattern.FindStringSubmatch(line); m != nil {
		f := fieldAliases[m[2]]
		return Location{Field: f, Encoding: Max, Value: m[3], prefix: m[1]}, true
	}
	if m := standardLinePattern.FindStringSubmatch(line); m != nil {
		f := fieldAliases[strings.ToLower(m[2])]
		return Location{Field: f, Encoding: Standard, Value: m[3], prefix: m[1]}, true
	}
	return Location{}, false
}

func isSignatureLine(line string) bool {
	return maxModeSignature.MatchString(line) || tagsSignature.MatchString(line)
}

func isFieldLine(line string) bool {
	_, ok := parseFieldLine(line)
	return ok
}

// Find returns the first location of a field.
func (t *Template) Find(f Field) (Location, bool) {
	for _, loc := range t.Fields {
		if loc.Field == f {
			return loc, true
		}
	}
	return Location{}, false
}

// String joins the lines back into text.
func (t *Template) String() string {
	return strings.Join(t.Lines, "\n")
}

// render writes a field line in the given encoding.
func render(f Field, value string, enc Encoding) string {
	value = cleanValue(value, enc)
	if enc == Max {
		return f.maxName() + `: "` + value + `"`
	}
	return string(f) + ": " + value
}

// cleanValue keeps a value on one line. Max values cannot hold a double
// quote; Standard values cannot start with one, or the line would read back
// as Max.
func cleanValue(value string, enc Encoding) string {
	value = strings.Join(strings.Fields(value), " ")
	if enc == Max {
		return strings.ReplaceAll(value, `"`, `'`)
	}
	return strings.Trim(value, `" `)
}
