package prompt

import (
	"slices"
	"strings"
)

// DetectMode reports the encoding of a whole prompt: Max when a Max
// signature line or any Max-encoded field is present.
func DetectMode(text string) Encoding {
	return Parse(text).Mode
}

// GetField returns the value of the first line holding field, in either
// encoding.
func GetField(text string, field Field) (string, bool) {
	loc, ok := Parse(text).Find(field)
	if !ok {
		return "", false
	}
	return loc.Value, true
}

// ReplaceField rewrites the value of the first line holding field, keeping
// that line's encoding. Text without the field comes back unchanged.
func ReplaceField(text string, field Field, value string) string {
	t := Parse(text)
	loc, ok := t.Find(field)
	if !ok {
		return text
	}
	t.Lines[loc.Line] = replaceLine(loc, value)
	return t.String()
}

func replaceLine(loc Location, value string) string {
	value = cleanValue(value, loc.Encoding)
	if loc.Encoding == Max {
		return loc.prefix + value + `"`
	}
	return loc.prefix + value
}

// InsertField adds a field line in the encoding of mode. The line goes right
// after the nearest field that precedes it in the mode's canonical order, or
// right before the nearest one that follows it. A prompt with no fields gets
// the line at the top, below any Max signature lines. A field that already
// exists is replaced instead, so no duplicate is ever produced.
func InsertField(text string, field Field, value string, mode Encoding) string {
	t := Parse(text)
	if loc, ok := t.Find(field); ok {
		t.Lines[loc.Line] = replaceLine(loc, value)
		return t.String()
	}

	line := render(field, value, mode)
	if strings.TrimSpace(text) == "" {
		return line
	}

	at := insertPosition(t, field, mode)
	t.Lines = slices.Insert(t.Lines, at, line)
	return t.String()
}

// SetField replaces the field when present and inserts it otherwise.
func SetField(text string, field Field, value string, mode Encoding) string {
	return InsertField(text, field, value, mode)
}

func insertPosition(t *Template, field Field, mode Encoding) int {
	order := standardOrder
	if mode == Max {
		order = maxOrder
	}
	idx := slices.Index(order, field)

	for i := idx - 1; i >= 0; i-- {
		if loc, ok := t.Find(order[i]); ok {
			return loc.Line + 1
		}
	}
	for i := idx + 1; i < len(order); i++ {
		if loc, ok := t.Find(order[i]); ok {
			return loc.Line
		}
	}

	at := 0
	for at < len(t.Lines) && isSignatureLine(t.Lines[at]) {
		at++
	}
	return at
}
