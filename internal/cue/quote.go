package cue

import (
	"regexp"
	"strings"
	"unicode"
)

// splitRegex matches one field: a double-quoted run or a run of non-space
// characters. Tabs inside an unquoted run are kept.
var splitRegex = regexp.MustCompile(`\s*("[^"]*"|[^ ]+)\s*`)

// Unquote removes surrounding double quotes from a field.
//
// A field that only starts with a quote has the leading quote removed and
// the rest passed through. Escape sequences are not interpreted.
//
// Example:
//
//	Unquote(`"Hello World"`) // Returns "Hello World"
//	Unquote(`"unterminated`) // Returns "unterminated"
//	Unquote(`plain`)         // Returns "plain"
func Unquote(field string) string {
	if !strings.HasPrefix(field, `"`) {
		return field
	}
	if len(field) > 1 && strings.HasSuffix(field, `"`) {
		return field[1 : len(field)-1]
	}
	return field[1:]
}

// Quote wraps a field in double quotes if it contains whitespace.
//
// Double quotes inside a quoted field are replaced with single quotes,
// since the format has no escape sequence for them. This is lossy.
//
// Example:
//
//	Quote("Hello World")    // Returns `"Hello World"`
//	Quote(`Say "Hi" there`) // Returns `"Say 'Hi' there"`
//	Quote("NoSpace")        // Returns "NoSpace"
func Quote(field string) string {
	if strings.IndexFunc(field, unicode.IsSpace) < 0 {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, "'") + `"`
}

// SplitLine splits a line into fields, honoring double-quoted fields that
// contain whitespace. A blank line yields an empty slice.
//
// Example:
//
//	SplitLine(`TRACK 01 AUDIO`)            // ["TRACK", "01", "AUDIO"]
//	SplitLine(`PERFORMER "Artist, The"`)   // ["PERFORMER", "Artist, The"]
func SplitLine(line string) []string {
	matches := splitRegex.FindAllStringSubmatch(strings.TrimSpace(line), -1)
	fields := make([]string, 0, len(matches))
	for _, m := range matches {
		fields = append(fields, Unquote(m[1]))
	}
	return fields
}

// JoinLine renders fields as a single line, quoting every field that
// contains whitespace.
func JoinLine(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = Quote(f)
	}
	return strings.Join(quoted, " ")
}
