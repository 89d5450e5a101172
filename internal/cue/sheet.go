package cue

import (
	"bytes"
	"os"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// utf16BOM selects UTF-8 decoding when found at the start of a file.
var utf16BOM = []byte{0xFE, 0xFF}

// lineBreak matches DOS, Unix and classic Mac line endings.
var lineBreak = regexp.MustCompile(`\r\n|\r|\n`)

// Command is one line of a cuesheet split into fields.
//
// The first field is the keyword (PERFORMER, TITLE, REM, FILE, TRACK,
// INDEX, ...). It is stored as read and compared case-insensitively.
type Command []string

// Keyword returns the uppercased first field, or "" for an empty command.
func (c Command) Keyword() string {
	if len(c) == 0 {
		return ""
	}
	return strings.ToUpper(c[0])
}

// Sheet is a CUE sheet document.
//
// Tracks[0] is the global track. Tracks appear in the order they were
// read or added. A Sheet has a single owner and is not safe for
// concurrent use.
type Sheet struct {
	Tracks []*Track
}

// NewSheet creates an empty Sheet holding only the global track.
func NewSheet() *Sheet {
	return &Sheet{Tracks: []*Track{{Number: 0}}}
}

// Global returns the global track (track 0).
func (s *Sheet) Global() *Track {
	if len(s.Tracks) == 0 {
		s.Tracks = append(s.Tracks, &Track{Number: 0})
	}
	return s.Tracks[0]
}

// Grow appends empty tracks, numbered by position, until the sheet holds
// at least n+1 tracks (the global track plus n).
func (s *Sheet) Grow(n int) {
	s.Global()
	for len(s.Tracks) <= n {
		s.Tracks = append(s.Tracks, &Track{Number: len(s.Tracks)})
	}
}

// Track returns the first track with the given number, or nil.
func (s *Sheet) Track(number int) *Track {
	for _, t := range s.Tracks {
		if t.Number == number {
			return t
		}
	}
	return nil
}

// TrackLength returns the length in milliseconds of the track at the
// given position, measured from its INDEX 01 to the INDEX 01 of the track
// that follows it.
//
// The frame span between the two indexes is converted as a whole, so equal
// spans give equal lengths wherever they sit in the sheet.
//
// It returns 0 for the last track, for an out-of-range position and when
// either INDEX 01 is missing or unparsable.
func (s *Sheet) TrackLength(position int) int64 {
	if position < 0 || position+1 >= len(s.Tracks) {
		return 0
	}

	start, ok := s.Tracks[position].Index("01")
	if !ok {
		return 0
	}
	end, ok := s.Tracks[position+1].Index("01")
	if !ok {
		return 0
	}

	return framesToMilliseconds(end.TotalFrames() - start.TotalFrames())
}

// Decode parses a cuesheet.
//
// Lines end in CRLF, LF or a bare CR. They are trimmed and blank lines
// skipped. A TRACK command starts a new
// track; everything before the first TRACK belongs to the global track.
// The only error is a *FormatError for a TRACK line without an integer
// track number.
func Decode(data []byte) (*Sheet, error) {
	text := decodeText(data)

	sheet := NewSheet()
	track := sheet.Tracks[0]

	for i, line := range lineBreak.Split(text, -1) {
		line = strings.TrimSpace(line)
		fields := SplitLine(line)
		if len(fields) == 0 {
			continue
		}

		if strings.ToUpper(fields[0]) == "TRACK" {
			if len(fields) < 2 {
				return nil, &FormatError{Line: i + 1, Text: line}
			}
			number, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, &FormatError{Line: i + 1, Text: line, Err: err}
			}
			track = &Track{Number: number}
			sheet.Tracks = append(sheet.Tracks, track)
		}

		track.Commands = append(track.Commands, Command(fields))
	}

	return sheet, nil
}

// Encode renders the sheet as UTF-8 text.
//
// Global commands are not indented. Inside a track, TRACK lines are
// indented by two spaces, FILE lines are not indented and every other
// command is indented by four spaces. Keywords are written in uppercase.
//
// Example output:
//
//	PERFORMER "The Artist"
//	TITLE Album
//	FILE album.wav WAVE
//	  TRACK 01 AUDIO
//	    TITLE "First Song"
//	    INDEX 01 00:00:00
func (s *Sheet) Encode() []byte {
	var sb strings.Builder

	for _, track := range s.Tracks {
		for _, cmd := range track.Commands {
			if len(cmd) == 0 {
				continue
			}
			keyword := cmd.Keyword()

			indent := 0
			if track.Number > 0 {
				switch keyword {
				case "TRACK":
					indent = 2
				case "FILE":
					indent = 0
				default:
					indent = 4
				}
			}

			fields := make([]string, len(cmd))
			copy(fields, cmd)
			fields[0] = keyword

			sb.WriteString(strings.Repeat(" ", indent))
			sb.WriteString(JoinLine(fields))
			sb.WriteString("\n")
		}
	}

	return []byte(sb.String())
}

// ReadFile reads and decodes the cuesheet at path.
//
// Errors from opening or reading the file are returned unchanged.
func ReadFile(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// WriteFile encodes the sheet and writes it to path, replacing any
// existing content. The file is created with mode 0644.
func (s *Sheet) WriteFile(path string) error {
	return os.WriteFile(path, s.Encode(), 0644)
}

// decodeText converts raw file bytes to a string. See the package
// documentation for the character set rule.
func decodeText(data []byte) string {
	var enc encoding.Encoding = charmap.ISO8859_1
	if bytes.HasPrefix(data, utf16BOM) {
		data = data[len(utf16BOM):]
		enc = unicode.UTF8
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		// Not expected: both decoders substitute U+FFFD.
		return strings.ToValidUTF8(string(data), "\uFFFD")
	}
	return string(out)
}
