package cue

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

const sampleSheet = `REM GENRE Rock
PERFORMER "The Artist"
TITLE "Some Album"
FILE "The Artist - Some Album.wav" WAVE
  TRACK 01 AUDIO
    TITLE "First Song"
    PERFORMER "The Artist"
    INDEX 01 00:00:00

  TRACK 02 AUDIO
    TITLE Second
    INDEX 00 03:58:40
    INDEX 01 04:00:00
`

func TestDecode(t *testing.T) {
	sheet, err := Decode([]byte(sampleSheet))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if len(sheet.Tracks) != 3 {
		t.Fatalf("len(Tracks) = %d, want 3", len(sheet.Tracks))
	}

	global := sheet.Tracks[0]
	if global.Number != 0 {
		t.Errorf("Tracks[0].Number = %d, want 0", global.Number)
	}
	wantGlobal := []Command{
		{"REM", "GENRE", "Rock"},
		{"PERFORMER", "The Artist"},
		{"TITLE", "Some Album"},
		{"FILE", "The Artist - Some Album.wav", "WAVE"},
	}
	if !reflect.DeepEqual(global.Commands, wantGlobal) {
		t.Errorf("global commands = %q, want %q", global.Commands, wantGlobal)
	}

	for i, want := range []int{0, 1, 2} {
		if got := sheet.Tracks[i].Number; got != want {
			t.Errorf("Tracks[%d].Number = %d, want %d", i, got, want)
		}
	}

	if got := sheet.Tracks[1].Commands[0]; !reflect.DeepEqual(got, Command{"TRACK", "01", "AUDIO"}) {
		t.Errorf("first command of track 1 = %q, want TRACK line", got)
	}
	if got := len(sheet.Tracks[2].Commands); got != 4 {
		t.Errorf("len(track 2 commands) = %d, want 4 (blank line skipped)", got)
	}
}

func TestDecodeLineEndings(t *testing.T) {
	tests := []struct {
		name string
		sep  string
	}{
		{"LF", "\n"},
		{"CRLF", "\r\n"},
		{"CR", "\r"},
	}

	lines := []string{"TITLE Album", "TRACK 01 AUDIO", "  TITLE One", "TRACK 02 AUDIO", "  TITLE Two"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte(strings.Join(lines, tt.sep) + tt.sep)
			sheet, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if len(sheet.Tracks) != 3 {
				t.Fatalf("len(Tracks) = %d, want 3", len(sheet.Tracks))
			}
			if got := sheet.Track(2).Title(); got != "Two" {
				t.Errorf("Track(2).Title() = %q, want %q", got, "Two")
			}
		})
	}
}

func TestDecodeFormatErrorLineNumberCR(t *testing.T) {
	_, err := Decode([]byte("TITLE Album\rTRACK 01 AUDIO\rTRACK xx AUDIO\r"))
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("Decode() error = %v, want *FormatError", err)
	}
	if fe.Line != 3 {
		t.Errorf("FormatError.Line = %d, want 3", fe.Line)
	}
}

func TestDecodeKeepsKeywordCase(t *testing.T) {
	sheet, err := Decode([]byte("performer Someone\ntrack 3 audio\n  title Lower\n"))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(sheet.Tracks) != 2 || sheet.Tracks[1].Number != 3 {
		t.Fatalf("lowercase TRACK not recognized: %+v", sheet.Tracks)
	}
	if got := sheet.Tracks[0].Commands[0][0]; got != "performer" {
		t.Errorf("stored keyword = %q, want %q", got, "performer")
	}
	if got := sheet.Tracks[0].Artist(); got != "Someone" {
		t.Errorf("Artist() = %q, want %q", got, "Someone")
	}
}

func TestDecodeFormatError(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"non-integer", "TITLE x\nTRACK one AUDIO\n", 2},
		{"missing", "\n\nTRACK\n", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("Decode() error = %v, want *FormatError", err)
			}
			if fe.Line != tt.line {
				t.Errorf("FormatError.Line = %d, want %d", fe.Line, tt.line)
			}
			if !errors.Is(err, ErrFormat) {
				t.Error("errors.Is(err, ErrFormat) = false")
			}
		})
	}

	_, err := Decode([]byte("TRACK x AUDIO"))
	var numErr *strconv.NumError
	if !errors.As(err, &numErr) {
		t.Errorf("FormatError should unwrap to *strconv.NumError, got %v", err)
	}
}

func TestDecodeCharset(t *testing.T) {
	// "Café" in UTF-8 behind the marker decodes as UTF-8.
	utf8Data := append([]byte{0xFE, 0xFF}, []byte("TITLE Caf\xc3\xa9\n")...)
	sheet, err := Decode(utf8Data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := sheet.Global().Title(); got != "Café" {
		t.Errorf("UTF-8 Title() = %q, want %q", got, "Café")
	}

	// Without the marker the same bytes are Latin-1.
	sheet, err = Decode([]byte("TITLE Caf\xc3\xa9\n"))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := sheet.Global().Title(); got != "CafÃ©" {
		t.Errorf("Latin-1 Title() = %q, want %q", got, "CafÃ©")
	}

	// A single Latin-1 byte.
	sheet, _ = Decode([]byte("TITLE Caf\xe9\n"))
	if got := sheet.Global().Title(); got != "Café" {
		t.Errorf("Latin-1 Title() = %q, want %q", got, "Café")
	}

	// Invalid UTF-8 is replaced, not rejected.
	sheet, err = Decode(append([]byte{0xFE, 0xFF}, []byte("TITLE a\xffb\n")...))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := sheet.Global().Title(); got != "a\uFFFDb" {
		t.Errorf("Title() = %q, want %q", got, "a\uFFFDb")
	}
}

func TestEncode(t *testing.T) {
	sheet := NewSheet()
	sheet.Global().Add("PERFORMER", "The Artist")
	sheet.Global().Add("FILE", "a b.wav", "WAVE")
	sheet.Grow(2)
	sheet.Tracks[1].Add("TRACK", "01", "AUDIO")
	sheet.Tracks[1].Add("title", "One")
	sheet.Tracks[1].Add("INDEX", "01", "00:00:00")
	sheet.Tracks[1].Add("FILE", "next.mp3", "MP3")
	sheet.Tracks[2].Add("TRACK", "02", "AUDIO")
	sheet.Tracks[2].Add("INDEX", "01", "00:00:00")

	want := `PERFORMER "The Artist"
FILE "a b.wav" WAVE
  TRACK 01 AUDIO
    TITLE One
    INDEX 01 00:00:00
FILE next.mp3 MP3
  TRACK 02 AUDIO
    INDEX 01 00:00:00
`
	if got := string(sheet.Encode()); got != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", got, want)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for n := 0; n <= 5; n++ {
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			sheet := NewSheet()
			sheet.Global().Add("PERFORMER", "Various Artists")
			sheet.Global().Add("REM", "DATE", "1999")
			sheet.Global().Add("FILE", "disc one.flac", "WAVE")
			sheet.Grow(n)
			for i := 1; i <= n; i++ {
				track := sheet.Tracks[i]
				track.Add("TRACK", fmt.Sprintf("%02d", i), "AUDIO")
				track.Add("TITLE", "Song \"number\" "+strconv.Itoa(i))
				track.Add("INDEX", "01", TimestampFromMilliseconds(int64(i-1)*123456).String())
			}

			decoded, err := Decode(sheet.Encode())
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if len(decoded.Tracks) != len(sheet.Tracks) {
				t.Fatalf("len(Tracks) = %d, want %d", len(decoded.Tracks), len(sheet.Tracks))
			}
			for i := range sheet.Tracks {
				want := sheet.Tracks[i]
				got := decoded.Tracks[i]
				if got.Number != want.Number {
					t.Errorf("Tracks[%d].Number = %d, want %d", i, got.Number, want.Number)
				}
				for j, cmd := range want.Commands {
					// Inner double quotes are written as single quotes.
					if cmd.Keyword() == "TITLE" {
						cmd = Command{"TITLE", "Song 'number' " + strconv.Itoa(i)}
					}
					if !reflect.DeepEqual(got.Commands[j], cmd) {
						t.Errorf("Tracks[%d].Commands[%d] = %q, want %q", i, j, got.Commands[j], cmd)
					}
				}
			}
		})
	}
}

func TestReadWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "album.cue")

	sheet, err := Decode([]byte(sampleSheet))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if err := sheet.WriteFile(path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	read, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !reflect.DeepEqual(read, sheet) {
		t.Errorf("ReadFile() = %+v, want %+v", read, sheet)
	}
}

func TestReadFileNotFound(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.cue"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile() error = %v, want fs.ErrNotExist", err)
	}
}

func TestTrackLength(t *testing.T) {
	sheet, err := Decode([]byte(sampleSheet))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if got := sheet.TrackLength(1); got != 240000 {
		t.Errorf("TrackLength(1) = %d, want 240000", got)
	}
	if got := sheet.Tracks[1].Length(sheet); got != 240000 {
		t.Errorf("Length() = %d, want 240000", got)
	}

	// Last track, global track without INDEX and bad positions are zero.
	for _, pos := range []int{2, 0, -1, 10} {
		if got := sheet.TrackLength(pos); got != 0 {
			t.Errorf("TrackLength(%d) = %d, want 0", pos, got)
		}
	}
	if got := (&Track{}).Length(sheet); got != 0 {
		t.Errorf("Length() of detached track = %d, want 0", got)
	}
}

func TestTrackLengthMissingIndex(t *testing.T) {
	sheet := NewSheet()
	sheet.Grow(2)
	sheet.Tracks[1].Add("TRACK", "01", "AUDIO")
	sheet.Tracks[1].Add("INDEX", "01", "00:00:00")
	sheet.Tracks[2].Add("TRACK", "02", "AUDIO")

	if got := sheet.TrackLength(1); got != 0 {
		t.Errorf("TrackLength(1) = %d, want 0", got)
	}
}

func TestTrackLengthEqualSpans(t *testing.T) {
	sheet := NewSheet()
	indexes := []string{"00:00:00", "00:00:01", "00:00:02", "00:00:03", "12:34:56", "12:34:57"}
	for i, index := range indexes {
		track := &Track{Number: i + 1}
		track.Add("TRACK", fmt.Sprintf("%02d", i+1), "AUDIO")
		track.Add("INDEX", "01", index)
		sheet.Tracks = append(sheet.Tracks, track)
	}

	// Every one-frame span has the same length.
	for _, pos := range []int{1, 2, 3, 5} {
		if got := sheet.TrackLength(pos); got != 14 {
			t.Errorf("TrackLength(%d) = %d, want 14", pos, got)
		}
	}
}

func TestSheetTrackLookup(t *testing.T) {
	sheet, _ := Decode([]byte(sampleSheet))

	if got := sheet.Track(2); got == nil || got.Title() != "Second" {
		t.Errorf("Track(2) = %+v, want track titled Second", got)
	}
	if got := sheet.Track(9); got != nil {
		t.Errorf("Track(9) = %+v, want nil", got)
	}
}

func TestGrow(t *testing.T) {
	sheet := &Sheet{}
	sheet.Grow(3)
	if len(sheet.Tracks) != 4 {
		t.Fatalf("len(Tracks) = %d, want 4", len(sheet.Tracks))
	}
	for i, track := range sheet.Tracks {
		if track.Number != i {
			t.Errorf("Tracks[%d].Number = %d, want %d", i, track.Number, i)
		}
	}

	sheet.Grow(1)
	if len(sheet.Tracks) != 4 {
		t.Errorf("Grow should never shrink, len(Tracks) = %d", len(sheet.Tracks))
	}
}
