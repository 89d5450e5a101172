package audio

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/handiism/cuesheet/internal/cue"
	"github.com/handiism/cuesheet/internal/model"
)

func createTestAlbum(dir string) *model.Album {
	album := model.NewAlbum("Test Artist", "Test Album", "2021", dir, nil)
	album.ID = "album-id"

	track1 := model.NewTrack(album, 1, "", "First", 180*time.Second, filepath.Join(dir, "01.flac"))
	track1.ID = "track-1"
	track2 := model.NewTrack(album, 2, "Guest", "Second", 200*time.Second, filepath.Join(dir, "02.mp3"))

	album.Tracks = []*model.Track{track1, track2}
	return album
}

func TestGenerator_CreateCuesheet(t *testing.T) {
	dir := t.TempDir()
	album := createTestAlbum(dir)

	sheet := NewGenerator(true).CreateCuesheet(album, filepath.Join(dir, "Test Album.cue"))

	want := strings.Join([]string{
		`PERFORMER "Test Artist"`,
		`TITLE "Test Album"`,
		`REM MUSICBRAINZ_ALBUM_ID album-id`,
		`REM DATE 2021`,
		`FILE 01.flac WAVE`,
		`  TRACK 01 AUDIO`,
		`    PERFORMER "Test Artist"`,
		`    TITLE First`,
		`    REM MUSICBRAINZ_TRACK_ID track-1`,
		`    INDEX 01 00:00:00`,
		`FILE 02.mp3 MP3`,
		`  TRACK 02 AUDIO`,
		`    PERFORMER Guest`,
		`    TITLE Second`,
		`    INDEX 01 03:00:00`,
	}, "\n") + "\n"

	if got := string(sheet.Encode()); got != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", got, want)
	}
}

func TestGenerator_WithoutMusicBrainz(t *testing.T) {
	dir := t.TempDir()
	album := createTestAlbum(dir)

	sheet := NewGenerator(false).CreateCuesheet(album, filepath.Join(dir, "a.cue"))

	for _, track := range sheet.Tracks {
		for _, cmd := range track.Find("REM") {
			if strings.HasPrefix(cmd[1], "MUSICBRAINZ_") {
				t.Errorf("unexpected command %v", cmd)
			}
		}
	}
}

func TestGenerator_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	album := createTestAlbum(dir)
	cuePath := filepath.Join(dir, "Test Album.cue")

	if err := NewGenerator(true).CreateCuesheet(album, cuePath).WriteFile(cuePath); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	sheet, err := cue.ReadFile(cuePath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if len(sheet.Tracks) != 3 {
		t.Fatalf("len(Tracks) = %d, want 3", len(sheet.Tracks))
	}
	if got := sheet.Global().Artist(); got != "Test Artist" {
		t.Errorf("Global().Artist() = %q, want %q", got, "Test Artist")
	}
	if got := sheet.Global().Title(); got != "Test Album" {
		t.Errorf("Global().Title() = %q, want %q", got, "Test Album")
	}
	if got := sheet.Track(2).Artist(); got != "Guest" {
		t.Errorf("Track(2).Artist() = %q, want %q", got, "Guest")
	}
	if got := sheet.Track(1).Length(sheet); got != 180000 {
		t.Errorf("Track(1).Length() = %d, want 180000", got)
	}
	if got := sheet.Track(2).Length(sheet); got != 0 {
		t.Errorf("Track(2).Length() = %d, want 0 for the last track", got)
	}
	if got := sheet.Global().Field("FILE"); got != "01.flac" {
		t.Errorf("Global().Field(FILE) = %q, want %q", got, "01.flac")
	}
	if got := sheet.Track(1).Field("FILE"); got != "02.mp3" {
		t.Errorf("Track(1).Field(FILE) = %q, want %q", got, "02.mp3")
	}
}

func TestGenerator_SkipsEmptyValues(t *testing.T) {
	dir := t.TempDir()
	album := model.NewAlbum("", "", "", dir, nil)
	album.Tracks = []*model.Track{{Album: album, Number: 1, Length: time.Second}}

	sheet := NewGenerator(true).CreateCuesheet(album, filepath.Join(dir, "a.cue"))

	if n := len(sheet.Global().Commands); n != 0 {
		t.Errorf("len(Global().Commands) = %d, want 0", n)
	}
	want := []cue.Command{
		{"TRACK", "01", "AUDIO"},
		{"INDEX", "01", "00:00:00"},
	}
	got := sheet.Tracks[1].Commands
	if len(got) != len(want) {
		t.Fatalf("Commands = %v, want %v", got, want)
	}
	for i := range want {
		if strings.Join(got[i], " ") != strings.Join(want[i], " ") {
			t.Errorf("Commands[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFileType(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.mp3", FileTypeMP3},
		{"a.MP3", FileTypeMP3},
		{"a.mp2", FileTypeMP3},
		{"a.m2a", FileTypeMP3},
		{"a.aiff", FileTypeAIFF},
		{"a.aif", FileTypeAIFF},
		{"a.AIFC", FileTypeAIFF},
		{"a.flac", FileTypeWave},
		{"a.wav", FileTypeWave},
		{"a", FileTypeWave},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := FileType(tt.path); got != tt.want {
				t.Errorf("FileType(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestRelativeFilePath(t *testing.T) {
	dir := t.TempDir()
	cuePath := filepath.Join(dir, "album.cue")

	same := filepath.Join(dir, "01.flac")
	if got := RelativeFilePath(cuePath, same); got != "01.flac" {
		t.Errorf("RelativeFilePath(%q) = %q, want %q", same, got, "01.flac")
	}

	other := filepath.Join(dir, "cd1", "01.flac")
	if got := RelativeFilePath(cuePath, other); got != other {
		t.Errorf("RelativeFilePath(%q) = %q, want %q", other, got, other)
	}
}
