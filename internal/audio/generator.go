package audio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/handiism/cuesheet/internal/cue"
	"github.com/handiism/cuesheet/internal/model"
)

// FILE command types.
const (
	FileTypeMP3  = "MP3"
	FileTypeAIFF = "AIFF"
	FileTypeWave = "WAVE"
)

// Generator builds cuesheets from album descriptions.
//
// Generator takes an album and lays it out as a single-session cuesheet:
// the global track holds the album PERFORMER, TITLE and REM commands, and
// each album track becomes a TRACK block whose INDEX 01 is the summed
// length of the tracks before it.
//
// Example:
//
//	gen := NewGenerator(true) // include MusicBrainz ids
//	sheet := gen.CreateCuesheet(album, album.CuesheetPath)
//	err := sheet.WriteFile(album.CuesheetPath)
//
//	// Result:
//	// PERFORMER "The Artist"
//	// TITLE "Some Album"
//	// FILE "01 First Song.flac" WAVE
//	//   TRACK 01 AUDIO
//	//     PERFORMER "The Artist"
//	//     TITLE "First Song"
//	//     INDEX 01 00:00:00
type Generator struct {
	musicBrainz bool // include REM MUSICBRAINZ_* commands
}

// NewGenerator creates a new Generator.
//
// Parameters:
//   - musicBrainz: whether to write the REM MUSICBRAINZ_* commands
func NewGenerator(musicBrainz bool) *Generator {
	return &Generator{musicBrainz: musicBrainz}
}

// CreateCuesheet generates a cuesheet for an album.
//
// cuePath is where the cuesheet will be written; audio files in the same
// folder are referenced by base name, all others by absolute path.
//
// Every linked file of track N is written as a FILE command at the end of
// track N-1 (the global track for the first track), so that it precedes
// the TRACK line it belongs to. Commands whose value is empty are left out.
func (g *Generator) CreateCuesheet(album *model.Album, cuePath string) *cue.Sheet {
	sheet := cue.NewSheet()
	sheet.Grow(len(album.Tracks))

	global := sheet.Global()
	addCommand(global, "PERFORMER", album.Artist)
	addCommand(global, "TITLE", album.Title)
	if g.musicBrainz {
		addCommand(global, "REM", "MUSICBRAINZ_ALBUM_ID", album.ID)
		addCommand(global, "REM", "MUSICBRAINZ_ALBUM_ARTIST_ID", album.ArtistID)
	}
	if album.HasDate() {
		addCommand(global, "REM", "DATE", album.Date)
	}

	var offset int64
	for i, track := range album.Tracks {
		t := sheet.Tracks[i+1]
		t.Add("TRACK", fmt.Sprintf("%02d", i+1), "AUDIO")
		addCommand(t, "PERFORMER", track.Artist)
		addCommand(t, "TITLE", track.Title)
		if g.musicBrainz {
			addCommand(t, "REM", "MUSICBRAINZ_TRACK_ID", track.ID)
			addCommand(t, "REM", "MUSICBRAINZ_ARTIST_ID", track.ArtistID)
		}
		t.Add("INDEX", "01", cue.TimestampFromMilliseconds(offset).String())
		offset += track.Milliseconds()

		for _, file := range track.Files {
			sheet.Tracks[i].Add("FILE", RelativeFilePath(cuePath, file), FileType(file))
		}
	}

	return sheet
}

// FileType returns the FILE command type for an audio file, based on its
// extension (case-insensitive):
//   - mp3, mp2, m2a: MP3
//   - aiff, aif, aifc: AIFF
//   - anything else: WAVE
func FileType(path string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "mp3", "mp2", "m2a":
		return FileTypeMP3
	case "aiff", "aif", "aifc":
		return FileTypeAIFF
	default:
		return FileTypeWave
	}
}

// RelativeFilePath returns how an audio file is referenced from the
// cuesheet at cuePath: its base name when both are in the same folder,
// its absolute path otherwise.
func RelativeFilePath(cuePath, audioPath string) string {
	absAudio, err := filepath.Abs(audioPath)
	if err != nil {
		absAudio = audioPath
	}
	absCue, err := filepath.Abs(cuePath)
	if err != nil {
		absCue = cuePath
	}

	if filepath.Dir(absCue) == filepath.Dir(absAudio) {
		return filepath.Base(absAudio)
	}
	return absAudio
}

// addCommand appends fields to track unless the last field (the value) is
// empty. An empty value would be written as a trailing space and lost on
// the next read.
func addCommand(track *cue.Track, fields ...string) {
	if fields[len(fields)-1] == "" {
		return
	}
	track.Add(fields...)
}
