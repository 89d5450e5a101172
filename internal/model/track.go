package model

import (
	"path/filepath"
	"time"
)

// Track represents a single track within an album.
//
// Track contains the metadata written to one TRACK block of a cuesheet:
//   - Track number, artist and title
//   - MusicBrainz recording and artist ids
//   - Length, used to compute the INDEX 01 position of the next track
//   - The audio files linked to the track
//
// Example:
//
//	track := NewTrack(album, 1, "Artist", "Song Title", 3*time.Minute, "/music/Album/01 Song Title.flac")
type Track struct {
	// Album is a reference to the parent album.
	Album *Album

	// Number is the track number (1-indexed).
	Number int

	// Artist is the track artist.
	Artist string

	// Title is the track title.
	Title string

	// ID is the MusicBrainz recording id.
	ID string

	// ArtistID is the MusicBrainz id of the track artist.
	ArtistID string

	// Length is the track length. Zero means unknown.
	Length time.Duration

	// Files are the audio files linked to this track, usually exactly one.
	Files []string
}

// NewTrack creates a new Track linked to the given files.
//
// Parameters:
//   - album: The parent album
//   - number: Track number (1-indexed)
//   - artist: Track artist; the album artist is used when empty
//   - title: Track title; the first file's base name is used when empty
//   - length: Track length (zero if unknown)
//   - files: Linked audio file paths
func NewTrack(album *Album, number int, artist, title string, length time.Duration, files ...string) *Track {
	track := &Track{
		Album:  album,
		Number: number,
		Artist: artist,
		Title:  title,
		Length: length,
		Files:  files,
	}

	if track.Artist == "" && album != nil {
		track.Artist = album.Artist
	}
	if track.Title == "" && len(files) > 0 {
		base := filepath.Base(files[0])
		track.Title = base[:len(base)-len(filepath.Ext(base))]
	}

	return track
}

// Milliseconds returns the track length in milliseconds.
func (t *Track) Milliseconds() int64 {
	return t.Length.Milliseconds()
}
