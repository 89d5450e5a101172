package model

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Album describes an album whose track layout is written to a cuesheet.
//
// Album contains all the information needed to generate a cuesheet:
//   - Artist and Title for the global PERFORMER and TITLE commands
//   - MusicBrainz identifiers and release date for the REM commands
//   - Tracks, in disc order, with their lengths and linked audio files
//   - The computed cuesheet path
//
// Example:
//
//	cfg := &PathConfig{CuesheetFileNameFormat: "{artist} - {album}"}
//	album := NewAlbum("The Beatles", "Abbey Road", "1969", "/music/Abbey Road", cfg)
//	// album.CuesheetPath = "/music/Abbey Road/The Beatles - Abbey Road.cue"
type Album struct {
	// Artist is the album artist name.
	Artist string

	// Title is the album title.
	Title string

	// ID is the MusicBrainz release id.
	ID string

	// ArtistID is the MusicBrainz id of the album artist.
	ArtistID string

	// Date is the release date as found in the tags ("1969" or "1969-09-26").
	// Empty string means the date is unknown.
	Date string

	// Tracks contains all tracks in this album, in disc order.
	Tracks []*Track

	// Path is the album folder.
	Path string

	// CuesheetPath is the computed path of the cuesheet file.
	// This is automatically set by NewAlbum based on PathConfig.CuesheetFileNameFormat.
	CuesheetPath string

	// Artwork is the cover picture embedded in the album's tags, if any.
	Artwork []byte

	// ArtworkPath is the computed local file path for the cover art.
	ArtworkPath string
}

// NewAlbum creates a new Album with its cuesheet path computed from cfg.
//
// The cuesheet file name format supports these placeholders:
//   - {artist} - Album artist name
//   - {album} - Album title
//   - {year} - First four characters of the release date
//
// Invalid filename characters are automatically replaced with underscores.
// An empty result falls back to the folder name.
func NewAlbum(artist, title, date, path string, cfg *PathConfig) *Album {
	album := &Album{
		Artist: artist,
		Title:  title,
		Date:   date,
		Path:   path,
	}

	album.CuesheetPath = album.parseCuesheetPath(cfg)
	album.ArtworkPath = album.parseArtworkPath(cfg)

	return album
}

// HasArtwork returns true if cover art was found in the tags.
func (a *Album) HasArtwork() bool {
	return len(a.Artwork) > 0
}

// HasDate returns true if the release date is known.
func (a *Album) HasDate() bool {
	return a.Date != ""
}

// Year returns the release year, or "" if the date is unknown.
func (a *Album) Year() string {
	if len(a.Date) < 4 {
		return a.Date
	}
	return a.Date[:4]
}

// Length returns the summed length of all tracks.
func (a *Album) Length() time.Duration {
	var total time.Duration
	for _, t := range a.Tracks {
		total += t.Length
	}
	return total
}

// PathConfig holds path formatting settings for generated cuesheets.
//
// Example configuration:
//
//	cfg := &PathConfig{
//	    CuesheetFileNameFormat: "{artist} - {album}",
//	}
type PathConfig struct {
	// CuesheetFileNameFormat is the filename template for cuesheets (without extension).
	// Example: "{album}" or "{year} {artist} - {album}"
	CuesheetFileNameFormat string

	// CoverArtFileName is the file name cover art is saved under.
	// Example: "folder.jpg"
	CoverArtFileName string
}

// CuesheetExtension is the file extension of cuesheets, including the dot.
const CuesheetExtension = ".cue"

// parseCuesheetPath computes the full cuesheet file path.
func (a *Album) parseCuesheetPath(cfg *PathConfig) string {
	fileName := a.parseCuesheetFileName(cfg)
	if fileName == "" {
		fileName = sanitizeFileName(filepath.Base(a.Path))
	}
	filePath := filepath.Join(a.Path, fileName+CuesheetExtension)

	// Limit total path length for Windows compatibility
	if len(filePath) >= 260 {
		maxLen := 259 - len(a.Path) - 1 - len(CuesheetExtension)
		if maxLen > 0 && maxLen < len(fileName) {
			filePath = filepath.Join(a.Path, fileName[:maxLen]+CuesheetExtension)
		}
	}

	return filePath
}

// parseArtworkPath computes the full cover art file path.
func (a *Album) parseArtworkPath(cfg *PathConfig) string {
	fileName := "folder.jpg"
	if cfg != nil && cfg.CoverArtFileName != "" {
		fileName = sanitizeFileName(cfg.CoverArtFileName)
	}
	return filepath.Join(a.Path, fileName)
}

// parseCuesheetFileName computes the cuesheet filename from the config template.
func (a *Album) parseCuesheetFileName(cfg *PathConfig) string {
	fileName := "{album}"
	if cfg != nil && cfg.CuesheetFileNameFormat != "" {
		fileName = cfg.CuesheetFileNameFormat
	}
	fileName = strings.ReplaceAll(fileName, "{year}", a.Year())
	fileName = strings.ReplaceAll(fileName, "{album}", a.Title)
	fileName = strings.ReplaceAll(fileName, "{artist}", a.Artist)
	return sanitizeFileName(fileName)
}

var (
	invalidCharsRegex = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDotsRegex = regexp.MustCompile(`\.+$`)
	whitespaceRegex   = regexp.MustCompile(`\s+`)
)

// sanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Leading and trailing whitespace is removed
//
// Example:
//
//	sanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
func sanitizeFileName(name string) string {
	name = invalidCharsRegex.ReplaceAllString(name, "_")
	name = trailingDotsRegex.ReplaceAllString(name, "")
	name = whitespaceRegex.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}
