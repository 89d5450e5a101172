package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bogem/id3v2"
	"github.com/dhowden/tag"
	"github.com/handiism/cuesheet/internal/model"
)

// Tags holds the metadata read from one audio file.
type Tags struct {
	Path string

	Artist      string
	AlbumArtist string
	Album       string
	Title       string
	Date        string
	TrackNumber int
	DiscNumber  int

	// MusicBrainz identifiers, empty when not tagged.
	TrackID       string
	ArtistID      string
	AlbumID       string
	AlbumArtistID string

	// Length is zero when it could not be determined.
	Length time.Duration

	// Picture is the embedded cover art, if any.
	Picture []byte
}

// TagReader reads audio file tags.
//
// TagReader uses the tag library for the common fields of every supported
// format (MP3, FLAC, OGG, M4A) and the id3v2 library for the MP3 frames
// the former does not expose:
//   - TLEN (track length in milliseconds)
//   - TXXX MusicBrainz ids
//   - UFID MusicBrainz recording id
//
// Lengths of WAV and FLAC files are read from the file header.
//
// Example:
//
//	reader := NewTagReader()
//	album, err := reader.ReadAlbum("/music/Album", files, pathConfig)
type TagReader struct{}

// NewTagReader creates a new TagReader.
func NewTagReader() *TagReader {
	return &TagReader{}
}

// ReadTags reads the tags of a single audio file.
//
// A file without tags is not an error; its title falls back to the file
// name when building the album.
func (r *TagReader) ReadTags(path string) (*Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tags := &Tags{Path: path}

	m, err := tag.ReadFrom(f)
	switch {
	case err == nil:
		readCommonTags(tags, m)
	case errors.Is(err, tag.ErrNoTagsFound):
	default:
		return nil, fmt.Errorf("reading tags of %s: %w", filepath.Base(path), err)
	}

	if FileType(path) == FileTypeMP3 {
		if err := readID3Tags(tags, path); err != nil {
			return nil, fmt.Errorf("reading ID3 tags of %s: %w", filepath.Base(path), err)
		}
	}

	if tags.Length == 0 {
		if length, err := ProbeLength(path); err == nil {
			tags.Length = length
		}
	}

	return tags, nil
}

// ReadAlbum reads the given files of an album folder and assembles the
// album description.
//
// Tracks are ordered by disc number, track number and path. Album-level
// fields come from the first file that has them; the album artist falls
// back to the track artist.
func (r *TagReader) ReadAlbum(dir string, files []string, cfg *model.PathConfig) (*model.Album, error) {
	all := make([]*Tags, 0, len(files))
	for _, file := range files {
		tags, err := r.ReadTags(file)
		if err != nil {
			return nil, err
		}
		all = append(all, tags)
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].DiscNumber != all[j].DiscNumber {
			return all[i].DiscNumber < all[j].DiscNumber
		}
		if all[i].TrackNumber != all[j].TrackNumber {
			return all[i].TrackNumber < all[j].TrackNumber
		}
		return all[i].Path < all[j].Path
	})

	var artist, title, date, albumID, artistID string
	var picture []byte
	for _, t := range all {
		artist = firstNonEmpty(artist, t.AlbumArtist, t.Artist)
		title = firstNonEmpty(title, t.Album)
		date = firstNonEmpty(date, t.Date)
		albumID = firstNonEmpty(albumID, t.AlbumID)
		artistID = firstNonEmpty(artistID, t.AlbumArtistID)
		if picture == nil && len(t.Picture) > 0 {
			picture = t.Picture
		}
	}

	album := model.NewAlbum(artist, title, date, dir, cfg)
	album.ID = albumID
	album.ArtistID = artistID
	album.Artwork = picture

	for i, t := range all {
		track := model.NewTrack(album, i+1, t.Artist, t.Title, t.Length, t.Path)
		track.ID = t.TrackID
		track.ArtistID = t.ArtistID
		album.Tracks = append(album.Tracks, track)
	}

	return album, nil
}

// readCommonTags copies the format-independent fields.
func readCommonTags(tags *Tags, m tag.Metadata) {
	tags.Artist = m.Artist()
	tags.AlbumArtist = m.AlbumArtist()
	tags.Album = m.Album()
	tags.Title = m.Title()
	tags.TrackNumber, _ = m.Track()
	tags.DiscNumber, _ = m.Disc()

	if pic := m.Picture(); pic != nil {
		tags.Picture = pic.Data
	}

	raw := m.Raw()
	tags.Date = rawString(raw, "date", "©day")
	if tags.Date == "" && m.Year() > 0 {
		tags.Date = strconv.Itoa(m.Year())
	}

	// Vorbis comment names, then MP4 freeform atom names.
	tags.TrackID = rawString(raw, "musicbrainz_trackid", "MusicBrainz Track Id")
	tags.ArtistID = rawString(raw, "musicbrainz_artistid", "MusicBrainz Artist Id")
	tags.AlbumID = rawString(raw, "musicbrainz_albumid", "MusicBrainz Album Id")
	tags.AlbumArtistID = rawString(raw, "musicbrainz_albumartistid", "MusicBrainz Album Artist Id")
}

// readID3Tags reads the MP3 frames the generic reader does not expose.
func readID3Tags(tags *Tags, path string) error {
	id3, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer id3.Close()

	if ms, err := strconv.ParseInt(strings.TrimSpace(id3.GetTextFrame("TLEN").Text), 10, 64); err == nil && ms > 0 {
		tags.Length = time.Duration(ms) * time.Millisecond
	}

	if tags.Date == "" {
		tags.Date = firstNonEmpty(id3.GetTextFrame("TDRC").Text, id3.GetTextFrame("TYER").Text)
	}

	for _, f := range id3.GetFrames("TXXX") {
		udtf, ok := f.(id3v2.UserDefinedTextFrame)
		if !ok {
			continue
		}
		switch strings.ToLower(udtf.Description) {
		case "musicbrainz artist id":
			tags.ArtistID = firstNonEmpty(tags.ArtistID, udtf.Value)
		case "musicbrainz album id":
			tags.AlbumID = firstNonEmpty(tags.AlbumID, udtf.Value)
		case "musicbrainz album artist id":
			tags.AlbumArtistID = firstNonEmpty(tags.AlbumArtistID, udtf.Value)
		}
	}

	for _, f := range id3.GetFrames("UFID") {
		ufid, ok := f.(id3v2.UFIDFrame)
		if ok && ufid.OwnerIdentifier == "http://musicbrainz.org" {
			tags.TrackID = firstNonEmpty(tags.TrackID, string(ufid.Identifier))
		}
	}

	return nil
}

// rawString looks up a raw tag value by name, ignoring case and any
// "----:mean:" prefix of MP4 freeform atoms.
func rawString(raw map[string]interface{}, names ...string) string {
	for _, name := range names {
		for key, val := range raw {
			k := key
			if i := strings.LastIndex(k, ":"); i >= 0 {
				k = k[i+1:]
			}
			if !strings.EqualFold(k, name) {
				continue
			}
			switch v := val.(type) {
			case string:
				if v != "" {
					return v
				}
			case []byte:
				if len(v) > 0 {
					return string(v)
				}
			}
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
