// Package cue reads and writes CUE sheets.
//
// A CUE sheet is a line-oriented text file describing the track layout of
// an audio disc image: performer, title, the audio files that make up the
// disc and frame-accurate INDEX points for every track.
//
// # Document Model
//
// A Sheet is an ordered list of Tracks. Track 0 is the implicit global
// track holding the commands that precede the first TRACK line (album
// PERFORMER/TITLE/REM and the first FILE). Every other track starts with
// its TRACK command. Each Track is an ordered list of Commands, and each
// Command is the list of whitespace-separated fields of one line:
//
//	sheet := cue.NewSheet()
//	sheet.Global().SetArtist("Artist")
//	sheet.Global().Add("FILE", "album.wav", "WAVE")
//	sheet.Grow(1)
//	track := sheet.Tracks[1]
//	track.Add("TRACK", "01", "AUDIO")
//	track.Add("INDEX", "01", "00:00:00")
//	err := sheet.WriteFile("album.cue")
//
// # Reading
//
//	sheet, err := cue.ReadFile("album.cue")
//	for i, track := range sheet.Tracks[1:] {
//	    fmt.Println(track.Title(), sheet.TrackLength(i+1))
//	}
//
// # Character Set
//
// Files are decoded as ISO-8859-1 unless they start with the bytes
// 0xFE 0xFF, in which case the whole file is decoded as UTF-8. Those
// bytes are the UTF-16 big-endian byte order mark, not a UTF-8 one; the
// rule is kept as-is for compatibility with cuesheets written by earlier
// versions of this tool. Invalid byte sequences decode to U+FFFD.
// Output is always UTF-8 without a byte order mark.
//
// # Timestamps
//
// INDEX points use minutes:seconds:frames with 75 frames per second.
// Converting milliseconds to a Timestamp truncates partial frames, so
// sub-frame precision is lost; converting a Timestamp to milliseconds and
// back always yields the same Timestamp.
package cue
