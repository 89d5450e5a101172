// Package audio reads audio files and generates cuesheets for them.
//
// # Tag Reading
//
// Use the TagReader to read the tags of an album folder:
//
//	reader := audio.NewTagReader()
//	album, err := reader.ReadAlbum(dir, files, pathConfig)
//
// The reader supports:
//   - Artist, Album Artist
//   - Album Title, Track Title
//   - Track Number, Disc Number, Date
//   - MusicBrainz release, artist and recording ids
//   - Track length (ID3 TLEN, WAV and FLAC headers)
//   - Cover Art (embedded picture)
//
// # Cuesheet Generation
//
// Generate a cuesheet for an album:
//
//	gen := audio.NewGenerator(true) // with MusicBrainz ids
//	sheet := gen.CreateCuesheet(album, album.CuesheetPath)
//	err := sheet.WriteFile(album.CuesheetPath)
//
// FILE command types are chosen from the file extension:
//   - MP3 (mp3, mp2, m2a)
//   - AIFF (aiff, aif, aifc)
//   - WAVE (everything else)
package audio
