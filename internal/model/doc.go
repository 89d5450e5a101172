// Package model defines the album description a cuesheet is generated from.
//
// # Album
//
// Album holds the album-level metadata and the computed cuesheet path:
//
//	album := model.NewAlbum("Artist", "Title", "2023", "/music/Artist/Title", pathConfig)
//	fmt.Println(album.CuesheetPath) // Where the cuesheet will be written
//
// # Track
//
// Track holds one track's metadata, its length and its linked audio files:
//
//	track := model.NewTrack(album, 1, "Artist", "Song Title", 180*time.Second, "/music/Artist/Title/01.flac")
//	album.Tracks = append(album.Tracks, track)
//
// # Path Configuration
//
// PathConfig controls how the cuesheet file name is computed using placeholders:
//
//	cfg := &model.PathConfig{
//	    CuesheetFileNameFormat: "{artist} - {album}",
//	}
//
// Available placeholders: {artist}, {album}, {year}
package model
