// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Atomic file writing and directory creation
//   - Finding album folders and listing their audio files
//   - Cover art resizing and format conversion
//
// # File Operations
//
//	// Write data to file
//	err := ioutils.WriteFile(ctx, "/music/Album/Album.cue", data)
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// # Album Discovery
//
//	dirs, err := ioutils.FindAlbumDirs(ctx, "/music")
//	files, err := ioutils.ListAudioFiles(dirs[0])
//
// # Image Processing
//
// The ImageService handles cover art manipulation:
//
//	svc := ioutils.NewImageService()
//	jpeg, err := svc.PrepareCoverArt(ctx, picture, ioutils.CoverArtOptions{
//	    Resize: true, MaxSize: 500, ConvertToJPEG: true,
//	})
package ioutils
