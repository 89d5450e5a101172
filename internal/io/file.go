// Package ioutils provides file system utilities for cuesheet.
//
// This package contains functions for:
//   - Atomic file writing
//   - Directory creation
//   - Finding album folders and their audio files
//
// All functions that accept a context.Context check for cancellation
// before touching the file system.
package ioutils

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// audioExtensions lists the extensions (lowercase, with dot) treated as
// audio files.
var audioExtensions = map[string]bool{
	".flac": true,
	".wav":  true,
	".mp3":  true,
	".mp2":  true,
	".m2a":  true,
	".ogg":  true,
	".opus": true,
	".m4a":  true,
	".aiff": true,
	".aif":  true,
	".aifc": true,
	".ape":  true,
	".wv":   true,
}

// IsAudioFile reports whether path has an audio file extension.
func IsAudioFile(path string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}

// WriteFile writes data to a file, replacing it if it exists.
//
// The data is written to a temporary file in the same directory which is
// then renamed over path, so readers never see a half-written file. The
// file is created with mode 0644.
//
// Example:
//
//	err := WriteFile(ctx, "/music/Album/Album.cue", sheet.Encode())
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// ListAudioFiles returns the audio files directly inside dir, sorted by
// name. Subdirectories and hidden files are skipped.
func ListAudioFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !IsAudioFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)

	return files, nil
}

// FindAlbumDirs walks root and returns every directory, root included,
// that directly contains at least one audio file. Hidden directories are
// not descended into.
//
// Example:
//
//	dirs, err := FindAlbumDirs(ctx, "/music")
//	// ["/music/Artist/Album 1", "/music/Artist/Album 2"]
func FindAlbumDirs(ctx context.Context, root string) ([]string, error) {
	var dirs []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}

		files, err := ListAudioFiles(path)
		if err != nil {
			return err
		}
		if len(files) > 0 {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	return dirs, nil
}
