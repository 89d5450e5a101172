package generate

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	ioutils "github.com/handiism/cuesheet/internal/io"
)

// Watch regenerates the cuesheet of an album folder whenever audio files
// in it are created, written, removed or renamed.
//
// Every directory below the roots is watched, including directories
// created while watching. Changes are debounced per folder by
// Settings.WatchDebounce so a file copy in progress triggers one
// regeneration. Watch blocks until ctx is cancelled.
func (m *Manager) Watch(ctx context.Context, roots ...string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, root := range roots {
		if err := addRecursive(watcher, root); err != nil {
			return fmt.Errorf("watching %s: %w", root, err)
		}
	}

	debounce := m.settings.WatchDebounceDuration()
	pending := make(chan string)

	var mu sync.Mutex
	timers := make(map[string]*time.Timer)
	defer func() {
		mu.Lock()
		for _, t := range timers {
			t.Stop()
		}
		mu.Unlock()
	}()

	schedule := func(dir string) {
		mu.Lock()
		defer mu.Unlock()
		if t, ok := timers[dir]; ok {
			t.Reset(debounce)
			return
		}
		timers[dir] = time.AfterFunc(debounce, func() {
			mu.Lock()
			delete(timers, dir)
			mu.Unlock()
			select {
			case pending <- dir:
			case <-ctx.Done():
			}
		})
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Watching %s for changes", strings.Join(roots, ", ")), Level: LevelInfo})

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				if err := addRecursive(watcher, event.Name); err == nil && isDir(event.Name) {
					m.progress(ProgressEvent{Message: fmt.Sprintf("Watching new folder %s", event.Name), Level: LevelVerbose})
					schedule(event.Name)
					continue
				}
			}
			if !ioutils.IsAudioFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			m.progress(ProgressEvent{Message: fmt.Sprintf("Change detected: %s", event.Name), Level: LevelVerbose})
			schedule(filepath.Dir(event.Name))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			m.progress(ProgressEvent{Message: fmt.Sprintf("Watcher error: %v", err), Level: LevelWarning})

		case dir := <-pending:
			m.regenerate(ctx, dir)
		}
	}
}

// regenerate rereads an album folder and rewrites its cuesheet.
func (m *Manager) regenerate(ctx context.Context, dir string) {
	album, err := m.readAlbum(dir)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %s: %v", dir, err), Level: LevelVerbose})
		return
	}

	if err := m.generateAlbum(ctx, album); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error generating cuesheet for %s: %v", dir, err), Level: LevelError})
	}
}

// addRecursive adds root and every non-hidden directory below it to the
// watcher. Adding a regular file is a no-op.
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
