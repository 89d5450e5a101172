package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/handiism/cuesheet/internal/audio"
	"github.com/handiism/cuesheet/internal/config"
	"github.com/handiism/cuesheet/internal/cue"
	ioutils "github.com/handiism/cuesheet/internal/io"
	"github.com/handiism/cuesheet/internal/model"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a generation progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Manager coordinates cuesheet generation for album folders.
type Manager struct {
	settings     *config.Settings
	pathCfg      *model.PathConfig
	reader       *audio.TagReader
	generator    *audio.Generator
	imageService *ioutils.ImageService

	albums        []*model.Album
	writtenAlbums int32
	failedAlbums  int32

	onProgress func(ProgressEvent)
	mu         sync.RWMutex
}

// NewManager creates a new generation Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:     settings,
		pathCfg:      settings.ToPathConfig(),
		reader:       audio.NewTagReader(),
		generator:    audio.NewGenerator(settings.MusicBrainzIDs),
		imageService: ioutils.NewImageService(),
		onProgress:   onProgress,
	}
}

// Initialize scans the given folders for albums and reads their tags.
//
// Every folder below a root that directly contains audio files is one
// album. Folders that fail to scan or read are reported and skipped; only
// cancellation is returned as an error.
func (m *Manager) Initialize(ctx context.Context, roots ...string) error {
	for _, root := range roots {
		dirs, err := ioutils.FindAlbumDirs(ctx, root)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error scanning %s: %v", root, err), Level: LevelError})
			continue
		}
		if len(dirs) == 0 {
			m.progress(ProgressEvent{Message: fmt.Sprintf("No audio files found in %s", root), Level: LevelWarning})
			continue
		}

		for _, dir := range dirs {
			if err := ctx.Err(); err != nil {
				return err
			}

			m.progress(ProgressEvent{Message: fmt.Sprintf("Reading tags: %s", dir), Level: LevelVerbose})

			album, err := m.readAlbum(dir)
			if err != nil {
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error reading %s: %v", dir, err), Level: LevelError})
				continue
			}

			m.mu.Lock()
			m.albums = append(m.albums, album)
			m.mu.Unlock()

			m.progress(ProgressEvent{Message: fmt.Sprintf("Found album: %s - %s (%d tracks)", album.Artist, album.Title, len(album.Tracks)), Level: LevelInfo})
		}
	}

	return nil
}

// StartGeneration writes a cuesheet for every initialized album.
//
// Albums are processed concurrently, at most Settings.MaxConcurrentAlbums
// at a time. A failing album is reported and does not stop the others.
func (m *Manager) StartGeneration(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, m.settings.MaxConcurrentAlbums))

	for _, album := range m.Albums() {
		album := album
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := m.generateAlbum(ctx, album); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				atomic.AddInt32(&m.failedAlbums, 1)
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error generating cuesheet for %s: %v", album.Path, err), Level: LevelError})
			}
			return nil
		})
	}

	return g.Wait()
}

// Preview writes the cuesheet of every initialized album to w instead of
// to disk, each preceded by a "# path" line.
func (m *Manager) Preview(ctx context.Context, w io.Writer) error {
	for _, album := range m.Albums() {
		if err := ctx.Err(); err != nil {
			return err
		}

		sheet, err := m.BuildSheet(album)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error building cuesheet for %s: %v", album.Path, err), Level: LevelError})
			continue
		}

		if _, err := fmt.Fprintf(w, "# %s\n%s\n", album.CuesheetPath, sheet.Encode()); err != nil {
			return err
		}
	}
	return nil
}

// BuildSheet generates the cuesheet of an album and, when MergeExisting is
// set, merges the cuesheet already present at album.CuesheetPath into it.
func (m *Manager) BuildSheet(album *model.Album) (*cue.Sheet, error) {
	sheet := m.generator.CreateCuesheet(album, album.CuesheetPath)

	if !m.settings.MergeExisting {
		return sheet, nil
	}

	existing, err := cue.ReadFile(album.CuesheetPath)
	if errors.Is(err, fs.ErrNotExist) {
		return sheet, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading existing cuesheet: %w", err)
	}

	if n := mergeSheets(sheet, existing); n > 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Kept %d commands from existing %s", n, filepath.Base(album.CuesheetPath)), Level: LevelVerbose})
	}
	return sheet, nil
}

// GetProgress returns current generation progress.
func (m *Manager) GetProgress() (written, failed, total int32) {
	m.mu.RLock()
	total = int32(len(m.albums))
	m.mu.RUnlock()
	return atomic.LoadInt32(&m.writtenAlbums), atomic.LoadInt32(&m.failedAlbums), total
}

// GetAlbumNames returns the names of all initialized albums.
func (m *Manager) GetAlbumNames() []string {
	albums := m.Albums()
	names := make([]string, len(albums))
	for i, album := range albums {
		names[i] = fmt.Sprintf("%s - %s (%d tracks)", album.Artist, album.Title, len(album.Tracks))
	}
	return names
}

// Albums returns the initialized albums.
func (m *Manager) Albums() []*model.Album {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*model.Album(nil), m.albums...)
}

func (m *Manager) readAlbum(dir string) (*model.Album, error) {
	files, err := ioutils.ListAudioFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no audio files")
	}
	return m.reader.ReadAlbum(dir, files, m.pathCfg)
}

func (m *Manager) generateAlbum(ctx context.Context, album *model.Album) error {
	for _, track := range album.Tracks {
		if track.Length == 0 {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Unknown length of %q, following track offsets will be wrong", track.Title), Level: LevelWarning})
		}
	}

	sheet, err := m.BuildSheet(album)
	if err != nil {
		return err
	}

	if err := ioutils.EnsureDir(filepath.Dir(album.CuesheetPath)); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := ioutils.WriteFile(ctx, album.CuesheetPath, sheet.Encode()); err != nil {
		return fmt.Errorf("writing cuesheet: %w", err)
	}
	atomic.AddInt32(&m.writtenAlbums, 1)

	if m.settings.SaveCoverArt && album.HasArtwork() {
		m.saveCoverArt(ctx, album)
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Wrote %s", album.CuesheetPath), Level: LevelSuccess})
	return nil
}

// saveCoverArt writes the embedded picture next to the cuesheet unless a
// file with that name already exists.
func (m *Manager) saveCoverArt(ctx context.Context, album *model.Album) {
	if _, err := os.Stat(album.ArtworkPath); err == nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping existing: %s", album.ArtworkPath), Level: LevelVerbose})
		return
	}

	artwork, err := m.imageService.PrepareCoverArt(ctx, album.Artwork, ioutils.CoverArtOptions{
		Resize:        m.settings.CoverArtResize,
		MaxSize:       m.settings.CoverArtMaxSize,
		ConvertToJPEG: m.settings.ConvertCoverArtToJPG,
	})
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error preparing artwork for %s: %v", album.Title, err), Level: LevelWarning})
		return
	}

	if err := ioutils.WriteFile(ctx, album.ArtworkPath, artwork); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error saving artwork: %v", err), Level: LevelWarning})
		return
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Saved artwork for %s", album.Title), Level: LevelVerbose})
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
