package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/handiism/cuesheet/internal/model"
	"github.com/joho/godotenv"
)

// Settings holds all configuration options.
type Settings struct {
	// Generation settings
	CuesheetFileNameFormat string `json:"cuesheet_file_name_format" toml:"cuesheet_file_name_format"`
	MaxConcurrentAlbums    int    `json:"max_concurrent_albums" toml:"max_concurrent_albums"`
	MergeExisting          bool   `json:"merge_existing" toml:"merge_existing"`
	MusicBrainzIDs         bool   `json:"musicbrainz_ids" toml:"musicbrainz_ids"`

	// Cover art settings
	SaveCoverArt         bool   `json:"save_cover_art" toml:"save_cover_art"`
	CoverArtResize       bool   `json:"cover_art_resize" toml:"cover_art_resize"`
	CoverArtMaxSize      int    `json:"cover_art_max_size" toml:"cover_art_max_size"`
	ConvertCoverArtToJPG bool   `json:"convert_cover_art_to_jpg" toml:"convert_cover_art_to_jpg"`
	CoverArtFileName     string `json:"cover_art_file_name" toml:"cover_art_file_name"`

	// Watch settings
	WatchDebounce string `json:"watch_debounce" toml:"watch_debounce"` // Go duration, e.g. "2s"

	Verbose bool `json:"verbose" toml:"verbose"`
}

// Environment variables read by LoadEnv.
const (
	EnvFileNameFormat      = "CUESHEET_FILE_NAME_FORMAT"
	EnvMaxConcurrentAlbums = "CUESHEET_MAX_CONCURRENT_ALBUMS"
	EnvMergeExisting       = "CUESHEET_MERGE_EXISTING"
	EnvMusicBrainzIDs      = "CUESHEET_MUSICBRAINZ_IDS"
	EnvSaveCoverArt        = "CUESHEET_SAVE_COVER_ART"
	EnvCoverArtMaxSize     = "CUESHEET_COVER_ART_MAX_SIZE"
	EnvCoverArtFileName    = "CUESHEET_COVER_ART_FILE_NAME"
	EnvWatchDebounce       = "CUESHEET_WATCH_DEBOUNCE"
	EnvVerbose             = "CUESHEET_VERBOSE"
)

const defaultWatchDebounce = 2 * time.Second

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		CuesheetFileNameFormat: "{album}",
		MaxConcurrentAlbums:    4,
		MergeExisting:          true,
		MusicBrainzIDs:         true,

		SaveCoverArt:         false,
		CoverArtResize:       true,
		CoverArtMaxSize:      1000,
		ConvertCoverArtToJPG: true,
		CoverArtFileName:     "folder.jpg",

		WatchDebounce: defaultWatchDebounce.String(),
	}
}

// DefaultPath returns the config file used when none is given:
// ./cuesheet.toml if it exists, otherwise ~/.config/cuesheet/config.toml.
func DefaultPath() string {
	if _, err := os.Stat("cuesheet.toml"); err == nil {
		return "cuesheet.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "cuesheet.toml"
	}
	return filepath.Join(home, ".config", "cuesheet", "config.toml")
}

// Load reads settings from a JSON or TOML file, chosen by extension.
// A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	settings := DefaultSettings()
	if isTOML(path) {
		err = toml.Unmarshal(data, settings)
	} else {
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", filepath.Base(path), err)
	}

	return settings, nil
}

// Save writes settings to a JSON or TOML file, chosen by extension.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	var data []byte
	if isTOML(path) {
		var sb strings.Builder
		if err := toml.NewEncoder(&sb).Encode(s); err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		data = []byte(sb.String())
	} else {
		var err error
		data, err = json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
	}

	return os.WriteFile(path, data, 0644)
}

// LoadEnv loads the given .env files (./.env when none are given) into the
// process environment and applies the CUESHEET_* variables on top of s.
// Missing .env files are ignored.
func (s *Settings) LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	if v := os.Getenv(EnvFileNameFormat); v != "" {
		s.CuesheetFileNameFormat = v
	}
	if v := os.Getenv(EnvCoverArtFileName); v != "" {
		s.CoverArtFileName = v
	}
	if v := os.Getenv(EnvWatchDebounce); v != "" {
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("%s: %w", EnvWatchDebounce, err)
		}
		s.WatchDebounce = v
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{EnvMaxConcurrentAlbums, &s.MaxConcurrentAlbums},
		{EnvCoverArtMaxSize, &s.CoverArtMaxSize},
	}
	for _, e := range ints {
		if v := os.Getenv(e.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", e.name, err)
			}
			*e.dst = n
		}
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{EnvMergeExisting, &s.MergeExisting},
		{EnvMusicBrainzIDs, &s.MusicBrainzIDs},
		{EnvSaveCoverArt, &s.SaveCoverArt},
		{EnvVerbose, &s.Verbose},
	}
	for _, e := range bools {
		if v := os.Getenv(e.name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", e.name, err)
			}
			*e.dst = b
		}
	}

	return nil
}

// WatchDebounceDuration returns WatchDebounce parsed, or 2s when it is
// empty or invalid.
func (s *Settings) WatchDebounceDuration() time.Duration {
	d, err := time.ParseDuration(s.WatchDebounce)
	if err != nil || d <= 0 {
		return defaultWatchDebounce
	}
	return d
}

// ToPathConfig converts settings to PathConfig.
func (s *Settings) ToPathConfig() *model.PathConfig {
	return &model.PathConfig{
		CuesheetFileNameFormat: s.CuesheetFileNameFormat,
		CoverArtFileName:       s.CoverArtFileName,
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
