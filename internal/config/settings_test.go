package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFile(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *settings != *DefaultSettings() {
		t.Errorf("Load() = %+v, want defaults", settings)
	}
}

func TestSaveLoad(t *testing.T) {
	for _, name := range []string{"config.json", "config.toml", "nested/config.TOML"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			want := DefaultSettings()
			want.CuesheetFileNameFormat = "{artist} - {album}"
			want.MaxConcurrentAlbums = 2
			want.MergeExisting = false
			want.SaveCoverArt = true
			want.WatchDebounce = "500ms"

			if err := want.Save(path); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if *got != *want {
				t.Errorf("Load() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("max_concurrent_albums = 8\n"), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if settings.MaxConcurrentAlbums != 8 {
		t.Errorf("MaxConcurrentAlbums = %d, want 8", settings.MaxConcurrentAlbums)
	}
	if settings.CuesheetFileNameFormat != "{album}" {
		t.Errorf("CuesheetFileNameFormat = %q, want %q", settings.CuesheetFileNameFormat, "{album}")
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() should fail for invalid JSON")
	}
}

func TestLoadEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := EnvFileNameFormat + "={year} {album}\n" + EnvCoverArtMaxSize + "=600\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	// godotenv does not override variables that are already set.
	t.Setenv(EnvFileNameFormat, "")
	os.Unsetenv(EnvFileNameFormat)
	t.Setenv(EnvCoverArtMaxSize, "")
	os.Unsetenv(EnvCoverArtMaxSize)
	t.Setenv(EnvMaxConcurrentAlbums, "3")
	t.Setenv(EnvMergeExisting, "false")
	t.Setenv(EnvWatchDebounce, "5s")

	settings := DefaultSettings()
	if err := settings.LoadEnv(envFile); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	if settings.CuesheetFileNameFormat != "{year} {album}" {
		t.Errorf("CuesheetFileNameFormat = %q, want %q", settings.CuesheetFileNameFormat, "{year} {album}")
	}
	if settings.CoverArtMaxSize != 600 {
		t.Errorf("CoverArtMaxSize = %d, want 600", settings.CoverArtMaxSize)
	}
	if settings.MaxConcurrentAlbums != 3 {
		t.Errorf("MaxConcurrentAlbums = %d, want 3", settings.MaxConcurrentAlbums)
	}
	if settings.MergeExisting {
		t.Error("MergeExisting should be false")
	}
	if got := settings.WatchDebounceDuration(); got != 5*time.Second {
		t.Errorf("WatchDebounceDuration() = %v, want 5s", got)
	}
}

func TestLoadEnv_MissingFileIgnored(t *testing.T) {
	settings := DefaultSettings()
	if err := settings.LoadEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("LoadEnv() error = %v", err)
	}
}

func TestLoadEnv_InvalidValue(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{EnvMaxConcurrentAlbums, "many"},
		{EnvVerbose, "sometimes"},
		{EnvWatchDebounce, "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.name, tt.value)
			if err := DefaultSettings().LoadEnv(filepath.Join(t.TempDir(), ".env")); err == nil {
				t.Errorf("LoadEnv() with %s=%q should fail", tt.name, tt.value)
			}
		})
	}
}

func TestWatchDebounceDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"2s", 2 * time.Second},
		{"750ms", 750 * time.Millisecond},
		{"", 2 * time.Second},
		{"invalid", 2 * time.Second},
		{"-1s", 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			s := &Settings{WatchDebounce: tt.value}
			if got := s.WatchDebounceDuration(); got != tt.want {
				t.Errorf("WatchDebounceDuration(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestToPathConfig(t *testing.T) {
	settings := DefaultSettings()
	cfg := settings.ToPathConfig()

	if cfg.CuesheetFileNameFormat != "{album}" {
		t.Errorf("CuesheetFileNameFormat = %q, want %q", cfg.CuesheetFileNameFormat, "{album}")
	}
	if cfg.CoverArtFileName != "folder.jpg" {
		t.Errorf("CoverArtFileName = %q, want %q", cfg.CoverArtFileName, "folder.jpg")
	}
}
