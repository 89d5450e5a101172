// Package config provides configuration management for cuesheet.
//
// This package handles:
//   - Loading and saving settings from JSON or TOML files
//   - .env files and CUESHEET_* environment overrides
//   - Default configuration values
//   - Conversion to PathConfig for other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Cuesheets named after the album
//	// Four albums processed at a time
//	// Existing cuesheets merged
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.toml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//	err = settings.LoadEnv()
//
// # Saving Settings
//
//	settings.CuesheetFileNameFormat = "{artist} - {album}"
//	err := settings.Save("/path/to/config.json")
package config
