// Package generate provides the orchestration logic for writing cuesheets
// for album folders.
//
// # Manager
//
// The Manager coordinates the entire generation process:
//
//  1. Find album folders below the given roots
//  2. Read the tags of their audio files
//  3. Build a cuesheet per album
//  4. Merge an existing cuesheet into it (optional)
//  5. Write the cuesheet next to the audio files
//  6. Save embedded cover art (optional)
//
// # Basic Usage
//
//	manager := generate.NewManager(settings, func(event generate.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	err := manager.Initialize(ctx, "/music")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = manager.StartGeneration(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Concurrency
//
// Albums are processed in parallel, at most settings.MaxConcurrentAlbums at
// a time. Each cuesheet is built and written by a single goroutine.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// # Watch Mode
//
// Watch keeps running after the first pass and regenerates the cuesheet of
// a folder once its audio files stop changing for settings.WatchDebounce.
package generate
