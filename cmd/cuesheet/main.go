package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/cuesheet/internal/config"
	"github.com/handiism/cuesheet/internal/generate"
)

func main() {
	// Command line flags
	var (
		dirFlag           = flag.String("dir", "", "Music folder to scan (album folders below it get a cuesheet)")
		configFlag        = flag.String("config", "", "Path to config file (.json or .toml)")
		formatFlag        = flag.String("format", "", "Cuesheet file name format, e.g. \"{artist} - {album}\" (overrides config)")
		jobsFlag          = flag.Int("jobs", 0, "Albums processed in parallel (overrides config)")
		noMergeFlag       = flag.Bool("no-merge", false, "Overwrite existing cuesheets instead of merging them")
		noMusicBrainzFlag = flag.Bool("no-musicbrainz", false, "Leave out REM MUSICBRAINZ_* commands")
		coverFlag         = flag.Bool("cover", false, "Save embedded cover art next to the cuesheet")
		watchFlag         = flag.Bool("watch", false, "Keep running and regenerate cuesheets when audio files change")
		verboseFlag       = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag        = flag.Bool("dry-run", false, "Print cuesheets instead of writing them")
		inspectFlag       = flag.String("inspect", "", "Print the tracks of an existing cuesheet and exit")
	)

	flag.Parse()

	if *inspectFlag != "" {
		if err := inspect(*inspectFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error inspecting %s: %v\n", *inspectFlag, err)
			os.Exit(1)
		}
		return
	}

	roots := flag.Args()
	if *dirFlag != "" {
		roots = append([]string{*dirFlag}, roots...)
	}
	if len(roots) == 0 {
		fmt.Println("Cuesheet - Write CUE sheets for album folders")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  cuesheet -dir <folder> [options]")
		fmt.Println("  cuesheet <folder>... [options]")
		fmt.Println("  cuesheet -inspect <file.cue>")
		fmt.Println()
		fmt.Println("For interactive mode, use: cuesheet-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	configPath := *configFlag
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	settings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := settings.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading environment: %v\n", err)
		os.Exit(1)
	}

	// Apply flags
	if *formatFlag != "" {
		settings.CuesheetFileNameFormat = *formatFlag
	}
	if *jobsFlag > 0 {
		settings.MaxConcurrentAlbums = *jobsFlag
	}
	if *noMergeFlag {
		settings.MergeExisting = false
	}
	if *noMusicBrainzFlag {
		settings.MusicBrainzIDs = false
	}
	if *coverFlag {
		settings.SaveCoverArt = true
	}
	if *verboseFlag {
		settings.Verbose = true
	}

	// Handle interrupts
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create manager with progress callback
	manager := generate.NewManager(settings, func(event generate.ProgressEvent) {
		if event.Level == generate.LevelVerbose && !settings.Verbose {
			return
		}

		prefix := ""
		switch event.Level {
		case generate.LevelError:
			prefix = "✗ "
		case generate.LevelWarning:
			prefix = "! "
		case generate.LevelSuccess:
			prefix = "✓ "
		case generate.LevelInfo:
			prefix = "› "
		default:
			prefix = "  "
		}

		if event.Level == generate.LevelError {
			fmt.Fprintln(os.Stderr, prefix+event.Message)
			return
		}
		fmt.Println(prefix + event.Message)
	})

	if err := manager.Initialize(ctx, roots...); err != nil {
		exitOnError(ctx, "scanning", err)
	}

	if *dryRunFlag {
		if err := manager.Preview(ctx, os.Stdout); err != nil {
			exitOnError(ctx, "printing cuesheets", err)
		}
		return
	}

	if err := manager.StartGeneration(ctx); err != nil {
		exitOnError(ctx, "generating cuesheets", err)
	}

	written, failed, total := manager.GetProgress()
	fmt.Println()
	fmt.Printf("Done. Wrote %d/%d cuesheets", written, total)
	if failed > 0 {
		fmt.Printf(", %d failed", failed)
	}
	fmt.Println()

	if *watchFlag {
		if err := manager.Watch(ctx, roots...); err != nil {
			exitOnError(ctx, "watching", err)
		}
		return
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// inspect prints the track list of a cuesheet.
func inspect(path string) error {
	sheet, tracks, err := generate.Inspect(path)
	if err != nil {
		return err
	}

	global := sheet.Global()
	fmt.Printf("%s - %s\n\n", global.Artist(), global.Title())
	for _, t := range tracks {
		start := "--:--:--"
		if t.HasStart {
			start = t.Start.String()
		}
		length := "-"
		if t.Length > 0 {
			length = t.Length.String()
		}
		fmt.Printf("%02d  %s  %-10s  %s - %s\n", t.Number, start, length, t.Performer, t.Title)
	}
	return nil
}

func exitOnError(ctx context.Context, action string, err error) {
	if ctx.Err() != nil {
		fmt.Println("\nCancelled.")
		os.Exit(130)
	}
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", action, err)
	os.Exit(1)
}
