package generate

import (
	"strings"

	"github.com/handiism/cuesheet/internal/cue"
)

// structural commands are always regenerated and never carried over.
var structural = map[string]bool{
	"FILE":  true,
	"TRACK": true,
	"INDEX": true,
}

// mergeSheets copies into generated the commands of existing that the
// generator did not produce, such as CATALOG, ISRC, FLAGS or REM GENRE.
//
// Global commands are matched against the global track, track commands
// against the generated track with the same number. A command is carried
// over when generated has no command with the same keyword (for REM, the
// same keyword and name). Carried commands are inserted before the first
// FILE command of the track so FILE stays next to the TRACK it precedes.
//
// It returns the number of commands carried over.
func mergeSheets(generated, existing *cue.Sheet) int {
	carried := 0

	for _, old := range existing.Tracks {
		track := generated.Track(old.Number)
		if track == nil {
			continue
		}

		for _, cmd := range old.Commands {
			key := mergeKey(cmd)
			if key == nil || len(track.Find(key...)) > 0 {
				continue
			}
			insertBeforeFile(track, cmd)
			carried++
		}
	}

	return carried
}

// mergeKey returns the prefix identifying cmd, or nil if cmd must not be
// carried over.
func mergeKey(cmd cue.Command) []string {
	if len(cmd) < 2 || structural[cmd.Keyword()] {
		return nil
	}
	if cmd.Keyword() == "REM" {
		if len(cmd) < 3 {
			return nil
		}
		return []string{"REM", strings.ToUpper(cmd[1])}
	}
	return []string{cmd.Keyword()}
}

func insertBeforeFile(track *cue.Track, cmd cue.Command) {
	at := len(track.Commands)
	for i, c := range track.Commands {
		if c.Keyword() == "FILE" {
			at = i
			break
		}
	}

	cmd = append(cue.Command(nil), cmd...)
	track.Commands = append(track.Commands, nil)
	copy(track.Commands[at+1:], track.Commands[at:])
	track.Commands[at] = cmd
}
