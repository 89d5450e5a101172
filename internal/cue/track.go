package cue

import "strings"

// Track is an ordered list of commands sharing one track number.
//
// Track 0 is the global track and has no TRACK command. A Track does not
// reference its Sheet; operations that need the following track, such as
// Length, take the Sheet as an argument.
type Track struct {
	Number   int
	Commands []Command
}

// Add appends a command built from fields.
func (t *Track) Add(fields ...string) {
	t.Commands = append(t.Commands, Command(fields))
}

// Find returns all commands whose leading fields equal prefix.
//
// The keyword is compared case-insensitively, the remaining fields
// exactly.
//
// Example:
//
//	track.Find("INDEX", "01") // [["INDEX", "01", "00:00:00"]]
//	track.Find("PERFORMER")   // every PERFORMER command
func (t *Track) Find(prefix ...string) []Command {
	var found []Command
	for _, cmd := range t.Commands {
		if hasPrefix(cmd, prefix) {
			found = append(found, cmd)
		}
	}
	return found
}

// Field returns the field following prefix in the first matching command,
// or "" when there is none.
func (t *Track) Field(prefix ...string) string {
	for _, cmd := range t.Commands {
		if hasPrefix(cmd, prefix) && len(cmd) > len(prefix) {
			return cmd[len(prefix)]
		}
	}
	return ""
}

// Artist returns the PERFORMER value.
func (t *Track) Artist() string {
	return t.Field("PERFORMER")
}

// Title returns the TITLE value.
func (t *Track) Title() string {
	return t.Field("TITLE")
}

// Rem returns the value of the "REM name" command.
func (t *Track) Rem(name string) string {
	return t.Field("REM", name)
}

// SetArtist sets the PERFORMER value. See Set.
func (t *Track) SetArtist(artist string) {
	t.Set([]string{"PERFORMER"}, artist)
}

// SetTitle sets the TITLE value. See Set.
func (t *Track) SetTitle(title string) {
	t.Set([]string{"TITLE"}, title)
}

// SetRem sets the value of the "REM name" command. See Set.
func (t *Track) SetRem(name, value string) {
	t.Set([]string{"REM", name}, value)
}

// Set overwrites the value following prefix in the first matching
// command, or appends prefix+value when no command matches. Later
// duplicates are left as they are.
func (t *Track) Set(prefix []string, value string) {
	for i, cmd := range t.Commands {
		if !hasPrefix(cmd, prefix) {
			continue
		}
		if len(cmd) > len(prefix) {
			cmd[len(prefix)] = value
		} else {
			t.Commands[i] = append(cmd, value)
		}
		return
	}

	fields := make([]string, 0, len(prefix)+1)
	fields = append(fields, prefix...)
	t.Add(append(fields, value)...)
}

// Index returns the timestamp of "INDEX number", e.g. Index("01").
// The second result is false when the command is missing or its
// timestamp does not parse.
func (t *Track) Index(number string) (Timestamp, bool) {
	ts, err := ParseTimestamp(t.Field("INDEX", number))
	if err != nil {
		return Timestamp{}, false
	}
	return ts, true
}

// Length returns the track length in milliseconds as computed by
// Sheet.TrackLength, or 0 when t is not part of s.
func (t *Track) Length(s *Sheet) int64 {
	for i, other := range s.Tracks {
		if other == t {
			return s.TrackLength(i)
		}
	}
	return 0
}

func hasPrefix(cmd Command, prefix []string) bool {
	if len(cmd) < len(prefix) {
		return false
	}
	for i, p := range prefix {
		if i == 0 {
			if !strings.EqualFold(cmd[0], p) {
				return false
			}
			continue
		}
		if cmd[i] != p {
			return false
		}
	}
	return true
}
