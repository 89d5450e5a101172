package generate

import (
	"time"

	"github.com/handiism/cuesheet/internal/cue"
)

// TrackInfo summarizes one track of a cuesheet.
type TrackInfo struct {
	Number    int
	Performer string
	Title     string
	Start     cue.Timestamp
	HasStart  bool
	Length    time.Duration // zero for the last track
}

// Inspect reads the cuesheet at path and summarizes its tracks.
//
// The performer falls back to the global PERFORMER. A track length is the
// distance from its INDEX 01 to the INDEX 01 of the next track.
func Inspect(path string) (*cue.Sheet, []TrackInfo, error) {
	sheet, err := cue.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	global := sheet.Global()
	var infos []TrackInfo
	for position, track := range sheet.Tracks {
		if position == 0 {
			continue
		}

		info := TrackInfo{
			Number:    track.Number,
			Performer: track.Artist(),
			Title:     track.Title(),
			Length:    time.Duration(sheet.TrackLength(position)) * time.Millisecond,
		}
		if info.Performer == "" {
			info.Performer = global.Artist()
		}
		info.Start, info.HasStart = track.Index("01")

		infos = append(infos, info)
	}

	return sheet, infos, nil
}
