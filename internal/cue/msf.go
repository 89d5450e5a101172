package cue

import (
	"fmt"
	"strconv"
	"strings"
)

// FramesPerSecond is the number of CD frames in one second.
const FramesPerSecond = 75

// Timestamp is a disc position in minutes:seconds:frames (MSF).
//
// Seconds is in [0, 60), Frames is in [0, 75) and Minutes is unbounded.
type Timestamp struct {
	Minutes int
	Seconds int
	Frames  int
}

// ParseTimestamp parses a "mm:ss:ff" string.
//
// Minutes may have any number of digits. Seconds and frames out of range
// are rejected.
func ParseTimestamp(s string) (Timestamp, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Timestamp{}, fmt.Errorf("cue: invalid timestamp %q", s)
	}

	var vals [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return Timestamp{}, fmt.Errorf("cue: invalid timestamp %q", s)
		}
		vals[i] = v
	}

	ts := Timestamp{Minutes: vals[0], Seconds: vals[1], Frames: vals[2]}
	if ts.Seconds >= 60 || ts.Frames >= FramesPerSecond {
		return Timestamp{}, fmt.Errorf("cue: timestamp %q out of range", s)
	}
	return ts, nil
}

// TimestampFromFrames converts an absolute frame count to a Timestamp.
// Negative counts clamp to zero.
func TimestampFromFrames(frames int64) Timestamp {
	if frames < 0 {
		frames = 0
	}
	return Timestamp{
		Minutes: int(frames / (60 * FramesPerSecond)),
		Seconds: int(frames / FramesPerSecond % 60),
		Frames:  int(frames % FramesPerSecond),
	}
}

// TimestampFromMilliseconds converts a millisecond offset to a Timestamp.
//
// Partial frames are truncated: 13ms is frame 0, 14ms is frame 1.
//
// Example:
//
//	TimestampFromMilliseconds(180000) // 03:00:00
//	TimestampFromMilliseconds(1500)   // 00:01:37
func TimestampFromMilliseconds(ms int64) Timestamp {
	return TimestampFromFrames(ms * FramesPerSecond / 1000)
}

// TotalFrames returns the absolute frame count.
func (t Timestamp) TotalFrames() int64 {
	return (int64(t.Minutes)*60+int64(t.Seconds))*FramesPerSecond + int64(t.Frames)
}

// Milliseconds returns the absolute offset in milliseconds, rounded up to
// the next whole millisecond so that TimestampFromMilliseconds maps it
// back to t.
func (t Timestamp) Milliseconds() int64 {
	return framesToMilliseconds(t.TotalFrames())
}

// String renders the timestamp as "mm:ss:ff".
func (t Timestamp) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Minutes, t.Seconds, t.Frames)
}

func framesToMilliseconds(frames int64) int64 {
	return (frames*1000 + FramesPerSecond - 1) / FramesPerSecond
}
