package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/wav"
	"github.com/mewkiz/flac"
)

// ErrUnknownLength is returned by ProbeLength for formats whose length
// cannot be read from the file header.
var ErrUnknownLength = errors.New("audio: length unknown for this format")

// ProbeLength reads the playing time of an uncompressed or lossless file
// from its header.
//
// Supported formats:
//   - WAV: data chunk size divided by the fmt chunk byte rate
//   - FLAC: total samples divided by sample rate from STREAMINFO
//
// Other formats return ErrUnknownLength; MP3 lengths come from the TLEN
// tag frame instead (see TagReader).
func ProbeLength(path string) (time.Duration, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return probeWAV(path)
	case ".flac":
		return probeFLAC(path)
	default:
		return 0, ErrUnknownLength
	}
}

func probeWAV(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return 0, fmt.Errorf("audio: not a valid WAV file: %s", path)
	}
	if err := dec.FwdToPCM(); err != nil {
		return 0, fmt.Errorf("audio: no data chunk: %w", err)
	}
	if dec.AvgBytesPerSec == 0 {
		return 0, fmt.Errorf("audio: WAV byte rate is zero")
	}

	ms := dec.PCMLen() * 1000 / int64(dec.AvgBytesPerSec)
	return time.Duration(ms) * time.Millisecond, nil
}

// probeFLAC reads the STREAMINFO block. Audio frames are not decoded.
func probeFLAC(path string) (time.Duration, error) {
	stream, err := flac.ParseFile(path)
	if err != nil {
		return 0, fmt.Errorf("audio: reading FLAC metadata: %w", err)
	}
	defer stream.Close()

	info := stream.Info
	if info == nil || info.SampleRate == 0 {
		return 0, fmt.Errorf("audio: FLAC sample rate is zero")
	}

	ms := info.NSamples * 1000 / uint64(info.SampleRate)
	return time.Duration(ms) * time.Millisecond, nil
}
