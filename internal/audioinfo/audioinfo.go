// Package audioinfo estimates playback duration for the audio containers the
// synthesis pipeline produces. Durations feed log output only; probing
// failures are reported but never fatal.
package audioinfo

import (
	"bytes"
	"fmt"
	"time"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"

	"bookvoice/internal/riffwav"
)

// Duration estimates the playback duration of data interpreted per the file
// extension (".wav", ".mp3", ".ogg"). Unknown extensions yield zero with no
// error.
func Duration(data []byte, ext string) (time.Duration, error) {
	switch ext {
	case ".wav":
		return wavDuration(data)
	case ".mp3":
		return mp3Duration(data)
	case ".ogg":
		return oggDuration(data)
	default:
		return 0, nil
	}
}

func wavDuration(data []byte) (time.Duration, error) {
	format, _, err := riffwav.ParseFormat(data)
	if err != nil {
		return 0, fmt.Errorf("parse wav: %w", err)
	}
	payload, err := riffwav.ParseData(data)
	if err != nil {
		return 0, fmt.Errorf("parse wav: %w", err)
	}
	if format.ByteRate == 0 {
		return 0, fmt.Errorf("parse wav: zero byte rate")
	}
	seconds := float64(len(payload)) / float64(format.ByteRate)
	return time.Duration(seconds * float64(time.Second)), nil
}

func mp3Duration(data []byte) (time.Duration, error) {
	dec, err := gomp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("parse mp3: %w", err)
	}
	length := dec.Length()
	if length < 0 || dec.SampleRate() <= 0 {
		return 0, fmt.Errorf("parse mp3: length unavailable")
	}
	// Decoded output is always stereo 16-bit, 4 bytes per frame.
	frames := length / 4
	seconds := float64(frames) / float64(dec.SampleRate())
	return time.Duration(seconds * float64(time.Second)), nil
}

func oggDuration(data []byte) (time.Duration, error) {
	length, format, err := oggvorbis.GetLength(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("parse ogg: %w", err)
	}
	if format == nil || format.SampleRate <= 0 {
		return 0, fmt.Errorf("parse ogg: missing format")
	}
	seconds := float64(length) / float64(format.SampleRate)
	return time.Duration(seconds * float64(time.Second)), nil
}
