package riffwav

import (
	"encoding/binary"
	"math"
)

// Silence thresholds. int16 uses ~1% of full scale (about -40 dBFS); float32
// uses a slightly tighter absolute bound since float synthesis output dithers
// less around zero.
const (
	silenceThresholdInt16   = int16(32767 / 100)
	silenceThresholdFloat32 = 0.005
)

// SilenceRatio decodes the sample data of a WAVE file and reports the
// fraction of units that are near-zero amplitude, in [0, 1]. Units are
// channel-interleaved samples for integer 16-bit PCM and IEEE float 32-bit
// data; all other encodings fall back to block-aligned frames where a frame
// counts as silent when at least half its bytes are 0x00 or 0x80. A trailing
// partial unit is not counted. Empty data reports 1.0.
func SilenceRatio(wav []byte) (float64, error) {
	format, _, err := ParseFormat(wav)
	if err != nil {
		return 0, err
	}
	data, err := ParseData(wav)
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 1.0, nil
	}

	switch {
	case format.AudioFormat == 1 && format.BitsPerSample == 16:
		return ratioInt16(data), nil
	case format.AudioFormat == 3 && format.BitsPerSample == 32:
		return ratioFloat32(data), nil
	default:
		return ratioFrames(data, int(format.BlockAlign)), nil
	}
}

func ratioInt16(data []byte) float64 {
	total := len(data) / 2
	if total == 0 {
		return 1.0
	}
	silent := 0
	for i := 0; i+2 <= len(data); i += 2 {
		sample := int16(binary.LittleEndian.Uint16(data[i : i+2]))
		if sample >= -silenceThresholdInt16 && sample <= silenceThresholdInt16 {
			silent++
		}
	}
	return float64(silent) / float64(total)
}

func ratioFloat32(data []byte) float64 {
	total := len(data) / 4
	if total == 0 {
		return 1.0
	}
	silent := 0
	for i := 0; i+4 <= len(data); i += 4 {
		sample := math.Float32frombits(binary.LittleEndian.Uint32(data[i : i+4]))
		if sample >= -silenceThresholdFloat32 && sample <= silenceThresholdFloat32 {
			silent++
		}
	}
	return float64(silent) / float64(total)
}

// ratioFrames partitions data into blockAlign-sized frames and counts a frame
// silent when at least half its bytes are 0x00 or 0x80, the common zero
// encodings for unsigned and offset sample formats.
func ratioFrames(data []byte, blockAlign int) float64 {
	if blockAlign < 1 {
		blockAlign = 1
	}
	total := len(data) / blockAlign
	if total == 0 {
		return 1.0
	}
	silent := 0
	for i := 0; i+blockAlign <= len(data); i += blockAlign {
		zeros := 0
		for _, b := range data[i : i+blockAlign] {
			if b == 0x00 || b == 0x80 {
				zeros++
			}
		}
		if zeros*2 >= blockAlign {
			silent++
		}
	}
	return float64(silent) / float64(total)
}
