package merge

import "strings"

// ExtensionForMIME maps a MIME type to an output file extension. Rules are
// ordered: some MIME strings match several substrings and the first rule
// wins. Unrecognized types map to ".bin".
func ExtensionForMIME(mime string) string {
	switch {
	case strings.Contains(mime, "mpeg"), strings.Contains(mime, "mp3"):
		return ".mp3"
	case strings.Contains(mime, "wav"),
		strings.Contains(mime, "x-wav"),
		strings.Contains(mime, "pcm"),
		strings.Contains(mime, "linear16"):
		return ".wav"
	case strings.Contains(mime, "ogg"):
		return ".ogg"
	case strings.Contains(mime, "flac"):
		return ".flac"
	default:
		return ".bin"
	}
}

// IsRawPCM reports whether the MIME type advertises headerless linear PCM
// samples that need a WAVE container synthesized around them.
func IsRawPCM(mime string) bool {
	m := strings.ToLower(mime)
	return (strings.Contains(m, "linear16") || strings.Contains(m, "pcm")) && !strings.Contains(m, "wav")
}

var sampleRateKeys = []string{"rate=", "samplerate=", "sample_rate="}

// SampleRateFromMIME extracts a sample rate parameter from MIME strings such
// as "audio/pcm;rate=24000" or "audio/linear16; sample_rate=16000". The first
// run of ASCII digits after a recognized key wins.
func SampleRateFromMIME(mime string) (uint32, bool) {
	lower := strings.ToLower(mime)
	for _, key := range sampleRateKeys {
		pos := strings.Index(lower, key)
		if pos < 0 {
			continue
		}
		tail := lower[pos+len(key):]
		var rate uint64
		digits := 0
		for _, ch := range tail {
			if ch < '0' || ch > '9' {
				break
			}
			rate = rate*10 + uint64(ch-'0')
			digits++
		}
		if digits > 0 && rate > 0 && rate <= 1<<32-1 {
			return uint32(rate), true
		}
	}
	return 0, false
}
