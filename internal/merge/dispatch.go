package merge

import (
	"strings"

	"bookvoice/internal/riffwav"
)

// Fragment is one unit of audio returned by a single synthesis call,
// tagged with the MIME type the upstream API reported.
type Fragment struct {
	Bytes []byte
	MIME  string
}

// Strategy names the merge path the dispatcher chose.
type Strategy string

const (
	StrategyPassthrough Strategy = "passthrough"
	StrategyConcat      Strategy = "concat"
	StrategyWAV         Strategy = "wav"
)

// Result carries the merged audio plus enough context for the caller to
// report what happened. FallbackErr is set when a structural WAV merge
// failed and the dispatcher downgraded to raw concatenation; callers must
// surface it so the document can be investigated.
type Result struct {
	Bytes       []byte
	Extension   string
	MIME        string
	Strategy    Strategy
	FallbackErr error
	// Unmergeable is set when the shared MIME type has no structural merge
	// path and more than one fragment was joined by plain concatenation.
	Unmergeable bool
}

// Fragments merges an ordered sequence of same-MIME fragments into one
// buffer. The shared MIME type is taken from the first fragment. A single
// fragment passes through untouched; MP3-like streams are concatenated;
// WAV-like containers are structurally merged with automatic fallback to
// concatenation on any typed merge error. The function itself never fails:
// every input has a raw-concat rendering.
func Fragments(fragments []Fragment) Result {
	if len(fragments) == 0 {
		return Result{Extension: ExtensionForMIME(""), Strategy: StrategyConcat}
	}

	mime := fragments[0].MIME
	result := Result{
		Extension: ExtensionForMIME(mime),
		MIME:      mime,
	}
	if len(fragments) == 1 {
		result.Bytes = fragments[0].Bytes
		result.Strategy = StrategyPassthrough
		return result
	}

	raw := make([][]byte, len(fragments))
	for i, fragment := range fragments {
		raw[i] = fragment.Bytes
	}

	switch {
	case strings.Contains(mime, "mpeg"), strings.Contains(mime, "mp3"):
		result.Bytes = Concat(raw)
		result.Strategy = StrategyConcat
	case strings.Contains(mime, "wav"), strings.Contains(mime, "x-wav"), strings.Contains(mime, "pcm"):
		merged, err := riffwav.Merge(raw)
		if err != nil {
			result.Bytes = Concat(raw)
			result.Strategy = StrategyConcat
			result.FallbackErr = err
			return result
		}
		result.Bytes = merged
		result.Strategy = StrategyWAV
	default:
		result.Bytes = Concat(raw)
		result.Strategy = StrategyConcat
		result.Unmergeable = true
	}
	return result
}
