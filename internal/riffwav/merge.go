package riffwav

import "fmt"

// Merge joins independently generated WAVE fragments into one file. All
// fragments must carry bit-exact identical format descriptors; any deviation
// means the fragments were not produced by the same synthesis request and
// surfaces as ErrFormatMismatch rather than a silently corrupt file. The
// merged output reuses the first fragment's format and declared fmt chunk
// size with a data chunk sized for the combined payload. An empty input
// yields an empty output.
func Merge(fragments [][]byte) ([]byte, error) {
	if len(fragments) == 0 {
		return nil, nil
	}

	format, fmtSize, err := ParseFormat(fragments[0])
	if err != nil {
		return nil, fmt.Errorf("fragment 1: %w", err)
	}

	payloads := make([][]byte, 0, len(fragments))
	totalLen := 0
	for i, fragment := range fragments {
		if i > 0 {
			other, _, err := ParseFormat(fragment)
			if err != nil {
				return nil, fmt.Errorf("fragment %d: %w", i+1, err)
			}
			if other != format {
				return nil, fmt.Errorf("fragment %d: %w: %+v vs %+v", i+1, ErrFormatMismatch, other, format)
			}
		}
		data, err := ParseData(fragment)
		if err != nil {
			return nil, fmt.Errorf("fragment %d: %w", i+1, err)
		}
		payloads = append(payloads, data)
		totalLen += len(data)
	}

	out := make([]byte, 0, riffHeaderSize+chunkHeaderSize+int(fmtSize)+chunkHeaderSize+totalLen)
	out, err = AppendHeader(out, format, fmtSize, totalLen)
	if err != nil {
		return nil, err
	}
	for _, payload := range payloads {
		out = append(out, payload...)
	}
	return out, nil
}
