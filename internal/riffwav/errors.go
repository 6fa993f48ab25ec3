package riffwav

import "errors"

var (
	// ErrInvalidContainer indicates the RIFF/WAVE magic is missing or wrong.
	ErrInvalidContainer = errors.New("invalid RIFF/WAVE container")
	// ErrMalformedChunk indicates a chunk whose declared size is inconsistent
	// with its minimum layout (for example a "fmt " chunk under 16 bytes).
	ErrMalformedChunk = errors.New("malformed chunk")
	// ErrMissingFormatChunk indicates no "fmt " chunk was found before the
	// scan terminated.
	ErrMissingFormatChunk = errors.New("fmt chunk not found")
	// ErrMissingDataChunk indicates no "data" chunk was found before the
	// scan terminated.
	ErrMissingDataChunk = errors.New("data chunk not found")
	// ErrFormatMismatch indicates two fragments disagree in at least one
	// format descriptor field.
	ErrFormatMismatch = errors.New("wav format mismatch across fragments")
	// ErrTooLarge indicates the payload would overflow the 32-bit size
	// fields of the RIFF container.
	ErrTooLarge = errors.New("payload exceeds RIFF 32-bit size limit")
)
