package riffwav

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Format holds the decoded fixed fields of a WAVE "fmt " chunk. It is a value
// type; bit-exact equality across fragments is the sole merge compatibility
// gate.
type Format struct {
	AudioFormat   uint16 // 1 = integer PCM, 3 = IEEE float
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

const (
	riffHeaderSize  = 12 // "RIFF" + size + "WAVE"
	chunkHeaderSize = 8  // tag + size
	fmtChunkMinSize = 16 // fixed fmt fields

	// StandardHeaderSize is the byte length of a canonical header with a
	// 16-byte fmt chunk: 12 + (8+16) + 8.
	StandardHeaderSize = riffHeaderSize + chunkHeaderSize + fmtChunkMinSize + chunkHeaderSize
)

// readLE reads a little-endian unsigned integer of the given byte width from
// b at off. Callers guarantee the bounds.
func readLE(b []byte, off, width int) uint32 {
	switch width {
	case 2:
		return uint32(binary.LittleEndian.Uint16(b[off : off+2]))
	case 4:
		return binary.LittleEndian.Uint32(b[off : off+4])
	}
	panic(fmt.Sprintf("riffwav: unsupported field width %d", width))
}

func validateOuterHeader(b []byte) error {
	if len(b) < riffHeaderSize || string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		return ErrInvalidContainer
	}
	return nil
}

// scanChunks walks the chunk list starting after the outer header, invoking
// visit for every chunk whose declared payload fits inside the buffer. A
// chunk whose declared end exceeds the buffer terminates the scan, which
// tolerates truncated or padded trailing data. Odd-length chunks are followed
// by one pad byte not counted in their size; skipping it keeps subsequent
// chunk reads aligned. visit returns true to stop the scan.
func scanChunks(b []byte, visit func(tag string, payload []byte, declared uint32) (bool, error)) (bool, error) {
	off := riffHeaderSize
	for off+chunkHeaderSize <= len(b) {
		tag := string(b[off : off+4])
		declared := readLE(b, off+4, 4)
		start := off + chunkHeaderSize
		end := start + int(declared)
		if end > len(b) {
			break
		}
		done, err := visit(tag, b[start:end], declared)
		if err != nil {
			return false, err
		}
		if done {
			return true, nil
		}
		off = end + int(declared%2)
	}
	return false, nil
}

// ParseFormat decodes the first "fmt " chunk of a WAVE file. It returns the
// format descriptor together with the chunk's declared size, which may exceed
// 16 when the source carries format extension bytes; those bytes are ignored
// but the declared size is preserved so header emission can round-trip it.
func ParseFormat(b []byte) (Format, uint32, error) {
	if err := validateOuterHeader(b); err != nil {
		return Format{}, 0, err
	}
	var format Format
	var declaredSize uint32
	found, err := scanChunks(b, func(tag string, payload []byte, declared uint32) (bool, error) {
		if tag != "fmt " {
			return false, nil
		}
		if declared < fmtChunkMinSize {
			return false, fmt.Errorf("%w: fmt chunk declares %d bytes, need %d", ErrMalformedChunk, declared, fmtChunkMinSize)
		}
		format = Format{
			AudioFormat:   uint16(readLE(payload, 0, 2)),
			Channels:      uint16(readLE(payload, 2, 2)),
			SampleRate:    readLE(payload, 4, 4),
			ByteRate:      readLE(payload, 8, 4),
			BlockAlign:    uint16(readLE(payload, 12, 2)),
			BitsPerSample: uint16(readLE(payload, 14, 2)),
		}
		declaredSize = declared
		return true, nil
	})
	if err != nil {
		return Format{}, 0, err
	}
	if !found {
		return Format{}, 0, ErrMissingFormatChunk
	}
	return format, declaredSize, nil
}

// ParseData returns the payload of the first "data" chunk. The returned slice
// aliases b.
func ParseData(b []byte) ([]byte, error) {
	if err := validateOuterHeader(b); err != nil {
		return nil, err
	}
	var data []byte
	found, err := scanChunks(b, func(tag string, payload []byte, _ uint32) (bool, error) {
		if tag != "data" {
			return false, nil
		}
		data = payload
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrMissingDataChunk
	}
	return data, nil
}

// AppendHeader appends a complete WAVE header for dataLen payload bytes to
// dst and returns the extended slice. The fmt chunk is written with fmtSize
// (clamped to a minimum of 16); extension bytes beyond the 16 fixed fields
// are zero-padded. The payload itself is not written. Returns ErrTooLarge
// when the data length or computed RIFF size would overflow uint32.
func AppendHeader(dst []byte, format Format, fmtSize uint32, dataLen int) ([]byte, error) {
	if fmtSize < fmtChunkMinSize {
		fmtSize = fmtChunkMinSize
	}
	if dataLen < 0 || uint64(dataLen) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: data length %d", ErrTooLarge, dataLen)
	}
	// RIFF size counts everything after its own field: the WAVE tag plus
	// both chunk headers and payloads.
	riffSize := 4 + (chunkHeaderSize + uint64(fmtSize)) + (chunkHeaderSize + uint64(dataLen))
	if riffSize > math.MaxUint32 {
		return nil, fmt.Errorf("%w: riff size %d", ErrTooLarge, riffSize)
	}

	dst = append(dst, "RIFF"...)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(riffSize))
	dst = append(dst, "WAVE"...)

	dst = append(dst, "fmt "...)
	dst = binary.LittleEndian.AppendUint32(dst, fmtSize)
	dst = binary.LittleEndian.AppendUint16(dst, format.AudioFormat)
	dst = binary.LittleEndian.AppendUint16(dst, format.Channels)
	dst = binary.LittleEndian.AppendUint32(dst, format.SampleRate)
	dst = binary.LittleEndian.AppendUint32(dst, format.ByteRate)
	dst = binary.LittleEndian.AppendUint16(dst, format.BlockAlign)
	dst = binary.LittleEndian.AppendUint16(dst, format.BitsPerSample)
	for i := fmtChunkMinSize; i < int(fmtSize); i++ {
		dst = append(dst, 0)
	}

	dst = append(dst, "data"...)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(dataLen))
	return dst, nil
}
