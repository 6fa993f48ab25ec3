package riffwav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func buildWAV(t *testing.T, format Format, fmtSize uint32, payload []byte) []byte {
	t.Helper()
	out, err := AppendHeader(nil, format, fmtSize, len(payload))
	if err != nil {
		t.Fatalf("AppendHeader: %v", err)
	}
	return append(out, payload...)
}

func pcmFormat(sampleRate uint32) Format {
	return Format{
		AudioFormat:   1,
		Channels:      1,
		SampleRate:    sampleRate,
		ByteRate:      sampleRate * 2,
		BlockAlign:    2,
		BitsPerSample: 16,
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	want := pcmFormat(24000)
	payload := make([]byte, 480)
	wav := buildWAV(t, want, 16, payload)

	got, size, err := ParseFormat(wav)
	if err != nil {
		t.Fatalf("ParseFormat: %v", err)
	}
	if got != want {
		t.Fatalf("format mismatch: got %+v, want %+v", got, want)
	}
	if size != 16 {
		t.Fatalf("declared fmt size = %d, want 16", size)
	}

	data, err := ParseData(wav)
	if err != nil {
		t.Fatalf("ParseData: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Fatalf("data payload mismatch: %d bytes, want %d", len(data), len(payload))
	}
}

func TestParseFormatPreservesExtendedSize(t *testing.T) {
	wav := buildWAV(t, pcmFormat(16000), 18, []byte{1, 2, 3, 4})

	_, size, err := ParseFormat(wav)
	if err != nil {
		t.Fatalf("ParseFormat: %v", err)
	}
	if size != 18 {
		t.Fatalf("declared fmt size = %d, want 18", size)
	}
	// 12 + (8+18) + 8 header bytes before the payload.
	if len(wav) != 46+4 {
		t.Fatalf("file length = %d, want 50", len(wav))
	}
}

func TestParseFormatRejectsBadMagic(t *testing.T) {
	wav := buildWAV(t, pcmFormat(24000), 16, nil)
	wav[0] = 'X'
	if _, _, err := ParseFormat(wav); !errors.Is(err, ErrInvalidContainer) {
		t.Fatalf("err = %v, want ErrInvalidContainer", err)
	}
	if _, err := ParseData(wav); !errors.Is(err, ErrInvalidContainer) {
		t.Fatalf("err = %v, want ErrInvalidContainer", err)
	}
	if _, _, err := ParseFormat([]byte("RIF")); !errors.Is(err, ErrInvalidContainer) {
		t.Fatalf("short buffer err = %v, want ErrInvalidContainer", err)
	}
}

func TestParseFormatRejectsUndersizedFmtChunk(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(24))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(12))
	buf.Write(make([]byte, 12))

	if _, _, err := ParseFormat(buf.Bytes()); !errors.Is(err, ErrMalformedChunk) {
		t.Fatalf("err = %v, want ErrMalformedChunk", err)
	}
}

func TestChunkScanSkipsUnknownAndOddChunks(t *testing.T) {
	// Layout: RIFF header, odd-sized LIST chunk (plus pad byte), fmt, data.
	// Getting word alignment wrong here desynchronizes every later read.
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(0)) // outer size not consulted
	buf.WriteString("WAVE")

	buf.WriteString("LIST")
	binary.Write(&buf, binary.LittleEndian, uint32(3))
	buf.Write([]byte{'I', 'N', 'F'})
	buf.WriteByte(0) // pad byte for odd chunk length

	header, err := AppendHeader(nil, pcmFormat(22050), 16, 6)
	if err != nil {
		t.Fatal(err)
	}
	buf.Write(header[12:]) // fmt + data chunk headers
	buf.Write([]byte{1, 2, 3, 4, 5, 6})

	format, _, err := ParseFormat(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseFormat: %v", err)
	}
	if format.SampleRate != 22050 {
		t.Fatalf("sample rate = %d, want 22050", format.SampleRate)
	}
	data, err := ParseData(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseData: %v", err)
	}
	if !bytes.Equal(data, []byte{1, 2, 3, 4, 5, 6}) {
		t.Fatalf("data = %v", data)
	}
}

func TestParseStopsAtTruncatedChunk(t *testing.T) {
	wav := buildWAV(t, pcmFormat(24000), 16, make([]byte, 100))
	truncated := wav[:len(wav)-40] // data chunk declares more than remains

	if _, err := ParseData(truncated); !errors.Is(err, ErrMissingDataChunk) {
		t.Fatalf("err = %v, want ErrMissingDataChunk", err)
	}
	// fmt chunk precedes the truncation point and still parses.
	if _, _, err := ParseFormat(truncated); err != nil {
		t.Fatalf("ParseFormat on truncated tail: %v", err)
	}
}

func TestParseFormatMissingFmtChunk(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(4))
	buf.WriteString("WAVE")
	if _, _, err := ParseFormat(buf.Bytes()); !errors.Is(err, ErrMissingFormatChunk) {
		t.Fatalf("err = %v, want ErrMissingFormatChunk", err)
	}
}

func TestAppendHeaderSizes(t *testing.T) {
	format := pcmFormat(24000)
	header, err := AppendHeader(nil, format, 16, 4800)
	if err != nil {
		t.Fatal(err)
	}
	if len(header) != StandardHeaderSize {
		t.Fatalf("header length = %d, want %d", len(header), StandardHeaderSize)
	}
	riffSize := binary.LittleEndian.Uint32(header[4:8])
	if want := uint32(4 + (8 + 16) + (8 + 4800)); riffSize != want {
		t.Fatalf("riff size = %d, want %d", riffSize, want)
	}
	dataSize := binary.LittleEndian.Uint32(header[len(header)-4:])
	if dataSize != 4800 {
		t.Fatalf("data size = %d, want 4800", dataSize)
	}
}

func TestAppendHeaderClampsFmtSize(t *testing.T) {
	header, err := AppendHeader(nil, pcmFormat(8000), 8, 0)
	if err != nil {
		t.Fatal(err)
	}
	fmtSize := binary.LittleEndian.Uint32(header[16:20])
	if fmtSize != 16 {
		t.Fatalf("fmt size = %d, want clamped 16", fmtSize)
	}
}

func TestAppendHeaderRejectsOverflow(t *testing.T) {
	if _, err := AppendHeader(nil, pcmFormat(24000), 16, -1); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("negative length err = %v, want ErrTooLarge", err)
	}
	if _, err := AppendHeader(nil, pcmFormat(24000), 16, 1<<33); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("oversized length err = %v, want ErrTooLarge", err)
	}
}
