package riffwav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func TestMergeEmptyInput(t *testing.T) {
	out, err := Merge(nil)
	if err != nil {
		t.Fatalf("Merge(nil): %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty output, got %d bytes", len(out))
	}
}

func TestMergeSingleFragmentRegeneratesHeader(t *testing.T) {
	payload := []byte{10, 20, 30, 40}
	fragment := buildWAV(t, pcmFormat(24000), 16, payload)

	out, err := Merge([][]byte{fragment})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if !bytes.Equal(out, fragment) {
		t.Fatalf("single-fragment merge not byte-identical to regenerated file")
	}
}

func TestMergeSumsDataLengths(t *testing.T) {
	format := pcmFormat(24000)
	lengths := []int{480, 960, 2, 0}
	fragments := make([][]byte, 0, len(lengths))
	total := 0
	for i, n := range lengths {
		payload := bytes.Repeat([]byte{byte(i + 1)}, n)
		fragments = append(fragments, buildWAV(t, format, 16, payload))
		total += n
	}

	out, err := Merge(fragments)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(out) != StandardHeaderSize+total {
		t.Fatalf("merged length = %d, want %d", len(out), StandardHeaderSize+total)
	}

	data, err := ParseData(out)
	if err != nil {
		t.Fatalf("ParseData: %v", err)
	}
	if len(data) != total {
		t.Fatalf("data length = %d, want %d", len(data), total)
	}
	riffSize := binary.LittleEndian.Uint32(out[4:8])
	if want := uint32(4 + (8 + 16) + (8 + total)); riffSize != want {
		t.Fatalf("riff size = %d, want %d", riffSize, want)
	}

	// Payloads keep their original order.
	if data[0] != 1 || data[479] != 1 || data[480] != 2 || data[480+960] != 3 {
		t.Fatal("merged payload out of order")
	}
}

func TestMergeRejectsSampleRateMismatch(t *testing.T) {
	a := buildWAV(t, pcmFormat(16000), 16, make([]byte, 32))
	b := buildWAV(t, pcmFormat(24000), 16, make([]byte, 32))

	if _, err := Merge([][]byte{a, b}); !errors.Is(err, ErrFormatMismatch) {
		t.Fatalf("err = %v, want ErrFormatMismatch", err)
	}
}

func TestMergeRejectsByteRateMismatch(t *testing.T) {
	format := pcmFormat(24000)
	a := buildWAV(t, format, 16, make([]byte, 32))
	format.ByteRate++
	b := buildWAV(t, format, 16, make([]byte, 32))

	if _, err := Merge([][]byte{a, b}); !errors.Is(err, ErrFormatMismatch) {
		t.Fatalf("err = %v, want ErrFormatMismatch", err)
	}
}

func TestMergePropagatesParseFailure(t *testing.T) {
	good := buildWAV(t, pcmFormat(24000), 16, make([]byte, 32))
	if _, err := Merge([][]byte{good, []byte("not a wav")}); !errors.Is(err, ErrInvalidContainer) {
		t.Fatalf("err = %v, want ErrInvalidContainer", err)
	}
}

func TestMergeKeepsExtendedFmtSize(t *testing.T) {
	a := buildWAV(t, pcmFormat(24000), 18, make([]byte, 10))
	b := buildWAV(t, pcmFormat(24000), 18, make([]byte, 10))

	out, err := Merge([][]byte{a, b})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	_, size, err := ParseFormat(out)
	if err != nil {
		t.Fatalf("ParseFormat: %v", err)
	}
	if size != 18 {
		t.Fatalf("merged fmt size = %d, want 18", size)
	}
}

// TestMergedOutputDecodesIndependently checks the merged container against a
// third-party WAV decoder rather than this package's own parser.
func TestMergedOutputDecodesIndependently(t *testing.T) {
	format := pcmFormat(24000)
	sample := func(v int16, n int) []byte {
		payload := make([]byte, 0, n*2)
		for i := 0; i < n; i++ {
			payload = binary.LittleEndian.AppendUint16(payload, uint16(v))
		}
		return payload
	}
	a := buildWAV(t, format, 16, sample(1000, 240))
	b := buildWAV(t, format, 16, sample(-1000, 120))

	out, err := Merge([][]byte{a, b})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	dec := wav.NewDecoder(bytes.NewReader(out))
	if !dec.IsValidFile() {
		t.Fatal("third-party decoder rejected merged output")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer: %v", err)
	}
	want := &audio.Format{NumChannels: 1, SampleRate: 24000}
	if buf.Format == nil || *buf.Format != *want {
		t.Fatalf("decoded format = %+v, want %+v", buf.Format, want)
	}
	if dec.BitDepth != 16 {
		t.Fatalf("decoded bit depth = %d, want 16", dec.BitDepth)
	}
	if len(buf.Data) != 360 {
		t.Fatalf("decoded %d samples, want 360", len(buf.Data))
	}
	if buf.Data[0] != 1000 || buf.Data[240] != -1000 {
		t.Fatalf("decoded samples out of order: first=%d, boundary=%d", buf.Data[0], buf.Data[240])
	}
}
