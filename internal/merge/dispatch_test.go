package merge

import (
	"bytes"
	"errors"
	"testing"

	"bookvoice/internal/riffwav"
)

func wavFragment(t *testing.T, sampleRate uint32, payload []byte) Fragment {
	t.Helper()
	b, err := riffwav.WrapPCM(payload, sampleRate, 1, 16)
	if err != nil {
		t.Fatal(err)
	}
	return Fragment{Bytes: b, MIME: "audio/wav"}
}

func TestConcatOrder(t *testing.T) {
	out := Concat([][]byte{{1, 2}, nil, {3}, {4, 5}})
	if !bytes.Equal(out, []byte{1, 2, 3, 4, 5}) {
		t.Fatalf("out = %v", out)
	}
}

func TestFragmentsEmptyInput(t *testing.T) {
	result := Fragments(nil)
	if len(result.Bytes) != 0 {
		t.Fatalf("expected empty bytes, got %d", len(result.Bytes))
	}
	if result.Extension != ".bin" {
		t.Fatalf("extension = %q", result.Extension)
	}
}

func TestFragmentsSinglePassthrough(t *testing.T) {
	// A single fragment is returned untouched; merge logic must not run even
	// when the payload is not a parseable container.
	fragment := Fragment{Bytes: []byte("garbage"), MIME: "audio/wav"}
	result := Fragments([]Fragment{fragment})
	if result.Strategy != StrategyPassthrough {
		t.Fatalf("strategy = %q", result.Strategy)
	}
	if !bytes.Equal(result.Bytes, fragment.Bytes) {
		t.Fatal("passthrough altered bytes")
	}
	if result.Extension != ".wav" {
		t.Fatalf("extension = %q", result.Extension)
	}
}

func TestFragmentsMP3Concat(t *testing.T) {
	fragments := []Fragment{
		{Bytes: []byte{0xFF, 0xFB, 1}, MIME: "audio/mpeg"},
		{Bytes: []byte{0xFF, 0xFB, 2}, MIME: "audio/mpeg"},
	}
	result := Fragments(fragments)
	if result.Strategy != StrategyConcat {
		t.Fatalf("strategy = %q", result.Strategy)
	}
	if result.FallbackErr != nil || result.Unmergeable {
		t.Fatal("mp3 concat should not be flagged")
	}
	if !bytes.Equal(result.Bytes, []byte{0xFF, 0xFB, 1, 0xFF, 0xFB, 2}) {
		t.Fatalf("bytes = %v", result.Bytes)
	}
	if result.Extension != ".mp3" {
		t.Fatalf("extension = %q", result.Extension)
	}
}

func TestFragmentsWAVStructuralMerge(t *testing.T) {
	fragments := []Fragment{
		wavFragment(t, 24000, make([]byte, 100)),
		wavFragment(t, 24000, make([]byte, 200)),
	}
	result := Fragments(fragments)
	if result.Strategy != StrategyWAV {
		t.Fatalf("strategy = %q", result.Strategy)
	}
	data, err := riffwav.ParseData(result.Bytes)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 300 {
		t.Fatalf("merged data length = %d, want 300", len(data))
	}
}

func TestFragmentsWAVFallbackOnMismatch(t *testing.T) {
	fragments := []Fragment{
		wavFragment(t, 16000, make([]byte, 100)),
		wavFragment(t, 24000, make([]byte, 100)),
	}
	result := Fragments(fragments)
	if result.Strategy != StrategyConcat {
		t.Fatalf("strategy = %q", result.Strategy)
	}
	if !errors.Is(result.FallbackErr, riffwav.ErrFormatMismatch) {
		t.Fatalf("fallback err = %v, want ErrFormatMismatch", result.FallbackErr)
	}
	want := len(fragments[0].Bytes) + len(fragments[1].Bytes)
	if len(result.Bytes) != want {
		t.Fatalf("fallback output = %d bytes, want %d", len(result.Bytes), want)
	}
}

func TestFragmentsUnknownMIMEConcatsWithFlag(t *testing.T) {
	fragments := []Fragment{
		{Bytes: []byte{1}, MIME: "audio/ogg"},
		{Bytes: []byte{2}, MIME: "audio/ogg"},
	}
	result := Fragments(fragments)
	if !result.Unmergeable {
		t.Fatal("expected Unmergeable flag for ogg concat")
	}
	if result.Extension != ".ogg" {
		t.Fatalf("extension = %q", result.Extension)
	}
}
