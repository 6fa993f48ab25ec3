package riffwav

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestWrapPCM(t *testing.T) {
	pcm := make([]byte, 4800)
	for i := range pcm {
		pcm[i] = byte(i)
	}

	out, err := WrapPCM(pcm, 24000, 1, 16)
	if err != nil {
		t.Fatalf("WrapPCM: %v", err)
	}
	if len(out) != 44+4800 {
		t.Fatalf("wrapped length = %d, want 4844", len(out))
	}

	format, size, err := ParseFormat(out)
	if err != nil {
		t.Fatalf("ParseFormat: %v", err)
	}
	if size != 16 {
		t.Fatalf("fmt size = %d, want 16", size)
	}
	want := Format{AudioFormat: 1, Channels: 1, SampleRate: 24000, ByteRate: 48000, BlockAlign: 2, BitsPerSample: 16}
	if format != want {
		t.Fatalf("format = %+v, want %+v", format, want)
	}

	dataSize := binary.LittleEndian.Uint32(out[40:44])
	if dataSize != 4800 {
		t.Fatalf("data chunk size field = %d, want 4800", dataSize)
	}
	data, err := ParseData(out)
	if err != nil {
		t.Fatalf("ParseData: %v", err)
	}
	if !bytes.Equal(data, pcm) {
		t.Fatal("payload altered by wrapping")
	}
}

func TestWrapPCMStereoGeometry(t *testing.T) {
	out, err := WrapPCM(make([]byte, 16), 16000, 2, 16)
	if err != nil {
		t.Fatalf("WrapPCM: %v", err)
	}
	format, _, err := ParseFormat(out)
	if err != nil {
		t.Fatal(err)
	}
	if format.BlockAlign != 4 || format.ByteRate != 64000 {
		t.Fatalf("block align = %d, byte rate = %d", format.BlockAlign, format.ByteRate)
	}
}

func TestWrapPCMRejectsBadGeometry(t *testing.T) {
	if _, err := WrapPCM(nil, 24000, 0, 16); err == nil {
		t.Fatal("expected error for zero channels")
	}
	if _, err := WrapPCM(nil, 24000, 1, 12); err == nil {
		t.Fatal("expected error for non-byte-aligned bit depth")
	}
}
