package riffwav

import "fmt"

// WrapPCM synthesizes a WAVE container around raw headerless PCM samples,
// used when upstream synthesis returns bare linear16 data. The format is
// tagged as integer PCM with derived block alignment and byte rate.
func WrapPCM(pcm []byte, sampleRate uint32, channels, bitsPerSample uint16) ([]byte, error) {
	if channels == 0 || bitsPerSample == 0 || bitsPerSample%8 != 0 {
		return nil, fmt.Errorf("wrap pcm: unsupported geometry: %d channels, %d bits per sample", channels, bitsPerSample)
	}
	blockAlign := channels * (bitsPerSample / 8)
	format := Format{
		AudioFormat:   1, // integer PCM
		Channels:      channels,
		SampleRate:    sampleRate,
		ByteRate:      sampleRate * uint32(blockAlign),
		BlockAlign:    blockAlign,
		BitsPerSample: bitsPerSample,
	}
	out := make([]byte, 0, StandardHeaderSize+len(pcm))
	out, err := AppendHeader(out, format, fmtChunkMinSize, len(pcm))
	if err != nil {
		return nil, err
	}
	return append(out, pcm...), nil
}
