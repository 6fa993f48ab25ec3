package merge

// Concat joins fragments byte-for-byte in input order. Frame-oriented
// streams like MP3 carry a sync marker and length in every frame, so
// back-to-back frames from independent generations stay decodable. Concat
// is also the universal fallback when structural merging is inapplicable.
func Concat(fragments [][]byte) []byte {
	total := 0
	for _, fragment := range fragments {
		total += len(fragment)
	}
	out := make([]byte, 0, total)
	for _, fragment := range fragments {
		out = append(out, fragment...)
	}
	return out
}
