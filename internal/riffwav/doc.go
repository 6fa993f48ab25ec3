// Package riffwav parses, writes, and merges RIFF/WAVE containers without
// touching the encoded audio payload.
//
// The package operates on whole files held in memory. Parsing walks the
// chunk list linearly, tolerating truncated trailing data, and decodes only
// the "fmt " and "data" chunks. Merging validates bit-exact format equality
// across fragments and emits a single fresh header over the concatenated
// payloads, so fragments produced by the same synthesis request join
// losslessly.
package riffwav
