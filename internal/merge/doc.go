// Package merge selects and applies the strategy for joining synthesized
// audio fragments into one playable file.
//
// Frame-synchronized formats such as MP3 tolerate plain byte concatenation;
// WAVE containers need their data chunks spliced under a single corrected
// header, handled by the riffwav package. The dispatcher is the sole
// recovery boundary: a failed structural merge falls back to raw
// concatenation, which yields a technically incorrect but usually playable
// file instead of losing the document.
package merge
