// SPDX-License-Identifier: EPL-2.0

// Package adpcm decodes and encodes Microsoft ADPCM (WAVE format tag 2).
//
// A stream is a run of fixed-size blocks. Each block starts with a 7-byte
// header per channel, interleaved field by field:
//
//	predictor index  1 byte   (selects one of 7 coefficient pairs)
//	step size        int16 LE
//	sample 1         int16 LE (second output sample)
//	sample 0         int16 LE (first output sample)
//
// The rest of the block is 4-bit codes, two per byte, high nibble first,
// interleaved across channels in frame order. Every block is decoded on its
// own; no predictor state crosses a block boundary.
//
// # Decoding
//
//	pcm, err := adpcm.Decode(data, channels, blockAlign)
//	if errors.Is(err, audio.ErrMalformedStream) {
//	    // bad length, predictor index or truncated block
//	}
//
// Decode returns 16-bit little-endian PCM. DecodeSamples returns the same
// samples as []int16.
//
// # Encoding
//
// Encoder is a reference encoder for the same scheme. It is used to build
// fixtures and to check that decoding is bit-exact:
//
//	enc, _ := adpcm.NewEncoder(1, 256)
//	data, reconstructed, _ := enc.Encode(samples)
//	// adpcm.DecodeSamples(data, 1, 256) == reconstructed
//
// All functions are safe for concurrent use; state lives on the stack of
// each call.
package adpcm
