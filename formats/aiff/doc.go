// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF (Audio Interchange File Format) files into PCM
// sounds.
//
// This package uses github.com/go-audio/aiff. It is an alternate decode path:
// the result is the same audio.Sound the WAV path produces, so callers can
// hand it to a backend without caring where it came from.
//
// # Supported Formats
//
//   - PCM 8-bit, kept as 8-bit (re-biased to unsigned like WAV)
//   - PCM 16-bit
//   - PCM 24-bit and 32-bit, truncated to 16-bit
//   - Mono and stereo
//
// # Decoding AIFF Files
//
//	file, _ := os.Open("door.aif")
//	sound, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
// The whole file is decoded up front. go-audio needs an io.ReadSeeker;
// other readers are buffered in memory first.
//
// # Error Handling
//
//   - ErrNotAiffFile: The input is not a valid AIFF file
//   - ErrUnsupportedBitDepth: Sample size other than 8, 16, 24 or 32 bits
//   - ErrUnsupportedAiffLayout: Unsupported AIFF file structure
//
// # AIFF vs. WAV
//
// AIFF is similar to WAV but:
//   - Uses big-endian byte order (WAV uses little-endian)
//   - Stores 8-bit samples signed (WAV stores them unsigned)
//   - Stores sample rate as 80-bit float (WAV uses 32-bit int)
//
// The decoder handles all format differences automatically.
package aiff
