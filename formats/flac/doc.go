// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC files into 16-bit PCM sounds.
//
// It wraps github.com/mewkiz/flac and reads the whole stream up front:
//
//	file, _ := os.Open("ambience.flac")
//	sound, err := flac.Decoder{}.Decode(file)
//
// Samples deeper than 16 bits are truncated; shallower ones are shifted up.
package flac
