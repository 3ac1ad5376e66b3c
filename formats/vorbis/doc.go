// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files into PCM sounds.
//
// This package uses github.com/jfreymuth/oggvorbis. Vorbis decodes to float
// samples; they are clamped and converted to 16-bit PCM with
// utils.Float32ToInt16.
//
//	file, _ := os.Open("theme.ogg")
//	sound, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
// Channel count and sample rate come from the Vorbis identification header.
package vorbis
