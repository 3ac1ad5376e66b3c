// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files into PCM sounds.
//
// This package uses github.com/hajimehoshi/go-mp3 and decodes the whole
// file up front into an audio.Sound, the same shape the WAV path produces.
//
// # Decoding MP3 Files
//
//	file, _ := os.Open("music.mp3")
//	sound, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
// # Output Format
//
//   - 16-bit signed little-endian PCM
//   - Channels: 2 (go-mp3 always produces stereo)
//   - Sample rate: that of the MP3 file
//
// A trailing partial frame is dropped so the buffer is always a whole number
// of frames.
package mp3
