// SPDX-License-Identifier: EPL-2.0

// Package audio defines the types shared by every decode path.
//
// This package contains:
//   - Stream: a payload as a container reader extracted it
//   - Sound: a decoded PCM buffer with its Descriptor and Format tag
//   - Classify: the codec/channel/bit-depth to Format decision
//   - Decoder and Registry for picking a decoder by file extension
//   - Backend, the interface a playback device implements
//   - The error values every decode path wraps
//
// # Format Tags
//
// A Format names the layout a backend receives:
//
//	FormatMono8     1 channel,  8-bit unsigned
//	FormatMono16    1 channel,  16-bit signed little-endian
//	FormatStereo8   2 channels, 8-bit unsigned, interleaved
//	FormatStereo16  2 channels, 16-bit signed little-endian, interleaved
//
// # Classification
//
//	c, err := audio.Classify(audio.CodecMSADPCM, 2, 4)
//	// c.Format == audio.FormatStereo16, c.NeedsDecode == true
//
// PCM is 16-bit unless the container says 8. MS ADPCM always decodes to
// 16-bit. Any other codec tag fails with ErrUnsupportedFormat.
//
// # Descriptor
//
// Descriptor.ByteSize always equals len(Sound.PCM) and is a whole number of
// frames. Duration is ByteSize / (Channels × BitsPerSample/8 × SampleRate):
//
//	d := audio.Descriptor{SampleRate: 22050, Channels: 1, BitsPerSample: 16, ByteSize: 88200}
//	sec, _ := d.Seconds() // 2.0
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get("WAV") // keys are case-insensitive
//
// # Error Handling
//
// Every decode path wraps one of:
//   - ErrUnsupportedFormat: unknown codec tag or channel layout
//   - ErrMalformedStream: structurally invalid payload
//   - ErrInvalidFormatParameters: non-positive sample rate or channel count
//
// None of them is transient; retrying the same input fails the same way.
//
//	if errors.Is(err, audio.ErrMalformedStream) {
//	    // fall back to another decoder or report the asset as broken
//	}
package audio
