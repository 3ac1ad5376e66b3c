// SPDX-License-Identifier: EPL-2.0

// Package sfxpcm turns sound-effect payloads into playable PCM buffers.
//
// A payload is the codec tag, channel count, sample rate, block alignment and
// raw bytes a container reader extracted from a WAV-family file. The package
// classifies it, decodes Microsoft ADPCM when needed and returns an
// audio.Sound: a flat PCM buffer plus its sample rate, channel count, bit depth,
// byte size and duration. The Sound is what a playback backend binds.
//
// # Supported Payloads
//
//   - PCM, 8-bit unsigned or 16-bit signed (codec tag 1)
//   - MS ADPCM, decoded to 16-bit (codec tag 2) via adpcm
//   - Mono and stereo
//
// Alternate decode paths that produce the same audio.Sound live under formats:
//   - WAV container reader and PCM writer via formats/wav
//   - AIFF via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - FLAC via formats/flac
//
// # Quick Start
//
//	// Read a WAV file; ADPCM payloads are decoded on the way
//	file, _ := os.Open("explosion.wav")
//	sound, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // errors.Is(err, audio.ErrMalformedStream) etc.
//	}
//
//	fmt.Println(sound.Format, sound.Descriptor.SampleRate, sound.Seconds())
//
// # Loading a Payload Directly
//
// When the container has already been parsed elsewhere:
//
//	sound, err := sfxpcm.Load(audio.Stream{
//	    Codec:      audio.CodecMSADPCM,
//	    Channels:   2,
//	    SampleRate: 22050,
//	    BlockAlign: 512,
//	    Data:       payload,
//	})
//
// # Handing Off
//
// A Sound is immutable. Passing it to a backend transfers the buffer:
//
//	err := sound.BindTo(backend) // backend implements audio.Backend
//
// # Concurrency
//
// Load and the adpcm functions keep all state local to the call. Any number of
// loads may run in parallel without locking.
package sfxpcm
