// SPDX-License-Identifier: EPL-2.0

// Package wav reads WAV containers into PCM and writes PCM WAV files.
//
// The reader walks the RIFF chunks with github.com/go-audio/riff and
// understands:
//   - fmt: format tag, channels, sample rate, block align, bit depth, the MS
//     ADPCM extension and WAVE_FORMAT_EXTENSIBLE
//   - smpl: the first sample loop, kept as loop metadata
//   - data: the payload
//
// Other chunks are skipped, before or after data.
//
// # Supported Payloads
//
//   - PCM 8-bit (unsigned) and 16-bit
//   - MS ADPCM, decoded to 16-bit PCM
//   - Mono and stereo
//
// # Decoding WAV Files
//
//	file, _ := os.Open("laser.wav")
//	sound, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	fmt.Println(sound.Format)               // mono16
//	fmt.Println(sound.Descriptor.ByteSize)  // len(sound.PCM)
//
// ReadStream stops short of decoding and returns the declared format and raw
// payload, which is useful when the payload is handed to sfxpcm.Load later.
//
// # Writing WAV Files
//
// WriteSound encodes a Sound with github.com/go-audio/wav:
//
//	out, _ := os.Create("laser-pcm.wav")
//	defer out.Close()
//	err := wav.WriteSound(out, sound)
//
// # Error Handling
//
// Container problems:
//   - ErrNotWavFile: not RIFF/WAVE
//   - ErrUnsupportedWavLayout: missing or short fmt chunk
//   - ErrUnsupportedWavChunks: no data chunk
//
// Payload problems wrap audio.ErrUnsupportedFormat, audio.ErrMalformedStream
// and audio.ErrInvalidFormatParameters:
//
//	if errors.Is(err, audio.ErrMalformedStream) {
//	    fmt.Println("corrupt ADPCM data")
//	}
package wav
