// SPDX-License-Identifier: EPL-2.0

package sfxpcm

import (
	"fmt"

	"github.com/ik5/sfxpcm/adpcm"
	"github.com/ik5/sfxpcm/audio"
)

// Load turns a payload extracted from a container into a playable Sound.
//
// The pipeline is:
//  1. Validate sample rate and channel count
//  2. Classify the codec tag
//  3. Decode MS ADPCM blocks to 16-bit PCM when the payload is compressed
//  4. Build the descriptor and check it against the PCM length
//
// PCM payloads are passed through without copying. Loop points are carried
// over as-is.
//
// Errors wrap audio.ErrUnsupportedFormat, audio.ErrMalformedStream or
// audio.ErrInvalidFormatParameters; check them with errors.Is.
func Load(s audio.Stream) (*audio.Sound, error) {
	if s.SampleRate <= 0 || s.Channels <= 0 {
		return nil, fmt.Errorf("rate %d, channels %d: %w",
			s.SampleRate, s.Channels, audio.ErrInvalidFormatParameters)
	}

	class, err := audio.Classify(s.Codec, s.Channels, s.BitsPerSample)
	if err != nil {
		return nil, err
	}

	// a zero hint means the container did not say; anything else must be a
	// depth the backend can take as-is
	if !class.NeedsDecode && s.BitsPerSample != 0 && s.BitsPerSample != 8 && s.BitsPerSample != 16 {
		return nil, fmt.Errorf("%d-bit pcm: %w", s.BitsPerSample, audio.ErrUnsupportedFormat)
	}

	pcm := s.Data
	if class.NeedsDecode {
		pcm, err = adpcm.Decode(s.Data, s.Channels, s.BlockAlign)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", s.Codec, err)
		}
	}

	sound, err := audio.NewSound(pcm, s.SampleRate, s.Channels, class.Format.BitsPerSample())
	if err != nil {
		return nil, err
	}

	sound.LoopStart = s.LoopStart
	sound.LoopLength = s.LoopLength

	return sound, nil
}

// LoadPCM is Load for a raw PCM buffer with no container, the way a caller
// that already holds samples builds a Sound.
func LoadPCM(pcm []byte, sampleRate, channels, bitsPerSample int) (*audio.Sound, error) {
	return Load(audio.Stream{
		Codec:         audio.CodecPCM,
		Channels:      channels,
		SampleRate:    sampleRate,
		BlockAlign:    channels * (bitsPerSample / 8),
		BitsPerSample: bitsPerSample,
		Data:          pcm,
	})
}

// Duration computes byteSize / (channels × bitsPerSample/8 × sampleRate) in
// seconds.
func Duration(byteSize, sampleRate, channels, bitsPerSample int) (float64, error) {
	return audio.Descriptor{
		SampleRate:    sampleRate,
		Channels:      channels,
		BitsPerSample: bitsPerSample,
		ByteSize:      byteSize,
	}.Seconds()
}
