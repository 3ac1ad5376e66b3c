// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/sfxpcm/audio"
	"github.com/ik5/sfxpcm/utils"
)

// pcmFormatTag is the WAVE tag the encoder writes.
const pcmFormatTag = 1

// WriteSound writes s as an uncompressed PCM WAV with the sound's own rate,
// channel count and bit depth. 8-bit sounds stay unsigned.
func WriteSound(w io.WriteSeeker, s *audio.Sound) error {
	if s == nil {
		return ErrNilSound
	}

	d := s.Descriptor
	if err := d.Validate(); err != nil {
		return fmt.Errorf("%w", err)
	}

	var data []int
	switch d.BitsPerSample {
	case 8:
		data = make([]int, len(s.PCM))
		for i, b := range s.PCM {
			data[i] = int(b)
		}
	default:
		samples := utils.BytesToInt16(s.PCM)
		data = make([]int, len(samples))
		for i, v := range samples {
			data[i] = int(v)
		}
	}

	enc := gowav.NewEncoder(w, d.SampleRate, d.BitsPerSample, d.Channels, pcmFormatTag)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: d.Channels,
			SampleRate:  d.SampleRate,
		},
		Data:           data,
		SourceBitDepth: d.BitsPerSample,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("%w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
