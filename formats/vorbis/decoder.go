// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/ik5/sfxpcm/audio"
	"github.com/ik5/sfxpcm/utils"
	"github.com/jfreymuth/oggvorbis"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*audio.Sound, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return decodeAll(dec)
}

// decodeAll reads every frame and converts it to 16-bit PCM.
func decodeAll(dec oggReader) (*audio.Sound, error) {
	channels := dec.Channels()
	if channels <= 0 {
		return nil, fmt.Errorf("%d channels: %w", channels, audio.ErrInvalidFormatParameters)
	}

	// oggvorbis.Reader.Read() takes a buffer of interleaved samples and
	// returns the number of samples (not frames) read
	buf := make([]float32, 4096*channels)
	conv := make([]int16, len(buf))

	var samples []int16
	for {
		n, err := dec.Read(buf)
		n = utils.Float32sToInt16(conv, buf[:n])
		samples = append(samples, conv[:n]...)

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		if n == 0 {
			break
		}
	}

	samples = samples[:len(samples)-len(samples)%channels]

	sound, err := audio.NewSound16(samples, dec.SampleRate(), channels)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return sound, nil
}
