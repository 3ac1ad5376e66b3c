// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/sfxpcm/audio"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

var ErrNotFlacFile = errors.New("not a FLAC file")

// frameReader is an interface for flac.Stream to allow testing
type frameReader interface {
	ParseNext() (*frame.Frame, error)
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*audio.Sound, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}
	defer stream.Close()

	info := stream.Info
	return decodeAll(stream, int(info.SampleRate), int(info.NChannels), int(info.BitsPerSample))
}

// decodeAll interleaves every subframe into 16-bit samples, scaling other
// bit depths to 16 bits.
func decodeAll(stream frameReader, sampleRate, channels, bitDepth int) (*audio.Sound, error) {
	if channels <= 0 || bitDepth <= 0 {
		return nil, fmt.Errorf("%d channels, %d bits: %w", channels, bitDepth, audio.ErrInvalidFormatParameters)
	}

	var samples []int16
	for {
		f, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		if len(f.Subframes) < channels {
			return nil, fmt.Errorf("frame with %d subframes for %d channels: %w",
				len(f.Subframes), channels, audio.ErrMalformedStream)
		}

		n := int(f.BlockSize)
		for ch := range channels {
			if len(f.Subframes[ch].Samples) < n {
				return nil, fmt.Errorf("subframe %d holds %d of %d samples: %w",
					ch, len(f.Subframes[ch].Samples), n, audio.ErrMalformedStream)
			}
		}

		for i := range n {
			for ch := range channels {
				samples = append(samples, to16(f.Subframes[ch].Samples[i], bitDepth))
			}
		}
	}

	sound, err := audio.NewSound16(samples, sampleRate, channels)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return sound, nil
}

func to16(v int32, bitDepth int) int16 {
	switch {
	case bitDepth > 16:
		return int16(v >> (bitDepth - 16))
	case bitDepth < 16:
		return int16(v << (16 - bitDepth))
	default:
		return int16(v)
	}
}
