// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"time"
)

// Codec is the WAVE format tag of a payload.
type Codec uint16

const (
	CodecPCM     Codec = 1
	CodecMSADPCM Codec = 2
)

func (c Codec) String() string {
	switch c {
	case CodecPCM:
		return "pcm"
	case CodecMSADPCM:
		return "ms-adpcm"
	default:
		return fmt.Sprintf("codec(%d)", uint16(c))
	}
}

// Format is the canonical layout of a decoded PCM buffer, as handed to a
// playback backend.
type Format int

const (
	FormatUnknown Format = iota
	FormatMono8
	FormatMono16
	FormatStereo8
	FormatStereo16
)

var formatNames = [...]string{
	FormatUnknown:  "unknown",
	FormatMono8:    "mono8",
	FormatMono16:   "mono16",
	FormatStereo8:  "stereo8",
	FormatStereo16: "stereo16",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return formatNames[FormatUnknown]
	}
	return formatNames[f]
}

// Channels returns 1 or 2, or 0 for FormatUnknown.
func (f Format) Channels() int {
	switch f {
	case FormatMono8, FormatMono16:
		return 1
	case FormatStereo8, FormatStereo16:
		return 2
	default:
		return 0
	}
}

// BitsPerSample returns 8 or 16, or 0 for FormatUnknown.
func (f Format) BitsPerSample() int {
	switch f {
	case FormatMono8, FormatStereo8:
		return 8
	case FormatMono16, FormatStereo16:
		return 16
	default:
		return 0
	}
}

// FormatFor maps a channel count and bit depth to a Format tag. Any bit depth
// other than 8 maps to the 16-bit variant.
func FormatFor(channels, bitsPerSample int) (Format, error) {
	if channels <= 0 {
		return FormatUnknown, fmt.Errorf("%d channels: %w", channels, ErrInvalidFormatParameters)
	}

	eight := bitsPerSample == 8
	switch channels {
	case 1:
		if eight {
			return FormatMono8, nil
		}
		return FormatMono16, nil
	case 2:
		if eight {
			return FormatStereo8, nil
		}
		return FormatStereo16, nil
	default:
		return FormatUnknown, fmt.Errorf("%d channels: %w", channels, ErrUnsupportedFormat)
	}
}

// Descriptor is the normalized metadata of a PCM buffer.
type Descriptor struct {
	SampleRate    int `json:"sample_rate" yaml:"sample_rate"`
	Channels      int `json:"channels" yaml:"channels"`
	BitsPerSample int `json:"bits_per_sample" yaml:"bits_per_sample"`
	ByteSize      int `json:"byte_size" yaml:"byte_size"`
}

// FrameSize is the number of bytes in one interleaved sample frame.
func (d Descriptor) FrameSize() int {
	return d.Channels * (d.BitsPerSample / 8)
}

// Frames is the number of sample frames described.
func (d Descriptor) Frames() int {
	fs := d.FrameSize()
	if fs <= 0 {
		return 0
	}
	return d.ByteSize / fs
}

// Validate checks the descriptor invariants.
func (d Descriptor) Validate() error {
	if d.SampleRate <= 0 || d.Channels <= 0 {
		return fmt.Errorf("rate %d, channels %d: %w", d.SampleRate, d.Channels, ErrInvalidFormatParameters)
	}
	if d.BitsPerSample != 8 && d.BitsPerSample != 16 {
		return fmt.Errorf("%d bits per sample: %w", d.BitsPerSample, ErrUnsupportedFormat)
	}
	if d.ByteSize < 0 || d.ByteSize%d.FrameSize() != 0 {
		return fmt.Errorf("%d bytes is not a whole number of %d-byte frames: %w",
			d.ByteSize, d.FrameSize(), ErrMalformedStream)
	}
	return nil
}

// Seconds returns byteSize / (channels × bytesPerSample × sampleRate). Only
// 8 and 16-bit depths are accepted.
func (d Descriptor) Seconds() (float64, error) {
	if d.SampleRate <= 0 || d.Channels <= 0 || d.BitsPerSample <= 0 {
		return 0, fmt.Errorf("rate %d, channels %d, bits %d: %w",
			d.SampleRate, d.Channels, d.BitsPerSample, ErrInvalidFormatParameters)
	}
	if d.BitsPerSample != 8 && d.BitsPerSample != 16 {
		return 0, fmt.Errorf("%d bits per sample: %w", d.BitsPerSample, ErrUnsupportedFormat)
	}
	bytesPerSecond := d.Channels * (d.BitsPerSample / 8) * d.SampleRate
	return float64(d.ByteSize) / float64(bytesPerSecond), nil
}

// Duration is Seconds as a time.Duration.
func (d Descriptor) Duration() (time.Duration, error) {
	s, err := d.Seconds()
	if err != nil {
		return 0, err
	}
	return time.Duration(s * float64(time.Second)), nil
}
