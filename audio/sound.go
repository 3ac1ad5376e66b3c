// SPDX-License-Identifier: EPL-2.0

package audio

import "github.com/ik5/sfxpcm/utils"

// Stream is a payload as extracted from a container, before any decoding.
type Stream struct {
	Codec      Codec
	Channels   int
	SampleRate int
	// BlockAlign is the size in bytes of one encoded block (ADPCM) or one
	// sample frame (PCM).
	BlockAlign    int
	BitsPerSample int
	Data          []byte

	// Loop points in sample frames. They are carried through untouched.
	LoopStart  int
	LoopLength int
}

// Sound is a fully decoded PCM buffer with its metadata. PCM must not be
// modified once the Sound has been built.
type Sound struct {
	PCM        []byte
	Descriptor Descriptor
	Format     Format

	LoopStart  int
	LoopLength int
}

// NewSound builds a Sound from 16-bit or 8-bit PCM and checks that the
// descriptor matches the buffer.
func NewSound(pcm []byte, sampleRate, channels, bitsPerSample int) (*Sound, error) {
	d := Descriptor{
		SampleRate:    sampleRate,
		Channels:      channels,
		BitsPerSample: bitsPerSample,
		ByteSize:      len(pcm),
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	f, err := FormatFor(channels, bitsPerSample)
	if err != nil {
		return nil, err
	}

	return &Sound{PCM: pcm, Descriptor: d, Format: f}, nil
}

// NewSound16 builds a 16-bit Sound from interleaved samples.
func NewSound16(samples []int16, sampleRate, channels int) (*Sound, error) {
	return NewSound(utils.Int16ToBytes(samples), sampleRate, channels, 16)
}

// Samples16 unpacks a 16-bit Sound. It returns nil for 8-bit sounds.
func (s *Sound) Samples16() []int16 {
	if s.Descriptor.BitsPerSample != 16 {
		return nil
	}
	return utils.BytesToInt16(s.PCM)
}

// Seconds is the decoded duration.
func (s *Sound) Seconds() float64 {
	sec, err := s.Descriptor.Seconds()
	if err != nil {
		return 0
	}
	return sec
}

// BindTo hands the buffer to a playback backend. After a successful call the
// backend owns PCM.
func (s *Sound) BindTo(b Backend) error {
	return b.BindDataBuffer(s.PCM, s.Format, s.Descriptor.ByteSize, s.Descriptor.SampleRate)
}
