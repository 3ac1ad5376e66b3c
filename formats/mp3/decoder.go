// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/sfxpcm/audio"
)

// go-mp3 always produces interleaved stereo 16-bit little-endian PCM.
const (
	channels   = 2
	frameBytes = channels * 2
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*audio.Sound, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return decodeAll(dec)
}

func decodeAll(dec mp3Reader) (*audio.Sound, error) {
	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	// a cut-off last frame is dropped
	pcm = pcm[:len(pcm)-len(pcm)%frameBytes]

	sound, err := audio.NewSound(pcm, dec.SampleRate(), channels, 16)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return sound, nil
}
