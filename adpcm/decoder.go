// SPDX-License-Identifier: EPL-2.0

package adpcm

import (
	"encoding/binary"
	"fmt"

	"github.com/ik5/sfxpcm/audio"
	"github.com/ik5/sfxpcm/utils"
)

const maxChannels = 2

// channelState is the predictor of one channel inside one block.
type channelState struct {
	coef1, coef2 int32
	delta        int32
	prev1, prev2 int32
}

// predict is the linear prediction from the two previous samples.
func (c *channelState) predict() int32 {
	return (c.prev1*c.coef1 + c.prev2*c.coef2) / 256
}

// expand reconstructs one sample from a 4-bit code and advances the state.
func (c *channelState) expand(nibble byte) int16 {
	signed := int32(nibble & 0x0f)
	if signed >= 8 {
		signed -= 16
	}

	sample := utils.ClampInt16(c.predict() + signed*c.delta)

	c.prev2 = c.prev1
	c.prev1 = int32(sample)

	c.delta = adaptation[nibble&0x0f] * c.delta / 256
	if c.delta < minDelta {
		c.delta = minDelta
	} else if c.delta > maxDelta {
		c.delta = maxDelta
	}

	return sample
}

// SamplesPerBlock is the number of samples per channel that one block of
// blockAlign bytes decodes to: two seed samples plus two per nibble byte.
func SamplesPerBlock(blockAlign, channels int) int {
	if channels <= 0 || blockAlign < HeaderSize*channels {
		return 0
	}
	return (blockAlign-HeaderSize*channels)*2/channels + 2
}

func checkLayout(size, channels, blockAlign int) error {
	if channels <= 0 {
		return fmt.Errorf("%d channels: %w", channels, audio.ErrInvalidFormatParameters)
	}
	if channels > maxChannels {
		return fmt.Errorf("%d channels: %w", channels, audio.ErrUnsupportedFormat)
	}
	if blockAlign < HeaderSize*channels {
		return fmt.Errorf("block align %d cannot hold %d channel headers: %w",
			blockAlign, channels, audio.ErrMalformedStream)
	}
	if size == 0 {
		return fmt.Errorf("empty payload: %w", audio.ErrMalformedStream)
	}
	if size%blockAlign != 0 {
		return fmt.Errorf("%d bytes is not a multiple of block align %d: %w",
			size, blockAlign, audio.ErrMalformedStream)
	}
	return nil
}

// DecodeSamples reconstructs interleaved 16-bit samples from MS ADPCM blocks.
// The whole call fails on the first malformed block.
func DecodeSamples(data []byte, channels, blockAlign int) ([]int16, error) {
	if err := checkLayout(len(data), channels, blockAlign); err != nil {
		return nil, err
	}

	blocks := len(data) / blockAlign
	out := make([]int16, 0, blocks*SamplesPerBlock(blockAlign, channels)*channels)

	for i := range blocks {
		var err error
		out, err = decodeBlock(out, data[i*blockAlign:(i+1)*blockAlign], channels)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
	}

	return out, nil
}

// Decode is DecodeSamples packed as 16-bit little-endian PCM bytes.
func Decode(data []byte, channels, blockAlign int) ([]byte, error) {
	samples, err := DecodeSamples(data, channels, blockAlign)
	if err != nil {
		return nil, err
	}
	return utils.Int16ToBytes(samples), nil
}

func decodeBlock(dst []int16, block []byte, channels int) ([]int16, error) {
	var st [maxChannels]channelState

	for ch := range channels {
		p := int(block[ch])
		if p >= NumPredictors {
			return dst, fmt.Errorf("predictor index %d: %w", p, audio.ErrMalformedStream)
		}
		st[ch].coef1 = coef1[p]
		st[ch].coef2 = coef2[p]
	}

	off := channels
	for ch := range channels {
		st[ch].delta = int32(int16(binary.LittleEndian.Uint16(block[off+2*ch:])))
	}
	off += 2 * channels
	for ch := range channels {
		st[ch].prev1 = int32(int16(binary.LittleEndian.Uint16(block[off+2*ch:])))
	}
	off += 2 * channels
	for ch := range channels {
		st[ch].prev2 = int32(int16(binary.LittleEndian.Uint16(block[off+2*ch:])))
	}
	off += 2 * channels

	// sample0 is stored last but plays first
	for ch := range channels {
		dst = append(dst, int16(st[ch].prev2))
	}
	for ch := range channels {
		dst = append(dst, int16(st[ch].prev1))
	}

	ch := 0
	for _, b := range block[off:] {
		dst = append(dst, st[ch].expand(b>>4))
		ch = (ch + 1) % channels
		dst = append(dst, st[ch].expand(b&0x0f))
		ch = (ch + 1) % channels
	}

	return dst, nil
}
