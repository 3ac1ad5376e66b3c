// SPDX-License-Identifier: EPL-2.0

package adpcm

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ik5/sfxpcm/audio"
)

// Encoder is a reference MS ADPCM encoder. It shares its reconstruction
// arithmetic with the decoder, so the samples it reports as reconstructed
// are exactly what Decode returns for its output.
type Encoder struct {
	channels   int
	blockAlign int
	frames     int // samples per channel per block
}

// NewEncoder returns an encoder producing blocks of blockAlign bytes.
func NewEncoder(channels, blockAlign int) (*Encoder, error) {
	if err := checkLayout(blockAlign, channels, blockAlign); err != nil {
		return nil, err
	}
	return &Encoder{
		channels:   channels,
		blockAlign: blockAlign,
		frames:     SamplesPerBlock(blockAlign, channels),
	}, nil
}

// SamplesPerBlock is the number of sample frames one block holds.
func (e *Encoder) SamplesPerBlock() int { return e.frames }

// Encode compresses interleaved samples. A trailing partial block is padded
// with silence. The second result is the padded sample sequence a decoder
// will reconstruct.
func (e *Encoder) Encode(samples []int16) ([]byte, []int16, error) {
	if len(samples)%e.channels != 0 {
		return nil, nil, fmt.Errorf("%d samples is not a whole number of %d-channel frames: %w",
			len(samples), e.channels, audio.ErrMalformedStream)
	}
	if len(samples) == 0 {
		return nil, nil, nil
	}

	perBlock := e.frames * e.channels
	blocks := (len(samples) + perBlock - 1) / perBlock

	padded := make([]int16, blocks*perBlock)
	copy(padded, samples)

	data := make([]byte, 0, blocks*e.blockAlign)
	recon := make([]int16, 0, len(padded))

	for i := range blocks {
		data, recon = e.encodeBlock(data, recon, padded[i*perBlock:(i+1)*perBlock])
	}

	return data, recon, nil
}

// channelPlan is the best encoding found for one channel of one block.
type channelPlan struct {
	predictor byte
	delta     int32
	nibbles   []byte
	recon     []int16
}

func (e *Encoder) encodeBlock(data []byte, recon []int16, frame []int16) ([]byte, []int16) {
	var plans [maxChannels]channelPlan

	mono := make([]int16, e.frames)
	for ch := range e.channels {
		for i := range e.frames {
			mono[i] = frame[i*e.channels+ch]
		}
		plans[ch] = planChannel(mono)
	}

	for ch := range e.channels {
		data = append(data, plans[ch].predictor)
	}
	for ch := range e.channels {
		data = binary.LittleEndian.AppendUint16(data, uint16(int16(plans[ch].delta)))
	}
	for ch := range e.channels {
		data = binary.LittleEndian.AppendUint16(data, uint16(plans[ch].recon[1]))
	}
	for ch := range e.channels {
		data = binary.LittleEndian.AppendUint16(data, uint16(plans[ch].recon[0]))
	}

	for i := range e.frames {
		for ch := range e.channels {
			recon = append(recon, plans[ch].recon[i])
		}
	}

	// nibbles are written in frame order, high half first
	var (
		cur  byte
		high = true
	)
	for i := range e.frames - 2 {
		for ch := range e.channels {
			n := plans[ch].nibbles[i]
			if high {
				cur = n << 4
			} else {
				data = append(data, cur|n)
			}
			high = !high
		}
	}

	return data, recon
}

// planChannel tries every predictor and keeps the one with the lowest
// squared reconstruction error.
func planChannel(samples []int16) channelPlan {
	var (
		best    channelPlan
		bestErr = int64(math.MaxInt64)
	)

	for p := range NumPredictors {
		plan, sqErr := encodeChannel(samples, byte(p))
		if sqErr < bestErr {
			best, bestErr = plan, sqErr
		}
		if sqErr == 0 {
			break
		}
	}

	return best
}

// initialDelta estimates a starting step size from the first prediction
// errors of the block.
func initialDelta(samples []int16, p byte) int32 {
	const probe = 3

	var sum, n int32
	for k := 2; k < len(samples) && k < 2+probe; k++ {
		pred := (int32(samples[k-1])*coef1[p] + int32(samples[k-2])*coef2[p]) / 256
		d := int32(samples[k]) - pred
		if d < 0 {
			d = -d
		}
		sum += d
		n++
	}
	if n == 0 {
		return minDelta
	}

	delta := sum / (4 * n)
	if delta < minDelta {
		delta = minDelta
	}
	if delta > math.MaxInt16 {
		delta = math.MaxInt16
	}
	return delta
}

func encodeChannel(samples []int16, p byte) (channelPlan, int64) {
	delta := initialDelta(samples, p)

	st := channelState{
		coef1: coef1[p],
		coef2: coef2[p],
		delta: delta,
		prev1: int32(samples[1]),
		prev2: int32(samples[0]),
	}

	plan := channelPlan{
		predictor: p,
		delta:     delta,
		nibbles:   make([]byte, 0, len(samples)-2),
		recon:     make([]int16, 0, len(samples)),
	}
	plan.recon = append(plan.recon, samples[0], samples[1])

	var sqErr int64
	for _, x := range samples[2:] {
		n := quantize(&st, x)
		got := st.expand(n)

		plan.nibbles = append(plan.nibbles, n)
		plan.recon = append(plan.recon, got)

		d := int64(x) - int64(got)
		sqErr += d * d
	}

	return plan, sqErr
}

// quantize picks the 4-bit code whose reconstruction is nearest to x.
func quantize(st *channelState, x int16) byte {
	diff := int32(x) - st.predict()

	bias := st.delta / 2
	if diff < 0 {
		bias = -bias
	}

	q := (diff + bias) / st.delta
	if q > 7 {
		q = 7
	} else if q < -8 {
		q = -8
	}

	return byte(q) & 0x0f
}
