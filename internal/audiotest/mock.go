// SPDX-License-Identifier: EPL-2.0

package audiotest

import "math"

// Generate returns frames interleaved samples produced by waveform for every
// channel.
func Generate(channels, frames int, waveform func(frame int, channel int) int16) []int16 {
	out := make([]int16, frames*channels)
	for f := range frames {
		for ch := range channels {
			out[f*channels+ch] = waveform(f, ch)
		}
	}
	return out
}

// Silence returns all-zero samples.
func Silence(channels, frames int) []int16 {
	return make([]int16, frames*channels)
}

// Constant returns samples that all hold value.
func Constant(channels, frames int, value int16) []int16 {
	return Generate(channels, frames, func(int, int) int16 { return value })
}

// Sine returns a sine wave at frequency Hz scaled to amplitude. The second
// channel, if any, is phase shifted by a quarter period.
func Sine(sampleRate, channels, frames int, frequency float64, amplitude int16) []int16 {
	return Generate(channels, frames, func(f int, ch int) int16 {
		t := float64(f) / float64(sampleRate)
		phase := float64(ch) * math.Pi / 2
		return int16(float64(amplitude) * math.Sin(2*math.Pi*frequency*t+phase))
	})
}

// Square returns a full scale square wave, which pushes an ADPCM predictor
// into saturation.
func Square(channels, frames, period int) []int16 {
	return Generate(channels, frames, func(f int, _ int) int16 {
		if (f/period)%2 == 0 {
			return math.MaxInt16
		}
		return math.MinInt16
	})
}
