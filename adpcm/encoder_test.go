// SPDX-License-Identifier: EPL-2.0

package adpcm_test

import (
	"math"
	"testing"

	"github.com/ik5/sfxpcm/adpcm"
	"github.com/ik5/sfxpcm/audio"
	"github.com/ik5/sfxpcm/internal/audiotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rmsError(a, b []int16) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(a)))
}

func TestEncoder_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		channels   int
		blockAlign int
		samples    []int16
	}{
		{"mono sine", 1, 256, audiotest.Sine(22050, 1, 5000, 440, 8000)},
		{"stereo sine", 2, 512, audiotest.Sine(22050, 2, 5000, 440, 12000)},
		{"mono square", 1, 256, audiotest.Square(1, 3000, 40)},
		{"stereo square", 2, 1024, audiotest.Square(2, 4000, 7)},
		{"mono constant", 1, 128, audiotest.Constant(1, 1000, -1234)},
		{"stereo header only blocks", 2, 14, audiotest.Sine(8000, 2, 40, 100, 5000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			enc, err := adpcm.NewEncoder(tt.channels, tt.blockAlign)
			require.NoError(t, err)

			data, recon, err := enc.Encode(tt.samples)
			require.NoError(t, err)
			require.Zero(t, len(data)%tt.blockAlign)

			got, err := adpcm.DecodeSamples(data, tt.channels, tt.blockAlign)
			require.NoError(t, err)
			assert.Equal(t, recon, got)

			blocks := len(data) / tt.blockAlign
			assert.Len(t, got, blocks*enc.SamplesPerBlock()*tt.channels)
			assert.GreaterOrEqual(t, len(got), len(tt.samples))
		})
	}
}

func TestEncoder_Silence(t *testing.T) {
	t.Parallel()

	for _, channels := range []int{1, 2} {
		enc, err := adpcm.NewEncoder(channels, 256*channels)
		require.NoError(t, err)

		in := audiotest.Silence(channels, 4*enc.SamplesPerBlock())
		data, _, err := enc.Encode(in)
		require.NoError(t, err)

		got, err := adpcm.DecodeSamples(data, channels, 256*channels)
		require.NoError(t, err)
		assert.Equal(t, in, got)
	}
}

func TestEncoder_Quality(t *testing.T) {
	t.Parallel()

	in := audiotest.Sine(22050, 1, 5000, 440, 8000)

	enc, err := adpcm.NewEncoder(1, 256)
	require.NoError(t, err)

	_, recon, err := enc.Encode(in)
	require.NoError(t, err)

	assert.Less(t, rmsError(in, recon[:len(in)]), 800.0)

	// seed samples are stored verbatim
	assert.Equal(t, in[:2], recon[:2])
}

func TestEncoder_Padding(t *testing.T) {
	t.Parallel()

	enc, err := adpcm.NewEncoder(1, 256)
	require.NoError(t, err)
	require.Equal(t, 500, enc.SamplesPerBlock())

	data, recon, err := enc.Encode(audiotest.Constant(1, 600, 0))
	require.NoError(t, err)
	assert.Len(t, data, 512)
	assert.Len(t, recon, 1000)
}

func TestEncoder_Errors(t *testing.T) {
	t.Parallel()

	_, err := adpcm.NewEncoder(0, 256)
	assert.ErrorIs(t, err, audio.ErrInvalidFormatParameters)

	_, err = adpcm.NewEncoder(3, 256)
	assert.ErrorIs(t, err, audio.ErrUnsupportedFormat)

	_, err = adpcm.NewEncoder(2, 10)
	assert.ErrorIs(t, err, audio.ErrMalformedStream)

	enc, err := adpcm.NewEncoder(2, 512)
	require.NoError(t, err)

	_, _, err = enc.Encode([]int16{1, 2, 3})
	assert.ErrorIs(t, err, audio.ErrMalformedStream)

	data, recon, err := enc.Encode(nil)
	assert.NoError(t, err)
	assert.Nil(t, data)
	assert.Nil(t, recon)
}

func BenchmarkEncoder(b *testing.B) {
	in := audiotest.Sine(22050, 2, 22050, 440, 10000)
	enc, err := adpcm.NewEncoder(2, 512)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		if _, _, err := enc.Encode(in); err != nil {
			b.Fatal(err)
		}
	}
}
