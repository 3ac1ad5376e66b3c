// SPDX-License-Identifier: EPL-2.0

package audiotest

import "github.com/ik5/sfxpcm/adpcm"

// ADPCM compresses samples with the reference encoder. It returns the block
// data, the samples a decoder reconstructs from it and a WAV built around it.
func ADPCM(sampleRate, channels, blockAlign int, samples []int16) ([]byte, []int16, WAV, error) {
	enc, err := adpcm.NewEncoder(channels, blockAlign)
	if err != nil {
		return nil, nil, WAV{}, err
	}

	data, recon, err := enc.Encode(samples)
	if err != nil {
		return nil, nil, WAV{}, err
	}

	w := WAV{
		Format:        2,
		Channels:      channels,
		SampleRate:    sampleRate,
		BlockAlign:    blockAlign,
		BitsPerSample: 4,
		Extra:         ADPCMExtra(enc.SamplesPerBlock(), adpcm.Coefficients()),
		Data:          data,
	}

	return data, recon, w, nil
}
