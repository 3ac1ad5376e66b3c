// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Classification is the outcome of Classify.
type Classification struct {
	// Format is the tag of the PCM that will be handed to a backend.
	Format Format
	// NeedsDecode reports that the payload must go through the ADPCM decoder
	// before it is PCM.
	NeedsDecode bool
}

// Classify decides whether a payload is already linear PCM and derives its
// output format tag.
//
// PCM payloads are 16-bit unless bitsHint is 8. MS ADPCM payloads always
// decode to 16-bit, so bitsHint is ignored for them.
func Classify(codec Codec, channels, bitsHint int) (Classification, error) {
	if channels <= 0 {
		return Classification{}, fmt.Errorf("%d channels: %w", channels, ErrInvalidFormatParameters)
	}

	switch codec {
	case CodecPCM:
		f, err := FormatFor(channels, bitsHint)
		if err != nil {
			return Classification{}, err
		}
		return Classification{Format: f}, nil

	case CodecMSADPCM:
		f, err := FormatFor(channels, 16)
		if err != nil {
			return Classification{}, err
		}
		return Classification{Format: f, NeedsDecode: true}, nil

	default:
		return Classification{}, fmt.Errorf("%s: %w", codec, ErrUnsupportedFormat)
	}
}
