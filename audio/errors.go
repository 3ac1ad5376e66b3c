// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	// ErrUnsupportedFormat is returned for a codec tag or channel layout that
	// has no decode path.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrMalformedStream is returned when compressed input is structurally
	// invalid: bad length, bad predictor index or a truncated block.
	ErrMalformedStream = errors.New("malformed audio stream")
	// ErrInvalidFormatParameters is returned for a non-positive sample rate
	// or channel count.
	ErrInvalidFormatParameters = errors.New("invalid format parameters")
)
