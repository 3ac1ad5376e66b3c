// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 maps a sample in [-1, 1] to the full int16 range. Values
// outside that range saturate and NaN becomes silence.
func Float32ToInt16(x float32) int16 {
	switch {
	case math.IsNaN(float64(x)):
		return 0
	case x >= 1:
		return 32767
	case x <= -1:
		return -32768
	case x < 0:
		return int16(x * 32768)
	default:
		return int16(x * 32767)
	}
}

// Float32sToInt16 converts src into dst and returns the number converted,
// which is the shorter of the two lengths.
func Float32sToInt16(dst []int16, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = Float32ToInt16(src[i])
	}
	return n
}
