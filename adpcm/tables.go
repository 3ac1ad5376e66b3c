// SPDX-License-Identifier: EPL-2.0

package adpcm

// Predictor coefficient pairs, scaled by 256. The block header selects one
// pair per channel by index.
var (
	coef1 = [...]int32{256, 512, 0, 192, 240, 460, 392}
	coef2 = [...]int32{0, -256, 0, 64, 0, -208, -232}
)

// adaptation scales the step size after every nibble, scaled by 256. Nibbles
// near the extremes of the signed 4-bit range grow the step, the rest shrink
// it.
var adaptation = [16]int32{
	230, 230, 230, 230, 307, 409, 512, 614,
	768, 614, 512, 409, 307, 230, 230, 230,
}

const (
	// NumPredictors is the number of coefficient pairs a header may select.
	NumPredictors = len(coef1)

	// HeaderSize is the per-channel block header: predictor index, step size
	// and two seed samples.
	HeaderSize = 7

	minDelta = 16
	// keeps adaptation[n]*delta and nibble*delta inside int32
	maxDelta = (1<<31 - 1) / 768
)

// Coefficients returns the predictor coefficient pairs in the order the block
// header indexes them, as written in a WAVE fmt extension.
func Coefficients() [][2]int16 {
	out := make([][2]int16, NumPredictors)
	for i := range out {
		out[i] = [2]int16{int16(coef1[i]), int16(coef2[i])}
	}
	return out
}
