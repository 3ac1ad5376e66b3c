// SPDX-License-Identifier: EPL-2.0

package utils

import "encoding/binary"

// Int16ToBytes packs samples as 16-bit little-endian PCM.
func Int16ToBytes(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}

// BytesToInt16 unpacks 16-bit little-endian PCM. A trailing odd byte is
// ignored.
func BytesToInt16(b []byte) []int16 {
	out := make([]int16, len(b)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b[2*i:]))
	}
	return out
}

// ClampInt16 saturates x to the int16 range.
func ClampInt16(x int32) int16 {
	if x > 32767 {
		return 32767
	}
	if x < -32768 {
		return -32768
	}
	return int16(x)
}
