// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/sfxpcm/audio"
)

// readChunk is the number of samples pulled from the decoder per call.
const readChunk = 4096

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*audio.Sound, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		// If not a ReadSeeker, we need to read all data into memory
		// This is a limitation of go-audio
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = &readSeeker{data: data, offset: 0}
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	// Read file info
	dec.ReadInfo()

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, ErrUnsupportedBitDepth
	}

	format := dec.Format()
	if format == nil {
		return nil, ErrUnsupportedAiffLayout
	}

	return decodeAll(dec, bitDepth)
}

// decodeAll drains the decoder into a Sound. 8-bit input stays 8-bit
// (re-biased to unsigned); deeper input is truncated to 16 bits.
func decodeAll(dec aiffReader, bitDepth int) (*audio.Sound, error) {
	format := dec.Format()
	if format == nil || format.NumChannels <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	buf := &goaudio.IntBuffer{
		Data:   make([]int, readChunk),
		Format: format,
	}

	var pcm []byte
	for {
		buf.Data = buf.Data[:cap(buf.Data)]
		n, err := dec.PCMBuffer(buf)

		for _, v := range buf.Data[:n] {
			switch {
			case bitDepth == 8:
				pcm = append(pcm, byte(v+128))
			case bitDepth > 16:
				s := uint16(int16(v >> (bitDepth - 16)))
				pcm = append(pcm, byte(s), byte(s>>8))
			default:
				s := uint16(int16(v))
				pcm = append(pcm, byte(s), byte(s>>8))
			}
		}

		if err == io.EOF || (n == 0 && err == nil) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	outBits := 16
	if bitDepth == 8 {
		outBits = 8
	}

	sound, err := audio.NewSound(pcm, format.SampleRate, format.NumChannels, outBits)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return sound, nil
}

// readSeeker implements io.ReadSeeker for in-memory data
type readSeeker struct {
	data   []byte
	offset int64
}

func (rs *readSeeker) Read(p []byte) (n int, err error) {
	if rs.offset >= int64(len(rs.data)) {
		return 0, io.EOF
	}
	n = copy(p, rs.data[rs.offset:])
	rs.offset += int64(n)
	return n, nil
}

func (rs *readSeeker) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64
	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = rs.offset + offset
	case io.SeekEnd:
		newOffset = int64(len(rs.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if newOffset < 0 {
		return 0, fmt.Errorf("negative position")
	}

	rs.offset = newOffset
	return newOffset, nil
}
