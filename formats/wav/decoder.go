// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
	"github.com/ik5/sfxpcm"
	"github.com/ik5/sfxpcm/adpcm"
	"github.com/ik5/sfxpcm/audio"
)

const (
	formatExtensible = 0xFFFE

	// smpl chunks beyond this are not sampler metadata we understand
	maxSmplSize = 1 << 16
)

var (
	waveID = [4]byte{'W', 'A', 'V', 'E'}
	smplID = [4]byte{'s', 'm', 'p', 'l'}
)

type Decoder struct{}

// Decode reads a WAV file and returns its payload as PCM, decoding MS ADPCM
// on the way.
func (Decoder) Decode(r io.Reader) (*audio.Sound, error) {
	st, err := ReadStream(r)
	if err != nil {
		return nil, err
	}

	sound, err := sfxpcm.Load(*st)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return sound, nil
}

// ReadStream walks the RIFF chunks of a WAV file and extracts the declared
// format and the raw payload without decoding it. Chunks other than fmt, smpl
// and data are skipped.
func ReadStream(r io.Reader) (*audio.Stream, error) {
	p := riff.New(r)

	id, size, err := p.IDnSize()
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if id != riff.RiffID {
		return nil, ErrNotWavFile
	}
	p.ID = id
	p.Size = size

	if _, err := io.ReadFull(r, p.Format[:]); err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if p.Format != waveID {
		return nil, ErrNotWavFile
	}

	var (
		st     audio.Stream
		gotFmt bool
	)

	for {
		id, size, err := p.IDnSize()
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		chunk := &riff.Chunk{ID: id, Size: int(size), R: r}

		switch id {
		case riff.FmtID:
			if err := readFmt(chunk, p, &st); err != nil {
				return nil, err
			}
			gotFmt = true

		case smplID:
			if err := readSmpl(chunk, &st); err != nil {
				return nil, err
			}

		case riff.DataFormatID:
			if !gotFmt {
				return nil, ErrUnsupportedWavLayout
			}
			// a short data chunk keeps what is there; Load decides whether
			// it is usable
			data, err := io.ReadAll(io.LimitReader(r, int64(size)))
			if err != nil {
				return nil, fmt.Errorf("%w", err)
			}
			st.Data = data

			// smpl may follow data
			if err := skipPad(r, size); err != nil {
				return &st, nil
			}
			if err := readTrailing(r, p, &st); err != nil {
				return nil, err
			}
			return &st, nil

		default:
			chunk.Drain()
		}

		if err := skipPad(r, size); err != nil {
			break
		}
	}

	if !gotFmt {
		return nil, ErrUnsupportedWavLayout
	}
	return nil, ErrUnsupportedWavChunks
}

// readTrailing picks up a smpl chunk written after the data chunk.
func readTrailing(r io.Reader, p *riff.Parser, st *audio.Stream) error {
	for {
		id, size, err := p.IDnSize()
		if err != nil {
			return nil
		}

		chunk := &riff.Chunk{ID: id, Size: int(size), R: r}
		if id == smplID {
			if err := readSmpl(chunk, st); err != nil {
				return err
			}
		} else {
			chunk.Drain()
		}

		if err := skipPad(r, size); err != nil {
			return nil
		}
	}
}

func readFmt(chunk *riff.Chunk, p *riff.Parser, st *audio.Stream) error {
	if chunk.Size < 16 {
		return ErrUnsupportedWavLayout
	}

	fields := []any{
		&p.WavAudioFormat,
		&p.NumChannels,
		&p.SampleRate,
		&p.AvgBytesPerSec,
		&p.BlockAlign,
		&p.BitsPerSample,
	}
	for _, f := range fields {
		if err := chunk.ReadLE(f); err != nil {
			return fmt.Errorf("reading fmt chunk: %w", err)
		}
	}

	st.Codec = audio.Codec(p.WavAudioFormat)
	st.Channels = int(p.NumChannels)
	st.SampleRate = int(p.SampleRate)
	st.BlockAlign = int(p.BlockAlign)
	st.BitsPerSample = int(p.BitsPerSample)

	var extra []byte
	if chunk.Size >= 18 {
		var cbSize uint16
		if err := chunk.ReadLE(&cbSize); err != nil {
			return fmt.Errorf("reading fmt extension size: %w", err)
		}
		if int(cbSize) > chunk.Size-18 {
			return fmt.Errorf("fmt extension of %d bytes: %w", cbSize, ErrUnsupportedWavLayout)
		}
		extra = make([]byte, cbSize)
		if cbSize > 0 {
			if err := chunk.ReadLE(extra); err != nil {
				return fmt.Errorf("reading fmt extension: %w", err)
			}
		}
	}
	chunk.Drain()

	switch st.Codec {
	case formatExtensible:
		// the sub-format GUID starts with the real format tag
		if len(extra) < 22 {
			return fmt.Errorf("short extensible fmt: %w", ErrUnsupportedWavLayout)
		}
		st.Codec = audio.Codec(binary.LittleEndian.Uint16(extra[6:8]))

	case audio.CodecMSADPCM:
		return checkADPCMExtension(extra, st)
	}

	return nil
}

// checkADPCMExtension validates the samples-per-block and coefficient table
// an MS ADPCM fmt chunk declares. The decoder only knows the standard table.
func checkADPCMExtension(extra []byte, st *audio.Stream) error {
	if len(extra) < 4 {
		return nil
	}

	spb := int(binary.LittleEndian.Uint16(extra[0:2]))
	if want := adpcm.SamplesPerBlock(st.BlockAlign, st.Channels); spb != want {
		return fmt.Errorf("%d samples per block declared, block align %d holds %d: %w",
			spb, st.BlockAlign, want, audio.ErrMalformedStream)
	}

	n := int(binary.LittleEndian.Uint16(extra[2:4]))
	coefs := adpcm.Coefficients()
	if n < len(coefs) || len(extra) < 4+n*4 {
		return fmt.Errorf("%d adpcm coefficients: %w", n, audio.ErrUnsupportedFormat)
	}

	for i, c := range coefs {
		off := 4 + i*4
		c1 := int16(binary.LittleEndian.Uint16(extra[off:]))
		c2 := int16(binary.LittleEndian.Uint16(extra[off+2:]))
		if c1 != c[0] || c2 != c[1] {
			return fmt.Errorf("non-standard adpcm coefficient %d: %w", i, audio.ErrUnsupportedFormat)
		}
	}

	return nil
}

// readSmpl takes the first loop of a sampler chunk, if any.
func readSmpl(chunk *riff.Chunk, st *audio.Stream) error {
	if chunk.Size > maxSmplSize {
		chunk.Drain()
		return nil
	}

	buf := make([]byte, chunk.Size)
	if len(buf) > 0 {
		if err := chunk.ReadLE(buf); err != nil {
			return fmt.Errorf("reading smpl chunk: %w", err)
		}
	}

	if len(buf) < 60 || binary.LittleEndian.Uint32(buf[28:32]) == 0 {
		return nil
	}

	start := binary.LittleEndian.Uint32(buf[44:48])
	end := binary.LittleEndian.Uint32(buf[48:52])
	if end < start {
		return nil
	}

	st.LoopStart = int(start)
	st.LoopLength = int(end-start) + 1

	return nil
}

// skipPad consumes the pad byte that follows an odd-sized chunk.
func skipPad(r io.Reader, size uint32) error {
	if size%2 == 0 {
		return nil
	}
	var pad [1]byte
	_, err := io.ReadFull(r, pad[:])
	return err
}
