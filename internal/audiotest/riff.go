// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
)

// Chunk is a raw RIFF chunk.
type Chunk struct {
	ID   string
	Data []byte
}

// Loop is the first sample loop of a smpl chunk, in sample frames. End is
// inclusive.
type Loop struct {
	Start, End uint32
}

// WAV describes a RIFF/WAVE file for tests. Zero values produce the smallest
// valid file for the given fields.
type WAV struct {
	Format        uint16
	Channels      int
	SampleRate    int
	BlockAlign    int
	BitsPerSample int
	// Extra is written after cbSize in the fmt chunk.
	Extra []byte
	Data  []byte
	Loop  *Loop

	// Before is written ahead of the fmt chunk.
	Before   []Chunk
	OmitFmt  bool
	OmitData bool
}

// Bytes renders the file.
func (w WAV) Bytes() []byte {
	body := new(bytes.Buffer)
	body.WriteString("WAVE")

	for _, c := range w.Before {
		writeChunk(body, c.ID, c.Data)
	}

	if !w.OmitFmt {
		writeChunk(body, "fmt ", w.fmtChunk())
	}

	if w.Loop != nil {
		writeChunk(body, "smpl", smplChunk(*w.Loop))
	}

	if !w.OmitData {
		writeChunk(body, "data", w.Data)
	}

	out := new(bytes.Buffer)
	out.WriteString("RIFF")
	binary.Write(out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())

	return out.Bytes()
}

func (w WAV) fmtChunk() []byte {
	buf := new(bytes.Buffer)

	blockAlign := w.BlockAlign
	if blockAlign == 0 {
		blockAlign = w.Channels * w.BitsPerSample / 8
	}
	byteRate := w.SampleRate * blockAlign
	if w.Format == 2 && len(w.Extra) >= 2 {
		spb := int(binary.LittleEndian.Uint16(w.Extra))
		if spb > 0 {
			byteRate = w.SampleRate * blockAlign / spb
		}
	}

	binary.Write(buf, binary.LittleEndian, w.Format)
	binary.Write(buf, binary.LittleEndian, uint16(w.Channels))
	binary.Write(buf, binary.LittleEndian, uint32(w.SampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(w.BitsPerSample))

	if w.Extra != nil {
		binary.Write(buf, binary.LittleEndian, uint16(len(w.Extra)))
		buf.Write(w.Extra)
	}

	return buf.Bytes()
}

func smplChunk(l Loop) []byte {
	buf := new(bytes.Buffer)
	// manufacturer .. smpte offset
	for range 7 {
		binary.Write(buf, binary.LittleEndian, uint32(0))
	}
	binary.Write(buf, binary.LittleEndian, uint32(1)) // loop count
	binary.Write(buf, binary.LittleEndian, uint32(0)) // sampler data

	binary.Write(buf, binary.LittleEndian, uint32(0)) // cue point id
	binary.Write(buf, binary.LittleEndian, uint32(0)) // forward loop
	binary.Write(buf, binary.LittleEndian, l.Start)
	binary.Write(buf, binary.LittleEndian, l.End)
	binary.Write(buf, binary.LittleEndian, uint32(0)) // fraction
	binary.Write(buf, binary.LittleEndian, uint32(0)) // play count

	return buf.Bytes()
}

func writeChunk(buf *bytes.Buffer, id string, data []byte) {
	buf.WriteString(id)
	binary.Write(buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(data)
	if len(data)%2 == 1 {
		buf.WriteByte(0)
	}
}

// ADPCMExtra builds the MS ADPCM fmt extension: samples per block followed by
// the coefficient table.
func ADPCMExtra(samplesPerBlock int, coefs [][2]int16) []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, uint16(samplesPerBlock))
	binary.Write(buf, binary.LittleEndian, uint16(len(coefs)))
	for _, c := range coefs {
		binary.Write(buf, binary.LittleEndian, c[0])
		binary.Write(buf, binary.LittleEndian, c[1])
	}
	return buf.Bytes()
}

// PCM16 renders samples as 16-bit little-endian bytes.
func PCM16(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(s))
	}
	return buf
}
