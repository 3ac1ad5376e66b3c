// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/ik5/sfxpcm/adpcm"
	"github.com/ik5/sfxpcm/audio"
	"github.com/ik5/sfxpcm/internal/audiotest"
)

func pcmFile(sampleRate, channels int, samples []int16) audiotest.WAV {
	return audiotest.WAV{
		Format:        1,
		Channels:      channels,
		SampleRate:    sampleRate,
		BitsPerSample: 16,
		Data:          audiotest.PCM16(samples),
	}
}

func TestDecoder_ValidWAVFile(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 100, 200, -100, -200, 0}
	file := pcmFile(8000, 1, samples)

	sound, err := Decoder{}.Decode(bytes.NewReader(file.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}

	if sound.Format != audio.FormatMono16 {
		t.Errorf("Format = %v, want mono16", sound.Format)
	}
	if sound.Descriptor.SampleRate != 8000 {
		t.Errorf("SampleRate = %d, want 8000", sound.Descriptor.SampleRate)
	}
	if got := sound.Samples16(); !slices.Equal(got, samples) {
		t.Errorf("Samples16() = %v, want %v", got, samples)
	}
}

func TestDecoder_StereoWAVFile(t *testing.T) {
	t.Parallel()

	samples := []int16{100, 200, 300, 400, 500, 600}
	file := pcmFile(44100, 2, samples)

	sound, err := Decoder{}.Decode(bytes.NewReader(file.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if sound.Format != audio.FormatStereo16 {
		t.Errorf("Format = %v, want stereo16", sound.Format)
	}
	if sound.Descriptor.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", sound.Descriptor.Frames())
	}
}

func TestDecoder_8Bit(t *testing.T) {
	t.Parallel()

	file := audiotest.WAV{
		Format:        1,
		Channels:      2,
		SampleRate:    11025,
		BitsPerSample: 8,
		Data:          []byte{128, 0, 255, 128},
	}

	sound, err := Decoder{}.Decode(bytes.NewReader(file.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if sound.Format != audio.FormatStereo8 {
		t.Errorf("Format = %v, want stereo8", sound.Format)
	}
	if !bytes.Equal(sound.PCM, file.Data) {
		t.Errorf("PCM = %v, want %v", sound.PCM, file.Data)
	}
}

func TestDecoder_ADPCM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		channels   int
		blockAlign int
	}{
		{"mono 256", 1, 256},
		{"stereo 512", 2, 512},
		{"stereo 2048", 2, 2048},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := audiotest.Sine(22050, tt.channels, 4000, 523.25, 10000)
			_, recon, file, err := audiotest.ADPCM(22050, tt.channels, tt.blockAlign, in)
			if err != nil {
				t.Fatalf("ADPCM() error = %v", err)
			}

			sound, err := Decoder{}.Decode(bytes.NewReader(file.Bytes()))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			if sound.Descriptor.BitsPerSample != 16 {
				t.Errorf("BitsPerSample = %d, want 16", sound.Descriptor.BitsPerSample)
			}
			if got := sound.Samples16(); !slices.Equal(got, recon) {
				t.Errorf("Samples16() differs from encoder reconstruction (%d vs %d samples)", len(got), len(recon))
			}
		})
	}
}

func TestReadStream_ADPCMFields(t *testing.T) {
	t.Parallel()

	data, _, file, err := audiotest.ADPCM(11025, 1, 256, audiotest.Square(1, 1000, 20))
	if err != nil {
		t.Fatalf("ADPCM() error = %v", err)
	}

	st, err := ReadStream(bytes.NewReader(file.Bytes()))
	if err != nil {
		t.Fatalf("ReadStream() error = %v", err)
	}

	if st.Codec != audio.CodecMSADPCM || st.Channels != 1 || st.SampleRate != 11025 || st.BlockAlign != 256 {
		t.Errorf("ReadStream() = %+v", st)
	}
	if !bytes.Equal(st.Data, data) {
		t.Error("ReadStream() payload differs from encoded data")
	}
}

func TestReadStream_Loop(t *testing.T) {
	t.Parallel()

	file := pcmFile(8000, 1, make([]int16, 400))
	file.Loop = &audiotest.Loop{Start: 100, End: 299}

	sound, err := Decoder{}.Decode(bytes.NewReader(file.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if sound.LoopStart != 100 || sound.LoopLength != 200 {
		t.Errorf("loop = %d+%d, want 100+200", sound.LoopStart, sound.LoopLength)
	}
}

func TestReadStream_TrailingSmpl(t *testing.T) {
	t.Parallel()

	// smpl after data, as some editors write it
	loopFile := pcmFile(8000, 1, make([]int16, 4))
	loopFile.Loop = &audiotest.Loop{Start: 1, End: 2}
	withLoop := loopFile.Bytes()

	// move the 68-byte smpl chunk (8 header + 60 body) behind data
	fmtEnd := 12 + 8 + 16
	smpl := slices.Clone(withLoop[fmtEnd : fmtEnd+68])
	reordered := slices.Concat(withLoop[:fmtEnd], withLoop[fmtEnd+68:], smpl)

	st, err := ReadStream(bytes.NewReader(reordered))
	if err != nil {
		t.Fatalf("ReadStream() error = %v", err)
	}
	if st.LoopStart != 1 || st.LoopLength != 2 {
		t.Errorf("loop = %d+%d, want 1+2", st.LoopStart, st.LoopLength)
	}
}

func TestDecoder_WithUnknownChunks(t *testing.T) {
	t.Parallel()

	samples := []int16{1, 2, 3, 4}
	file := pcmFile(16000, 1, samples)
	file.Before = []audiotest.Chunk{
		{ID: "LIST", Data: []byte("INFOISFT\x06\x00\x00\x00sfxpcm")},
		{ID: "fact", Data: []byte{4, 0, 0, 0}},
	}

	sound, err := Decoder{}.Decode(bytes.NewReader(file.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := sound.Samples16(); !slices.Equal(got, samples) {
		t.Errorf("Samples16() = %v, want %v", got, samples)
	}
}

func TestDecoder_OddSizedChunkPadding(t *testing.T) {
	t.Parallel()

	samples := []int16{7, -7}
	file := pcmFile(8000, 1, samples)
	file.Before = []audiotest.Chunk{{ID: "junk", Data: []byte{1, 2, 3}}}

	sound, err := Decoder{}.Decode(bytes.NewReader(file.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := sound.Samples16(); !slices.Equal(got, samples) {
		t.Errorf("Samples16() = %v, want %v", got, samples)
	}
}

func TestDecoder_Extensible(t *testing.T) {
	t.Parallel()

	extra := make([]byte, 22)
	extra[0] = 16  // valid bits
	extra[2] = 0x4 // channel mask
	extra[6] = 1   // PCM sub-format

	file := pcmFile(48000, 1, []int16{5, 6})
	file.Format = formatExtensible
	file.Extra = extra

	sound, err := Decoder{}.Decode(bytes.NewReader(file.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if sound.Format != audio.FormatMono16 {
		t.Errorf("Format = %v, want mono16", sound.Format)
	}
}

func TestDecoder_Errors(t *testing.T) {
	t.Parallel()

	adpcmSingle := func(mut func(w *audiotest.WAV)) []byte {
		_, _, w, err := audiotest.ADPCM(8000, 1, 64, audiotest.Sine(8000, 1, 200, 300, 4000))
		if err != nil {
			t.Fatalf("ADPCM() error = %v", err)
		}
		mut(&w)
		return w.Bytes()
	}

	coefs := adpcm.Coefficients()
	coefs[3] = [2]int16{100, 100}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not riff", []byte("This is not a WAV file"), ErrNotWavFile},
		{"not wave", append([]byte("RIFF\x04\x00\x00\x00AVI "), make([]byte, 8)...), ErrNotWavFile},
		{"no fmt", audiotest.WAV{OmitFmt: true, Data: []byte{1, 2}}.Bytes(), ErrUnsupportedWavLayout},
		{"no data", audiotest.WAV{Format: 1, Channels: 1, SampleRate: 8000, BitsPerSample: 16, OmitData: true}.Bytes(), ErrUnsupportedWavChunks},
		{"ima adpcm", audiotest.WAV{Format: 0x11, Channels: 1, SampleRate: 8000, BlockAlign: 256, BitsPerSample: 4, Data: make([]byte, 256)}.Bytes(), audio.ErrUnsupportedFormat},
		{"24-bit pcm", audiotest.WAV{Format: 1, Channels: 1, SampleRate: 8000, BitsPerSample: 24, Data: make([]byte, 6)}.Bytes(), audio.ErrUnsupportedFormat},
		{"6 channels", audiotest.WAV{Format: 1, Channels: 6, SampleRate: 8000, BitsPerSample: 16, Data: make([]byte, 12)}.Bytes(), audio.ErrUnsupportedFormat},
		{"zero rate", audiotest.WAV{Format: 1, Channels: 1, SampleRate: 0, BitsPerSample: 16, Data: make([]byte, 2)}.Bytes(), audio.ErrInvalidFormatParameters},
		{"adpcm truncated", adpcmSingle(func(w *audiotest.WAV) { w.Data = w.Data[:len(w.Data)-1] }), audio.ErrMalformedStream},
		{"adpcm bad predictor", adpcmSingle(func(w *audiotest.WAV) { w.Data[0] = 7 }), audio.ErrMalformedStream},
		{"adpcm wrong samples per block", adpcmSingle(func(w *audiotest.WAV) { w.Extra[0]++ }), audio.ErrMalformedStream},
		{"adpcm custom coefficients", adpcmSingle(func(w *audiotest.WAV) { w.Extra = audiotest.ADPCMExtra(116, coefs) }), audio.ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sound, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
			if sound != nil {
				t.Error("Decode() returned a sound with an error")
			}
		})
	}
}

func TestDecoder_TruncatedHeader(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("RIFF")))
	if err == nil {
		t.Error("Decode() error = nil for truncated header")
	}
}

func TestDecoder_ShortDataChunk(t *testing.T) {
	t.Parallel()

	// the data header claims more than the file holds
	file := pcmFile(8000, 1, []int16{1, 2, 3, 4})
	raw := file.Bytes()
	raw = raw[:len(raw)-2]

	sound, err := Decoder{}.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := sound.Samples16(); !slices.Equal(got, []int16{1, 2, 3}) {
		t.Errorf("Samples16() = %v, want [1 2 3]", got)
	}
}

func TestDecoder_VariousSampleRates(t *testing.T) {
	t.Parallel()

	for _, rate := range []int{8000, 11025, 22050, 44100, 48000} {
		file := pcmFile(rate, 1, make([]int16, rate))

		sound, err := Decoder{}.Decode(bytes.NewReader(file.Bytes()))
		if err != nil {
			t.Fatalf("Decode(%d Hz) error = %v", rate, err)
		}
		if sound.Seconds() != 1.0 {
			t.Errorf("%d Hz: Seconds() = %v, want 1", rate, sound.Seconds())
		}
	}
}

func BenchmarkDecoder_DecodePCM(b *testing.B) {
	data := pcmFile(44100, 2, audiotest.Sine(44100, 2, 44100, 440, 12000)).Bytes()

	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecoder_DecodeADPCM(b *testing.B) {
	_, _, file, err := audiotest.ADPCM(22050, 2, 2048, audiotest.Sine(22050, 2, 22050, 440, 12000))
	if err != nil {
		b.Fatal(err)
	}
	data := file.Bytes()

	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}
