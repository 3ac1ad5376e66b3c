// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/sfxpcm/audio"
)

var (
	ErrDeviceMismatch = errors.New("device already opened with a different layout")
	ErrClosed         = errors.New("playback device closed")
)

// pollInterval is how often Wait checks whether a buffer finished.
const pollInterval = 10 * time.Millisecond

// Oto plays bound buffers on the default audio device.
//
// The device is opened by the first BindDataBuffer call and keeps that
// sample rate and layout for the life of the process; the underlying
// library allows a single context per process.
type Oto struct {
	mu      sync.Mutex
	ctx     *oto.Context
	layout  deviceLayout
	players []*oto.Player
	volume  float64
	closed  bool
	logger  *slog.Logger
}

type deviceLayout struct {
	rate     int
	channels int
	format   oto.Format
}

// NewOto returns a backend that opens the device lazily. volume is clamped
// to [0, 1].
func NewOto(volume float64, logger *slog.Logger) *Oto {
	if logger == nil {
		logger = slog.Default()
	}
	return &Oto{
		volume: clampVolume(volume),
		logger: logger.With("module", "playback"),
	}
}

// otoLayout maps a buffer layout to device options.
func otoLayout(format audio.Format, rate int) (deviceLayout, error) {
	if rate <= 0 {
		return deviceLayout{}, fmt.Errorf("rate %d: %w", rate, audio.ErrInvalidFormatParameters)
	}

	l := deviceLayout{rate: rate, channels: format.Channels()}
	switch format {
	case audio.FormatMono8, audio.FormatStereo8:
		l.format = oto.FormatUnsignedInt8
	case audio.FormatMono16, audio.FormatStereo16:
		l.format = oto.FormatSignedInt16LE
	default:
		return deviceLayout{}, fmt.Errorf("%s: %w", format, audio.ErrUnsupportedFormat)
	}
	return l, nil
}

func clampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// BindDataBuffer starts playing pcm. The buffer must not be modified
// afterwards.
func (o *Oto) BindDataBuffer(pcm []byte, format audio.Format, size, rate int) error {
	if size != len(pcm) {
		return fmt.Errorf("size %d for a %d byte buffer: %w", size, len(pcm), audio.ErrMalformedStream)
	}

	layout, err := otoLayout(format, rate)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrClosed
	}

	if o.ctx == nil {
		if err := o.open(layout); err != nil {
			return err
		}
	} else if o.layout != layout {
		return fmt.Errorf("%s at %d Hz: %w", format, rate, ErrDeviceMismatch)
	}

	player := o.ctx.NewPlayer(bytes.NewReader(pcm))
	player.SetVolume(o.volume)
	player.Play()
	o.players = append(o.players, player)

	o.logger.Debug("buffer bound",
		"format", format.String(),
		"bytes", size,
		"rate", rate)

	return nil
}

func (o *Oto) open(layout deviceLayout) error {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   layout.rate,
		ChannelCount: layout.channels,
		Format:       layout.format,
	})
	if err != nil {
		return fmt.Errorf("failed to open audio device: %w", err)
	}
	<-ready

	o.ctx = ctx
	o.layout = layout

	o.logger.Info("audio device opened",
		"rate", layout.rate,
		"channels", layout.channels)

	return nil
}

// Wait blocks until every bound buffer has finished playing or ctx is done.
func (o *Oto) Wait(ctx context.Context) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if !o.playing() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (o *Oto) playing() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, p := range o.players {
		if p.IsPlaying() {
			return true
		}
	}
	return false
}

// Close stops every player and suspends the device.
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil
	}
	o.closed = true

	var errs []error
	for _, p := range o.players {
		errs = append(errs, p.Close())
	}
	o.players = nil

	if o.ctx != nil {
		errs = append(errs, o.ctx.Suspend())
	}

	return errors.Join(errs...)
}
