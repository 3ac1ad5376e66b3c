// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"fmt"
	"sync"

	"github.com/ik5/sfxpcm/audio"
)

// Binding is one buffer handed to a Memory backend.
type Binding struct {
	PCM    []byte
	Format audio.Format
	Size   int
	Rate   int
}

// Memory is a backend that keeps bound buffers instead of playing them.
// It is used for dry runs and in tests.
type Memory struct {
	mu       sync.Mutex
	bindings []Binding
}

func (m *Memory) BindDataBuffer(pcm []byte, format audio.Format, size, rate int) error {
	if size != len(pcm) {
		return fmt.Errorf("size %d for a %d byte buffer: %w", size, len(pcm), audio.ErrMalformedStream)
	}
	if format == audio.FormatUnknown {
		return fmt.Errorf("%s: %w", format, audio.ErrUnsupportedFormat)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.bindings = append(m.bindings, Binding{PCM: pcm, Format: format, Size: size, Rate: rate})
	return nil
}

// Bindings returns what has been bound so far, oldest first.
func (m *Memory) Bindings() []Binding {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Binding, len(m.bindings))
	copy(out, m.bindings)
	return out
}
