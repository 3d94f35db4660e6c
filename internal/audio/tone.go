// Package audio plays the tone that is emitted when the sound timer expires.
package audio

import (
	"encoding/binary"
	"math"
	"sync"
	"time"
)

const (
	// SampleRate of the generated audio in Hz.
	SampleRate = 44100
	// DefaultFrequency of the tone in Hz.
	DefaultFrequency = 440
	// BeepDuration is the length of a single tone.
	BeepDuration = 100 * time.Millisecond

	amplitude     = 0.25
	bytesPerFrame = 4 // mono float32
)

// Tone is an endless stream of mono float32 little endian samples that is
// silent unless a beep is playing.
type Tone struct {
	mu        sync.Mutex
	period    int // samples per square wave period
	position  int // sample position within the period
	remaining int // samples left of the current beep
}

// NewTone returns a tone generator for the given frequency in Hz.
func NewTone(frequency int) *Tone {
	if frequency <= 0 {
		frequency = DefaultFrequency
	}
	return &Tone{
		period: max(2, SampleRate/frequency),
	}
}

// Beep starts a beep. A beep that is already playing is restarted.
func (t *Tone) Beep() {
	t.mu.Lock()
	t.remaining = int(BeepDuration * SampleRate / time.Second)
	t.mu.Unlock()
}

// Playing returns whether a beep is playing.
func (t *Tone) Playing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining > 0
}

// Read fills p with samples. It never returns an error.
func (t *Tone) Read(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	frames := len(p) / bytesPerFrame
	for i := range frames {
		var sample float32
		if t.remaining > 0 {
			sample = amplitude
			if t.position >= t.period/2 {
				sample = -amplitude
			}
			t.position = (t.position + 1) % t.period
			t.remaining--
		}
		binary.LittleEndian.PutUint32(p[i*bytesPerFrame:], math.Float32bits(sample))
	}
	return frames * bytesPerFrame, nil
}
