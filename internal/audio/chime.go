package audio

import (
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
)

// Chime is an endless beep.Streamer that plays a short decaying sine tone
// each time it is struck and silence in between. The speaker pulls samples
// from its own goroutine while the game loop strikes, so state is behind mu.
type Chime struct {
	SampleRate beep.SampleRate
	Frequency  float64
	Volume     float64

	length int
	pos    int
	mu     sync.Mutex
}

func NewChime(sr beep.SampleRate, freq float64, d time.Duration) *Chime {
	n := sr.N(d)
	return &Chime{
		SampleRate: sr,
		Frequency:  freq,
		Volume:     0.3,
		length:     n,
		pos:        n,
	}
}

// Strike restarts the tone from its attack.
func (c *Chime) Strike() {
	c.mu.Lock()
	c.pos = 0
	c.mu.Unlock()
}

// Ringing reports whether the tone is still sounding.
func (c *Chime) Ringing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pos < c.length
}

func (c *Chime) Stream(samples [][2]float64) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sr := float64(c.SampleRate)
	for i := range samples {
		if c.pos >= c.length {
			samples[i] = [2]float64{}
			continue
		}
		t := float64(c.pos) / sr
		env := math.Exp(-6 * float64(c.pos) / float64(c.length))
		v := c.Volume * env * math.Sin(2*math.Pi*c.Frequency*t)
		samples[i] = [2]float64{v, v}
		c.pos++
	}
	return len(samples), true
}

func (c *Chime) Err() error { return nil }
