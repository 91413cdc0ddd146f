// Package audio plays the arena's sound effects. Every sound is synthesised
// at runtime with beep, so the game ships without audio assets.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Sound identifies a sound effect.
type Sound int

const (
	SoundPluck Sound = iota // Enemy bounced off an edge
	SoundChime              // Star collected
	SoundHit                // Player hit
)

// String returns a human-readable name for the sound.
func (s Sound) String() string {
	switch s {
	case SoundPluck:
		return "pluck"
	case SoundChime:
		return "chime"
	case SoundHit:
		return "hit"
	default:
		return "unknown"
	}
}

// Pluck variants, picked at random per bounce.
var pluckFrequencies = []float64{392.00, 523.25} // G4, C5

const (
	pluckDuration = 250 * time.Millisecond
	chimeNote     = 90 * time.Millisecond
	hitDuration   = 300 * time.Millisecond
)

// pluck is a Karplus-Strong plucked string: a burst of noise circulating
// through a delay line with an averaging low-pass filter.
type pluck struct {
	buf      []float64
	pos      int
	decay    float64
	position int
	total    int
}

// NewPluck creates a plucked-string streamer at the given frequency.
func NewPluck(rng *rand.Rand, freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	period := max(int(float64(rate)/freq), 2)
	buf := make([]float64, period)
	for i := range buf {
		buf[i] = rng.Float64()*2 - 1
	}
	return &pluck{
		buf:   buf,
		decay: 0.996,
		total: rate.N(duration),
	}
}

func (p *pluck) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if p.position >= p.total {
			return i, i > 0
		}
		next := (p.pos + 1) % len(p.buf)
		val := p.buf[p.pos]
		p.buf[p.pos] = p.decay * 0.5 * (p.buf[p.pos] + p.buf[next])
		p.pos = next
		p.position++

		samples[i][0] = val
		samples[i][1] = val
	}
	return len(samples), true
}

func (p *pluck) Err() error { return nil }

// tone is a sine oscillator with a linear fade-out over its whole length.
type tone struct {
	freq     float64
	phase    float64
	rate     beep.SampleRate
	position int
	total    int
	saw      bool
}

// NewTone creates a fading tone. With saw set it produces a harsher
// sawtooth instead of a sine.
func NewTone(freq float64, duration time.Duration, saw bool, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, rate: rate, total: rate.N(duration), saw: saw}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, i > 0
		}
		var val float64
		if t.saw {
			val = 2.0 * (t.phase - 0.5)
		} else {
			val = math.Sin(2 * math.Pi * t.phase)
		}
		val *= 1 - float64(t.position)/float64(t.total)

		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// withVolume scales a streamer linearly. Zero or negative volume is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Build returns a fresh streamer for a sound effect, or nil for an
// unknown sound.
func Build(sound Sound, rng *rand.Rand, volume float64, rate beep.SampleRate) beep.Streamer {
	var s beep.Streamer
	switch sound {
	case SoundPluck:
		freq := pluckFrequencies[rng.Intn(len(pluckFrequencies))]
		s = NewPluck(rng, freq, pluckDuration, rate)
	case SoundChime:
		s = beep.Seq(
			NewTone(987.77, chimeNote, false, rate),    // B5
			NewTone(1318.51, chimeNote*2, false, rate), // E6
		)
	case SoundHit:
		s = NewTone(110, hitDuration, true, rate)
	default:
		return nil
	}
	return withVolume(s, volume)
}
