// internal/audio/cues.go
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

const sampleRate = beep.SampleRate(44100)

// Cue is one of the procedural sounds of a match.
type Cue int

const (
	CueThrow Cue = iota
	CueHit
	CueCountdown
	CueFight
	CueVictory
	CueDefeat
)

func (c Cue) String() string {
	switch c {
	case CueThrow:
		return "throw"
	case CueHit:
		return "hit"
	case CueCountdown:
		return "countdown"
	case CueFight:
		return "fight"
	case CueVictory:
		return "victory"
	case CueDefeat:
		return "defeat"
	}
	return "unknown"
}

// noise is white noise from a fixed LCG so cues sound the same every run.
type noise struct {
	state uint32
	left  int
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	if n.left <= 0 {
		return 0, false
	}
	count := len(samples)
	if count > n.left {
		count = n.left
	}
	for i := 0; i < count; i++ {
		n.state = n.state*1664525 + 1013904223
		v := float64(n.state)/float64(math.MaxUint32)*2 - 1
		samples[i][0], samples[i][1] = v, v
	}
	n.left -= count
	return count, true
}

func (n *noise) Err() error { return nil }

// fade scales a stream linearly from 1 to 0 over its length.
type fade struct {
	s     beep.Streamer
	pos   int
	total int
}

func (f *fade) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.s.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1 - float64(f.pos)/float64(f.total)
		if vol < 0 {
			vol = 0
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.s.Err() }

func tone(freq float64, d time.Duration) beep.Streamer {
	n := sampleRate.N(d)
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return beep.Silence(n)
	}
	return &fade{s: beep.Take(n, sine), total: n}
}

func square(freq float64, d time.Duration) beep.Streamer {
	n := sampleRate.N(d)
	sq, err := generators.SquareTone(sampleRate, freq)
	if err != nil {
		return beep.Silence(n)
	}
	return &fade{s: beep.Take(n, sq), total: n}
}

func volume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Build returns a fresh streamer for c at the given linear volume.
func Build(c Cue, vol float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueThrow:
		n := sampleRate.N(120 * time.Millisecond)
		s = &fade{s: &noise{state: 7, left: n}, total: n}
		vol *= 0.4
	case CueHit:
		s = beep.Mix(square(90, 150*time.Millisecond), volume(tone(180, 150*time.Millisecond), 0.5))
	case CueCountdown:
		s = tone(660, 90*time.Millisecond)
	case CueFight:
		s = tone(990, 250*time.Millisecond)
	case CueVictory:
		s = beep.Seq(tone(523.25, 120*time.Millisecond), tone(659.25, 120*time.Millisecond), tone(783.99, 240*time.Millisecond))
	case CueDefeat:
		s = beep.Seq(tone(392, 160*time.Millisecond), tone(311.13, 160*time.Millisecond), tone(261.63, 320*time.Millisecond))
	default:
		return nil
	}
	return volume(s, vol)
}
