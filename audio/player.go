package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/ninja-engine/engine"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a short synthesized tone, optionally sweeping to a second frequency
type Cue struct {
	Freq     float64
	EndFreq  float64 // 0 = constant pitch
	Duration time.Duration
}

// Stock cues used by sample content
var (
	CueJump = Cue{Freq: 440, EndFreq: 880, Duration: 90 * time.Millisecond}
	CueLand = Cue{Freq: 110, Duration: 40 * time.Millisecond}
	CueBlip = Cue{Freq: 880, Duration: 50 * time.Millisecond}
)

// Player mixes cues into the speaker
// Every method is safe to call when audio is disabled or the device failed to open
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	log         engine.Logger
}

// NewPlayer creates a player at volume in [0, 1]
func NewPlayer(volume float64, log engine.Logger) *Player {
	if log == nil {
		log = engine.NopLogger{}
	}
	return &Player{
		mixer:  &beep.Mixer{},
		volume: clampVolume(volume),
		log:    log,
	}
}

// Initialize opens the speaker, a second call is a no-op
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio init: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	p.log.Debug("audio initialized", "sample_rate", int(sampleRate))
	return nil
}

// Enabled reports whether cues reach the speaker
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// SetVolume changes the volume of cues played from now on
func (p *Player) SetVolume(volume float64) {
	p.mu.Lock()
	p.volume = clampVolume(volume)
	p.mu.Unlock()
}

// Volume returns the current volume
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Play queues cue on the mixer
func (p *Player) Play(cue Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s, err := cueStreamer(cue, p.volume)
	if err != nil {
		p.log.Warn("audio cue rejected", "freq", cue.Freq, "error", err)
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close stops playback and releases the device, implements io.Closer
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return nil
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
	return nil
}

// cueStreamer builds the finite stream for cue
func cueStreamer(cue Cue, volume float64) (beep.Streamer, error) {
	n := sampleRate.N(cue.Duration)
	if n <= 0 {
		return nil, fmt.Errorf("cue duration %v too short", cue.Duration)
	}

	var tone beep.Streamer
	if cue.EndFreq > 0 && cue.EndFreq != cue.Freq {
		if cue.Freq <= 0 || cue.Freq >= float64(sampleRate)/2 || cue.EndFreq >= float64(sampleRate)/2 {
			return nil, fmt.Errorf("sweep %.0f→%.0f Hz out of range", cue.Freq, cue.EndFreq)
		}
		tone = newSweep(cue.Freq, cue.EndFreq, n)
	} else {
		sine, err := generators.SineTone(sampleRate, cue.Freq)
		if err != nil {
			return nil, err
		}
		tone = sine
	}

	return newVolume(beep.Take(n, tone), volume), nil
}

// newVolume wraps s with a linear volume; math.Log2(0) is -Inf so 0 is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func clampVolume(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, 1)
}

// sweep is a sine whose frequency moves linearly from start to end over n samples
type sweep struct {
	start, end float64
	n, pos     int
	phase      float64
}

func newSweep(start, end float64, n int) *sweep {
	return &sweep{start: start, end: end, n: n}
}

func (s *sweep) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		t := float64(s.pos) / float64(s.n)
		if t > 1 {
			t = 1
		}
		freq := s.start + (s.end-s.start)*t
		v := math.Sin(2 * math.Pi * s.phase)
		samples[i][0], samples[i][1] = v, v
		s.phase += freq / float64(sampleRate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }
