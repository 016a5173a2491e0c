// Package chime plays short tones when the camera enters a zone or
// teleports. Audio is optional: without an output device every call is a
// no-op.
package chime

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/Versifine/galleria/internal/event"
	"github.com/Versifine/galleria/internal/zone"
)

const (
	sampleRate = beep.SampleRate(44100)

	baseFrequency     = 440.0
	teleportFrequency = 330.0
	enterDuration     = 220 * time.Millisecond
	teleportDuration  = 140 * time.Millisecond
)

// pentatonic steps in semitones above the base frequency.
var pentatonic = []int{0, 2, 4, 7, 9}

type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Init opens the speaker. Calling it again after success is a no-op.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Play queues a tone. It reports false when no speaker is open.
func (p *Player) Play(freq float64, d time.Duration) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return false
	}
	speaker.Lock()
	p.mixer.Add(NewTone(sampleRate, freq, d))
	speaker.Unlock()
	return true
}

// Attach subscribes the player to hover and teleport events. Each zone gets
// its own pitch from its registration order.
func (p *Player) Attach(bus *event.Bus, reg *zone.Registry) {
	pitch := make(map[string]float64, reg.Len())
	for i, z := range reg.Zones() {
		pitch[z.ID] = ZoneFrequency(i)
	}

	bus.Subscribe(event.EventHoverChanged, func(raw any) {
		evt, ok := raw.(event.HoverChangedEvent)
		if !ok || evt.Current == "" {
			return
		}
		p.Play(pitch[evt.Current], enterDuration)
	})
	bus.Subscribe(event.EventTeleported, func(raw any) {
		if _, ok := raw.(event.TeleportedEvent); !ok {
			return
		}
		p.Play(teleportFrequency, teleportDuration)
	})
	slog.Debug("Chime attached", "zones", reg.Len())
}

// ZoneFrequency walks the pentatonic scale upward, one step per zone,
// wrapping into the next octave.
func ZoneFrequency(index int) float64 {
	if index < 0 {
		index = 0
	}
	octave := index / len(pentatonic)
	semitones := pentatonic[index%len(pentatonic)] + 12*octave
	return baseFrequency * math.Pow(2, float64(semitones)/12)
}

// Tone is a finite sine with a short attack and an exponential decay.
type Tone struct {
	sr    beep.SampleRate
	freq  float64
	pos   int
	total int
}

func NewTone(sr beep.SampleRate, freq float64, d time.Duration) *Tone {
	return &Tone{sr: sr, freq: freq, total: sr.N(d)}
}

func (g *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	attack := float64(g.sr.N(5 * time.Millisecond))
	for i := range samples {
		if g.pos >= g.total {
			break
		}
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Min(float64(g.pos)/attack, 1) * math.Exp(-t*12)
		sample := 0.2 * envelope * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
		n++
	}
	return n, true
}

func (g *Tone) Err() error {
	return nil
}
