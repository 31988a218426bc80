// Package audio plays firework sounds through the system speaker. A Player
// is registered as an event sink on a yule.Scene and turns launches into
// whistles and detonations into booms, panned by horizontal position.
package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/phanxgames/yule"
)

// Options configures a Player.
type Options struct {
	SampleRate beep.SampleRate
	// Volume is the master gain in [0, 1].
	Volume float64
	// MaxVoices caps simultaneously playing sounds; extra events are dropped.
	MaxVoices int
	// LaunchWhistle enables the rising launch sound.
	LaunchWhistle bool
}

// DefaultOptions returns 44.1 kHz, half volume and sixteen voices.
func DefaultOptions() Options {
	return Options{
		SampleRate:    beep.SampleRate(44100),
		Volume:        0.5,
		MaxVoices:     16,
		LaunchWhistle: true,
	}
}

// burstReference is the spark count played at full intensity.
const burstReference = 1200

// Player turns firework events into sounds. It implements yule.EventSink.
type Player struct {
	opts    Options
	mixer   *beep.Mixer
	dropped uint64
}

// New initializes the speaker and starts an always-on mixer. The speaker is
// process-wide; create at most one Player.
func New(opts Options) (*Player, error) {
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultOptions().SampleRate
	}
	if err := speaker.Init(opts.SampleRate, opts.SampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("audio: speaker init: %w", err)
	}
	p := &Player{opts: opts, mixer: &beep.Mixer{}}
	speaker.Play(p.mixer)
	return p, nil
}

// EmitEvent implements yule.EventSink.
func (p *Player) EmitEvent(e yule.FireworkEvent) {
	s := Sound(e, p.opts)
	if s == nil {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	if p.opts.MaxVoices > 0 && p.mixer.Len() >= p.opts.MaxVoices {
		p.dropped++
		return
	}
	p.mixer.Add(s)
}

// Dropped returns how many events were skipped because every voice was busy.
func (p *Player) Dropped() uint64 {
	speaker.Lock()
	defer speaker.Unlock()
	return p.dropped
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// Sound builds the streamer for an event, or nil when the event is silent.
func Sound(e yule.FireworkEvent, opts Options) beep.Streamer {
	var s beep.Streamer
	switch e.Type {
	case yule.EventLaunch:
		if !opts.LaunchWhistle {
			return nil
		}
		s = LaunchSound(opts.SampleRate, opts.Volume)
	case yule.EventDetonate:
		s = BurstSound(opts.SampleRate, opts.Volume, float64(e.Sparks)/burstReference)
	default:
		return nil
	}
	return pan(s, panFor(e.X, e.Width))
}

// panFor maps x across a surface of the given width to [-1, 1].
func panFor(x, width float64) float64 {
	if width <= 0 {
		return 0
	}
	return (x/width)*2 - 1
}
