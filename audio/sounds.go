package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Sound timings.
const (
	launchDuration = 700 * time.Millisecond
	launchAttack   = 40 * time.Millisecond
	launchRelease  = 300 * time.Millisecond

	burstDuration = 900 * time.Millisecond
	burstAttack   = 5 * time.Millisecond
	burstRelease  = 800 * time.Millisecond

	// Whistle sweep range in Hz.
	whistleLow  = 900.0
	whistleHigh = 2400.0
	// Boom body frequency in Hz, under the noise crackle.
	boomFreq = 55.0
)

// sweep is a sine oscillator whose frequency moves linearly from `from` to
// `to` over its duration.
type sweep struct {
	from, to float64
	phase    float64
	position int
	duration int
	rate     beep.SampleRate
}

// newSweep creates a rising or falling sine tone.
func newSweep(from, to float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{from: from, to: to, duration: rate.N(duration), rate: rate}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}
		t := float64(s.position) / float64(s.duration)
		freq := s.from + (s.to-s.from)*t
		val := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// noise is white noise low-passed by a one-pole filter. Lower smoothing
// values give a darker rumble.
type noise struct {
	position  int
	duration  int
	smoothing float64
	last      float64
}

func newNoise(duration time.Duration, smoothing float64, rate beep.SampleRate) beep.Streamer {
	return &noise{duration: rate.N(duration), smoothing: smoothing}
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if n.position >= n.duration {
			return i, i > 0
		}
		n.last += (rand.Float64()*2 - 1 - n.last) * n.smoothing
		samples[i][0] = n.last
		samples[i][1] = n.last
		n.position++
	}
	return len(samples), true
}

func (n *noise) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. math.Log2(0) is -Inf, so zero volume
// is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// pan places a stream between left (-1) and right (1).
func pan(s beep.Streamer, p float64) beep.Streamer {
	return &effects.Pan{Streamer: s, Pan: math.Max(-1, math.Min(1, p))}
}

// LaunchSound is a short rising whistle.
func LaunchSound(rate beep.SampleRate, vol float64) beep.Streamer {
	tone := newSweep(whistleLow, whistleHigh, launchDuration, rate)
	shaped := newEnvelope(tone, launchDuration, launchAttack, launchRelease, rate)
	return newVolume(shaped, vol*0.25)
}

// BurstSound is a boom with a noise crackle. intensity in [0, 1] scales the
// loudness, typically the burst size relative to the largest burst.
func BurstSound(rate beep.SampleRate, vol, intensity float64) beep.Streamer {
	crackle := newEnvelope(newNoise(burstDuration, 0.6, rate), burstDuration, burstAttack, burstRelease, rate)
	body := newEnvelope(newSweep(boomFreq*2, boomFreq, burstDuration, rate), burstDuration, burstAttack, burstRelease, rate)
	mixed := beep.Mix(
		newVolume(crackle, 0.6),
		newVolume(body, 0.4),
	)
	gain := vol * (0.5 + 0.5*math.Max(0, math.Min(1, intensity)))
	return beep.Take(rate.N(burstDuration), newVolume(mixed, gain))
}
