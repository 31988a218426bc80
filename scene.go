package yule

import (
	"time"
)

// EventSink is the interface for optional listeners such as audio or an ECS
// bridge. Registered sinks receive firework lifecycle events synchronously
// from Scene.Step.
type EventSink interface {
	EmitEvent(event FireworkEvent)
}

// EventFlusher is implemented by sinks that queue events. FlushEvents is
// called once at the end of every Step.
type EventFlusher interface {
	FlushEvents()
}

// EventType identifies a firework lifecycle event.
type EventType uint8

const (
	EventLaunch   EventType = iota // a rocket left the bottom edge
	EventDetonate                  // a rocket burst into sparks
)

func (t EventType) String() string {
	switch t {
	case EventLaunch:
		return "launch"
	case EventDetonate:
		return "detonate"
	}
	return "unknown"
}

// FireworkEvent carries event data for sinks. X and Y are logical pixels.
type FireworkEvent struct {
	Type EventType
	X, Y float64
	Hue  float64
	// Sparks is the burst size; zero for launches.
	Sparks int
	// Width and Height of the surface at the time of the event.
	Width, Height float64
	Frame         uint64
}

// State is the whole mutable simulation. A Scene owns exactly one and passes
// it explicitly to the spawner, integrator and renderer.
type State struct {
	// Width and Height are the logical surface size. Zero means no surface.
	Width, Height float64
	// Scale is the device pixel ratio.
	Scale float64

	PointerKnown       bool
	PointerX, PointerY float64

	Rotation float64

	Tree    []TreeParticle
	Rockets []Rocket
	Sparks  []Spark

	// Detonated holds the rockets that burst during the last Step so their
	// final trail segment is still drawn.
	Detonated []Rocket

	Frame uint64
}

// Ready reports whether a drawable surface exists.
func (st *State) Ready() bool {
	return st.Width > 0 && st.Height > 0
}

// Scene is the top-level object that owns the simulation state, the
// generators and the renderer.
type Scene struct {
	cfg   *Config
	rng   Rand
	state State

	spawner    *Spawner
	integrator *Integrator
	renderer   *Renderer
	intro      *Fade
	sinks      []EventSink

	elapsed time.Duration
	debug   bool
	stats   debugStats

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string

	testRunner *TestRunner
}

// NewScene creates a scene with no surface. Call Resize before the first
// Step. A nil rng uses DefaultRand.
func NewScene(cfg Config, rng Rand) *Scene {
	if rng == nil {
		rng = DefaultRand
	}
	s := &Scene{
		cfg:           &cfg,
		rng:           rng,
		ScreenshotDir: "screenshots",
	}
	s.spawner = NewSpawner(&s.cfg.Fireworks, rng)
	s.integrator = NewIntegrator(&s.cfg.Fireworks)
	s.renderer = NewRenderer(s.cfg)
	if cfg.Intro.Duration > 0 {
		s.intro = newIntro(s.renderer, cfg.Intro.Duration)
	}
	s.state.Scale = 1
	return s
}

// Config returns the live configuration. Changes take effect on the next
// Step or Draw; tree changes take effect on the next Resize.
func (s *Scene) Config() *Config {
	return s.cfg
}

// State returns the simulation state. Callers must not retain slices across
// frames.
func (s *Scene) State() *State {
	return &s.state
}

// Elapsed returns the simulated time since the scene started.
func (s *Scene) Elapsed() time.Duration {
	return s.elapsed
}

// Resize sets the logical surface size and device scale and regenerates the
// tree field. A zero or negative size leaves the scene without a surface.
func (s *Scene) Resize(width, height, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	s.state.Width, s.state.Height, s.state.Scale = width, height, scale
	if !s.state.Ready() {
		s.state.Tree = nil
		return
	}
	s.state.Tree = GenerateTree(width, height, s.cfg.Tree, s.rng)
}

// SetPointer records a pointer position in surface coordinates.
func (s *Scene) SetPointer(x, y float64) {
	s.state.PointerKnown = true
	s.state.PointerX, s.state.PointerY = x, y
}

// ClearPointer forgets the pointer; rotation falls back to auto-rotate.
func (s *Scene) ClearPointer() {
	s.state.PointerKnown = false
}

// AddEventSink registers a sink for firework events.
func (s *Scene) AddEventSink(sink EventSink) {
	s.sinks = append(s.sinks, sink)
}

// SetDebugMode enables or disables per-frame timing logs on stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Launch adds a rocket immediately, ignoring the launch chance and spark
// cap. It does nothing without a surface.
func (s *Scene) Launch() {
	if !s.state.Ready() {
		return
	}
	s.AddRocket(s.spawner.NewRocket(s.state.Width, s.state.Height))
}

// AddRocket adds r to the live rockets.
func (s *Scene) AddRocket(r Rocket) {
	s.state.Rockets = append(s.state.Rockets, r)
	s.emit(FireworkEvent{Type: EventLaunch, X: r.X, Y: r.Y, Hue: r.Hue})
}

// Step advances the simulation by one frame: maybe launch a rocket,
// integrate rockets (bursting those that arrived), integrate sparks
// including the ones just created, then update the rotation. dt is in
// seconds and only drives the intro fade and the twinkle clock; physics is
// per frame. Without a surface the frame is skipped.
func (s *Scene) Step(dt float64) {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if !s.state.Ready() {
		return
	}
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	st := &s.state
	clear(st.Detonated)
	st.Detonated = st.Detonated[:0]
	if r, ok := s.spawner.TryLaunch(st.Width, st.Height, len(st.Sparks)); ok {
		s.AddRocket(r)
	}
	st.Rockets = s.integrator.StepRockets(st.Rockets, s.detonate)
	st.Sparks = s.integrator.StepSparks(st.Sparks)
	s.rotate()

	if s.intro != nil {
		s.intro.Update(float32(dt))
		if s.intro.Done {
			s.intro = nil
		}
	}
	s.elapsed += time.Duration(dt * float64(time.Second))
	st.Frame++
	s.flushSinks()

	if s.debug {
		s.stats.stepTime = time.Since(t0)
	}
}

func (s *Scene) detonate(r *Rocket) {
	s.state.Detonated = append(s.state.Detonated, *r)
	before := len(s.state.Sparks)
	s.state.Sparks = s.spawner.Explode(s.state.Sparks, r)
	s.emit(FireworkEvent{
		Type:   EventDetonate,
		X:      r.X,
		Y:      r.Y,
		Hue:    r.Hue,
		Sparks: len(s.state.Sparks) - before,
	})
}

// rotate eases toward the pointer-derived target, or auto-rotates.
func (s *Scene) rotate() {
	st := &s.state
	cam := &s.cfg.Camera
	if st.PointerKnown {
		target := (st.PointerX - st.Width/2) * cam.PointerGain
		st.Rotation += (target - st.Rotation) * cam.Easing
		return
	}
	st.Rotation += cam.AutoRotate
}

// Draw renders the current state onto surf. Without a surface the frame is
// skipped.
func (s *Scene) Draw(surf Surface) {
	if !s.state.Ready() {
		return
	}
	s.renderer.Draw(surf, &s.state, s.elapsed)
	if s.debug {
		s.debugLog()
	}
}

func (s *Scene) flushSinks() {
	for _, sink := range s.sinks {
		if f, ok := sink.(EventFlusher); ok {
			f.FlushEvents()
		}
	}
}

func (s *Scene) emit(e FireworkEvent) {
	if len(s.sinks) == 0 {
		return
	}
	e.Width, e.Height = s.state.Width, s.state.Height
	e.Frame = s.state.Frame
	for _, sink := range s.sinks {
		sink.EmitEvent(e)
	}
}
