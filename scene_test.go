package yule

import (
	"math"
	"testing"
	"time"
)

const testDT = 1.0 / 60

// newQuietScene returns a sized scene that never launches on its own and
// has no intro fade.
func newQuietScene() *Scene {
	cfg := DefaultConfig()
	cfg.Fireworks.LaunchChance = 0
	cfg.Intro.Duration = 0
	s := NewScene(cfg, newTestRand())
	s.Resize(1000, 800, 1)
	return s
}

type recordingSink struct {
	events  []FireworkEvent
	flushes int
}

func (r *recordingSink) EmitEvent(e FireworkEvent) { r.events = append(r.events, e) }
func (r *recordingSink) FlushEvents()              { r.flushes++ }

type eventFunc func(FireworkEvent)

func (f eventFunc) EmitEvent(e FireworkEvent) { f(e) }

func TestSceneAutoRotate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fireworks.SparkCap = 0
	cfg.Intro.Duration = 0
	s := NewScene(cfg, newTestRand())
	s.Resize(1000, 800, 1)
	launched := 0
	s.AddEventSink(eventFunc(func(e FireworkEvent) {
		if e.Type == EventLaunch {
			launched++
		}
	}))
	prev := s.State().Rotation
	for i := 0; i < 1000; i++ {
		s.Step(testDT)
		if r := s.State().Rotation; r <= prev {
			t.Fatalf("frame %d: rotation %v not above %v", i, r, prev)
		}
		prev = s.State().Rotation
	}
	assertNear(t, "rotation", s.State().Rotation, 5.0)
	if s.State().Frame != 1000 {
		t.Errorf("Frame = %d, want 1000", s.State().Frame)
	}
	if launched == 0 {
		t.Error("no fireworks launched during the run")
	}
}

func TestSceneRocketLifecycle(t *testing.T) {
	s := newQuietScene()
	sink := &recordingSink{}
	s.AddEventSink(sink)
	s.AddRocket(Rocket{X: 500, Y: 820, PrevX: 500, PrevY: 820, TargetY: 400, Hue: 200, Speed: 20})

	for i := 0; i < 20; i++ {
		s.Step(testDT)
	}
	st := s.State()
	if len(st.Rockets) != 1 {
		t.Fatalf("rockets after 20 steps = %d, want 1", len(st.Rockets))
	}
	assertNear(t, "Y", st.Rockets[0].Y, 420)
	if len(st.Sparks) != 0 {
		t.Fatalf("sparks before detonation = %d", len(st.Sparks))
	}

	s.Step(testDT)
	if len(st.Rockets) != 0 {
		t.Fatalf("rocket survived reaching its target")
	}
	if n := len(st.Sparks); n < 800 || n > 1200 {
		t.Fatalf("sparks = %d, want [800, 1200]", n)
	}
	// The burst was integrated in the frame it was created.
	for i, sp := range st.Sparks {
		if sp.Alpha >= 1 {
			t.Fatalf("spark %d not stepped: alpha %v", i, sp.Alpha)
		}
		if sp.PrevX != 500 || sp.PrevY != 400 {
			t.Fatalf("spark %d prev (%v, %v), want burst origin", i, sp.PrevX, sp.PrevY)
		}
	}

	if len(sink.events) != 2 {
		t.Fatalf("events = %d, want 2", len(sink.events))
	}
	launch, burst := sink.events[0], sink.events[1]
	if launch.Type != EventLaunch || burst.Type != EventDetonate {
		t.Errorf("event types = %v, %v", launch.Type, burst.Type)
	}
	if burst.Sparks != len(st.Sparks) {
		t.Errorf("burst event sparks = %d, want %d", burst.Sparks, len(st.Sparks))
	}
	assertNear(t, "burst.X", burst.X, 500)
	assertNear(t, "burst.Y", burst.Y, 400)
	assertNear(t, "burst.Width", burst.Width, 1000)
	if burst.Frame != 20 {
		t.Errorf("burst frame = %d, want 20", burst.Frame)
	}
	if sink.flushes != 21 {
		t.Errorf("flushes = %d, want 21", sink.flushes)
	}
}

func TestSceneDrawsTrailOnDetonationFrame(t *testing.T) {
	s := newQuietScene()
	s.AddRocket(Rocket{X: 500, Y: 420, PrevX: 500, PrevY: 440, TargetY: 410, Hue: 200, Speed: 20})
	s.Step(testDT)
	if n := len(s.State().Rockets); n != 0 {
		t.Fatalf("rockets = %d, want 0", n)
	}

	var rec Recorder
	s.Draw(&rec)
	var trails []Command
	for _, c := range rec.Filter(CommandLine) {
		if c.Cap == CapButt {
			trails = append(trails, c)
		}
	}
	if len(trails) != 1 {
		t.Fatalf("trails = %d, want 1", len(trails))
	}
	assertNear(t, "Y0", trails[0].Y0, 420)
	assertNear(t, "Y1", trails[0].Y1, 400)

	s.Step(testDT)
	if n := len(s.State().Detonated); n != 0 {
		t.Errorf("detonated = %d after the next step, want 0", n)
	}
}

func TestSceneSparksEventuallyDie(t *testing.T) {
	s := newQuietScene()
	s.AddRocket(Rocket{X: 500, Y: 300, TargetY: 400, Speed: 1})
	s.Step(testDT)
	if len(s.State().Sparks) == 0 {
		t.Fatal("no burst")
	}
	// The slowest decay is 0.005 per frame.
	for i := 0; i < 200; i++ {
		s.Step(testDT)
	}
	if n := len(s.State().Sparks); n != 0 {
		t.Errorf("sparks after 201 frames = %d, want 0", n)
	}
}

func TestScenePointerEasing(t *testing.T) {
	s := newQuietScene()
	// (1000 - 500) * 0.002 = 1.0
	s.SetPointer(1000, 300)
	s.Step(testDT)
	assertNear(t, "first step", s.State().Rotation, 0.05)
	for i := 0; i < 500; i++ {
		s.Step(testDT)
	}
	if r := s.State().Rotation; math.Abs(r-1) > 1e-6 {
		t.Errorf("rotation = %v, want converged to 1", r)
	}

	s.ClearPointer()
	before := s.State().Rotation
	s.Step(testDT)
	assertNear(t, "auto after leave", s.State().Rotation, before+0.005)
}

func TestScenePointerAtCenterHoldsStill(t *testing.T) {
	s := newQuietScene()
	s.SetPointer(500, 100)
	for i := 0; i < 10; i++ {
		s.Step(testDT)
	}
	assertNear(t, "rotation", s.State().Rotation, 0)
}

func TestSceneWithoutSurface(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fireworks.LaunchChance = 1
	s := NewScene(cfg, newTestRand())
	s.Step(testDT)
	s.Launch()
	st := s.State()
	if st.Frame != 0 || st.Rotation != 0 || len(st.Rockets) != 0 {
		t.Errorf("scene advanced without a surface: %+v", st)
	}
	var rec Recorder
	s.Draw(&rec)
	if len(rec.Commands) != 0 {
		t.Errorf("drew %d commands without a surface", len(rec.Commands))
	}

	s.Resize(1000, 800, 2)
	s.Resize(0, 800, 2)
	if st.Ready() || st.Tree != nil {
		t.Error("zero width should drop the surface and tree")
	}
}

func TestSceneResize(t *testing.T) {
	s := newQuietScene()
	st := s.State()
	if len(st.Tree) != DefaultConfig().Tree.ParticleCount+1 {
		t.Fatalf("tree = %d particles", len(st.Tree))
	}
	s.Resize(400, 300, 0)
	assertNear(t, "scale", st.Scale, 1)
	star := st.Tree[len(st.Tree)-1]
	// min(0.7*300, 600) = 210
	assertNear(t, "star.BaseY", star.BaseY, -210/2.0-15)
}

func TestSceneSparkCapBlocksLaunch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fireworks.LaunchChance = 1
	cfg.Fireworks.SparkCap = 10
	s := NewScene(cfg, newTestRand())
	s.Resize(1000, 800, 1)
	s.State().Sparks = make([]Spark, 10)
	for i := range s.State().Sparks {
		s.State().Sparks[i] = Spark{Alpha: 1, Decay: 0.001}
	}
	s.Step(testDT)
	if n := len(s.State().Rockets); n != 0 {
		t.Errorf("rockets = %d, want launch blocked at the cap", n)
	}
	s.State().Sparks = s.State().Sparks[:9]
	s.Step(testDT)
	if n := len(s.State().Rockets); n != 1 {
		t.Errorf("rockets = %d, want 1 below the cap", n)
	}
}

func TestSceneLaunch(t *testing.T) {
	s := newQuietScene()
	s.Launch()
	rs := s.State().Rockets
	if len(rs) != 1 {
		t.Fatalf("rockets = %d, want 1", len(rs))
	}
	assertNear(t, "Y", rs[0].Y, 820)
}

func TestSceneIntroFade(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fireworks.LaunchChance = 0
	cfg.Intro.Duration = 0.5
	s := NewScene(cfg, newTestRand())
	s.Resize(1000, 800, 1)
	if s.renderer.TreeAlpha != 0 {
		t.Fatalf("TreeAlpha = %v before the first frame, want 0", s.renderer.TreeAlpha)
	}
	s.Step(0.25)
	mid := s.renderer.TreeAlpha
	if mid <= 0 || mid >= 1 {
		t.Errorf("TreeAlpha halfway = %v, want inside (0, 1)", mid)
	}
	s.Step(0.5)
	if s.renderer.TreeAlpha != 1 || s.intro != nil {
		t.Errorf("TreeAlpha = %v after the fade, want 1", s.renderer.TreeAlpha)
	}
}

func TestSceneElapsed(t *testing.T) {
	s := newQuietScene()
	for i := 0; i < 30; i++ {
		s.Step(0.02)
	}
	if got := s.Elapsed(); got < 599*time.Millisecond || got > 601*time.Millisecond {
		t.Errorf("Elapsed = %v, want 600ms", got)
	}
}

func TestSceneDrawDebug(t *testing.T) {
	s := newQuietScene()
	s.SetDebugMode(true)
	var rec Recorder
	for i := 0; i < debugLogInterval; i++ {
		s.Step(testDT)
		s.Draw(&rec)
	}
	want := len(s.State().Tree)
	if got := rec.Count(CommandCircle); got != want {
		t.Errorf("circles = %d, want %d", got, want)
	}
	if s.renderer.stats.drawn != want {
		t.Errorf("drawn = %d, want %d", s.renderer.stats.drawn, want)
	}
}

func TestEventTypeString(t *testing.T) {
	if EventLaunch.String() != "launch" || EventDetonate.String() != "detonate" {
		t.Error("unexpected event names")
	}
	if EventType(9).String() != "unknown" {
		t.Error("unexpected name for an unknown event")
	}
}
