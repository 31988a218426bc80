package yule

import "testing"

func TestHUDText(t *testing.T) {
	st := &State{
		Rockets: make([]Rocket, 2),
		Sparks:  make([]Spark, 950),
	}
	got := hudText(59.96, 60, st)
	want := "FPS: 60.0\nTPS: 60.0\nrockets: 2\nsparks: 950"
	if got != want {
		t.Errorf("hudText = %q, want %q", got, want)
	}
}

func TestHUDUpdateInterval(t *testing.T) {
	h := NewHUD()
	st := &State{}
	h.Update(0.1, st)
	if h.lastUpdate != 0 {
		t.Errorf("first update should redraw, lastUpdate = %v", h.lastUpdate)
	}
	h.Update(0.2, st)
	if h.lastUpdate != 0.2 {
		t.Errorf("lastUpdate = %v, want 0.2 before the refresh interval", h.lastUpdate)
	}
	h.Update(0.4, st)
	if h.lastUpdate != 0 {
		t.Errorf("lastUpdate = %v, want reset after the refresh interval", h.lastUpdate)
	}
}
