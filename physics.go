package yule

// Integrator advances rockets and sparks by one frame. All quantities are
// per frame; there is no time-step scaling.
type Integrator struct {
	cfg *FireworkConfig
}

// NewIntegrator returns an integrator reading its constants from cfg.
func NewIntegrator(cfg *FireworkConfig) *Integrator {
	return &Integrator{cfg: cfg}
}

// StepRockets moves every rocket up by its speed. Rockets that reach their
// target are removed and passed to detonate, in order, after their final
// move. The surviving rockets are compacted in place and returned.
func (in *Integrator) StepRockets(rockets []Rocket, detonate func(r *Rocket)) []Rocket {
	n := 0
	for i := range rockets {
		r := &rockets[i]
		r.PrevX, r.PrevY = r.X, r.Y
		r.Y -= r.Speed
		if r.Y <= r.TargetY {
			if detonate != nil {
				detonate(r)
			}
			continue
		}
		rockets[n] = *r
		n++
	}
	clear(rockets[n:])
	return rockets[:n]
}

// StepSparks applies motion, drag, gravity, fade and cooling to every spark
// and drops the ones that have faded out. The survivors keep their relative
// order and are compacted in place.
func (in *Integrator) StepSparks(sparks []Spark) []Spark {
	c := in.cfg
	n := 0
	for i := range sparks {
		s := &sparks[i]
		s.PrevX, s.PrevY = s.X, s.Y
		s.X += s.VX
		s.Y += s.VY
		s.VX *= c.Drag
		s.VY *= c.Drag
		s.VY += c.Gravity
		s.Alpha -= s.Decay
		if s.Lightness > c.LightnessFloor {
			s.Lightness -= c.Cooling
		}
		if s.Alpha <= 0 {
			continue
		}
		sparks[n] = *s
		n++
	}
	clear(sparks[n:])
	return sparks[:n]
}
