package yule

import (
	"fmt"
	"os"
	"time"
)

// debugLogInterval is how many frames pass between debug log lines.
const debugLogInterval = 60

// debugStats holds per-frame timing. Only populated when Scene.debug is true.
type debugStats struct {
	stepTime time.Duration
}

// debugLog prints timing and entity counts to stderr every
// debugLogInterval frames.
func (s *Scene) debugLog() {
	if !s.debug || s.state.Frame%debugLogInterval != 0 {
		return
	}
	rs := s.renderer.stats
	total := s.stats.stepTime + rs.projectTime + rs.drawTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[yule] frame %d | step: %v | project+sort: %v | draw: %v | total: %v\n",
		s.state.Frame, s.stats.stepTime, rs.projectTime, rs.drawTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[yule] rockets: %d | sparks: %d | tree drawn: %d | culled: %d\n",
		len(s.state.Rockets), len(s.state.Sparks), rs.drawn, rs.culled)
	debugCheckSparkCap(s.cfg.Fireworks.SparkCap, len(s.state.Sparks))
}

// debugSparkHeadroom is how far past the cap the live count may run before
// a warning. One burst in flight when the cap is reached is expected.
const debugSparkHeadroom = 2

// debugCheckSparkCap warns on stderr when the live spark count is far above
// the cap.
func debugCheckSparkCap(limit, live int) {
	if limit > 0 && live > limit*debugSparkHeadroom {
		_, _ = fmt.Fprintf(os.Stderr, "[yule] warning: %d sparks alive (cap %d)\n", live, limit)
	}
}
