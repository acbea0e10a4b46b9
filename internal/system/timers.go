package system

import (
	"time"

	coresys "github.com/lanewar/engine/internal/core/system"
)

// TimerSystem runs delayed callbacks that are due at the current match time.
// Phase PreUpdate, registered before physics.
type TimerSystem struct {
	deps *Deps
}

func NewTimerSystem(d *Deps) *TimerSystem {
	return &TimerSystem{deps: d}
}

func (s *TimerSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *TimerSystem) Update(_ time.Duration) {
	s.deps.Timers.RunDue(s.deps.Clock.Now())
}
