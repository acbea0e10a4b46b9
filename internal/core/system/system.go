package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: drain the command queue
	PhasePreUpdate               // 1: due timer callbacks, movement, overlaps
	PhaseUpdate                  // 2: economy, ability cooldowns, turrets
	PhasePostUpdate              // 3: boundary cleanup, enemy spawns
	PhaseOutput                  // 4: flush notifications
)

// System is the interface every simulation system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
