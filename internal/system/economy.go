package system

import (
	"time"

	coresys "github.com/lanewar/engine/internal/core/system"
)

// EconomySystem turns elapsed time into passive gold. Phase Update.
type EconomySystem struct {
	deps *Deps
}

func NewEconomySystem(d *Deps) *EconomySystem {
	return &EconomySystem{deps: d}
}

func (s *EconomySystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *EconomySystem) Update(dt time.Duration) {
	s.deps.Ledger.AccrueGold(dt)
}
