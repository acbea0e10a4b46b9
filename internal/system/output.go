package system

import (
	"time"

	"github.com/lanewar/engine/internal/core/event"
	coresys "github.com/lanewar/engine/internal/core/system"
)

// OutputSystem delivers the notifications queued during the tick to bus
// subscribers. Phase Output.
type OutputSystem struct {
	bus *event.Bus
}

func NewOutputSystem(bus *event.Bus) *OutputSystem {
	return &OutputSystem{bus: bus}
}

func (s *OutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *OutputSystem) Update(_ time.Duration) {
	s.bus.Flush()
}
