package system

import (
	"fmt"
	"time"

	coresys "github.com/lanewar/engine/internal/core/system"
	"github.com/lanewar/engine/internal/world"
	"go.uber.org/zap"
)

// CommandKind names a player command.
type CommandKind uint8

const (
	CmdSpawnUnit CommandKind = iota + 1
	CmdSelectTurret
	CmdPlaceTurret
	CmdAbilityA
	CmdAbilityB
)

func (k CommandKind) String() string {
	switch k {
	case CmdSpawnUnit:
		return "spawn_unit"
	case CmdSelectTurret:
		return "select_turret"
	case CmdPlaceTurret:
		return "place_turret"
	case CmdAbilityA:
		return "ability_a"
	case CmdAbilityB:
		return "ability_b"
	}
	return fmt.Sprintf("command(%d)", uint8(k))
}

// Command is a queued request from outside the simulation goroutine.
// Side and Index apply to spawns, Index to turret selection, Row and Col to
// placement.
type Command struct {
	Kind  CommandKind
	Side  world.Side
	Index int
	Row   int
	Col   int
}

// CommandHandler applies one command to the simulation.
type CommandHandler func(Command) error

// InputSystem drains the command queue and dispatches each command through
// the handler. At most maxPerTick commands are taken per tick so a flood
// cannot stall the simulation. Phase Input.
type InputSystem struct {
	queue      <-chan Command
	handle     CommandHandler
	maxPerTick int
	log        *zap.Logger
}

func NewInputSystem(queue <-chan Command, handle CommandHandler, maxPerTick int, log *zap.Logger) *InputSystem {
	return &InputSystem{
		queue:      queue,
		handle:     handle,
		maxPerTick: maxPerTick,
		log:        log,
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	for i := 0; s.maxPerTick <= 0 || i < s.maxPerTick; i++ {
		select {
		case cmd := <-s.queue:
			if err := s.handle(cmd); err != nil {
				// Rejections reach the UI through the notifier.
				s.log.Debug("command rejected",
					zap.Stringer("command", cmd.Kind),
					zap.Error(err),
				)
			}
		default:
			return
		}
	}
}
