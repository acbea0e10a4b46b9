package battle

import (
	"sync/atomic"

	"github.com/lanewar/engine/internal/system"
	"github.com/lanewar/engine/internal/world"
	"go.uber.org/zap"
)

// Command is a fire-and-forget request for the simulation goroutine.
type Command = system.Command

func SpawnUnitCommand(side world.Side, index int) Command {
	return Command{Kind: system.CmdSpawnUnit, Side: side, Index: index}
}

func SelectTurretCommand(index int) Command {
	return Command{Kind: system.CmdSelectTurret, Index: index}
}

func PlaceTurretCommand(row, col int) Command {
	return Command{Kind: system.CmdPlaceTurret, Row: row, Col: col}
}

func AbilityACommand() Command { return Command{Kind: system.CmdAbilityA} }
func AbilityBCommand() Command { return Command{Kind: system.CmdAbilityB} }

// Commands is the bounded queue other goroutines use to reach the
// simulation. Send never blocks.
type Commands struct {
	ch      chan Command
	dropped atomic.Uint64
	log     *zap.Logger
}

func NewCommands(size int, log *zap.Logger) *Commands {
	if size <= 0 {
		size = 1
	}
	return &Commands{ch: make(chan Command, size), log: log}
}

// Send queues cmd. A full queue drops it and returns false.
func (c *Commands) Send(cmd Command) bool {
	select {
	case c.ch <- cmd:
		return true
	default:
		c.dropped.Add(1)
		c.log.Warn("command queue full, dropped", zap.Stringer("command", cmd.Kind))
		return false
	}
}

// Dropped returns how many commands were lost to a full queue.
func (c *Commands) Dropped() uint64 { return c.dropped.Load() }

// Len is the number of queued commands.
func (c *Commands) Len() int { return len(c.ch) }

func (c *Commands) receive() <-chan Command { return c.ch }
