// Package system holds the lane systems run by the phase runner each tick
// and the command handlers that mutate the battlefield.
package system

import (
	"errors"
	"math/rand"
	"time"

	"github.com/lanewar/engine/internal/config"
	"github.com/lanewar/engine/internal/core/event"
	"github.com/lanewar/engine/internal/core/timer"
	"github.com/lanewar/engine/internal/data"
	"github.com/lanewar/engine/internal/economy"
	"github.com/lanewar/engine/internal/world"
	"go.uber.org/zap"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidSelection  = errors.New("invalid selection")
	ErrSlotOccupied      = errors.New("slot occupied")
	ErrAbilityOnCooldown = errors.New("ability on cooldown")
)

// XPFormulas computes XP awards. Implemented by scripting.Engine.
type XPFormulas interface {
	CalcDamageXP(damage, hpBefore int) float64
	CalcKillBonusXP(goldCost int) float64
}

// Clock is match time as seen by the systems. The driver sets it before
// running the phases of a tick.
type Clock struct {
	now time.Duration
}

// Set moves the clock to now. Time never runs backwards.
func (c *Clock) Set(now time.Duration) {
	if now > c.now {
		c.now = now
	}
}

func (c *Clock) Now() time.Duration { return c.now }

// Match records the terminal state.
type Match struct {
	over   bool
	winner world.Side
}

func (m *Match) Over() bool         { return m.over }
func (m *Match) Winner() world.Side { return m.winner }

func (m *Match) end(winner world.Side) bool {
	if m.over {
		return false
	}
	m.over = true
	m.winner = winner
	return true
}

// Deps bundles the state shared by the lane systems.
type Deps struct {
	Config     *config.Config
	Difficulty config.Difficulty
	Catalog    *data.Catalog
	World      *world.State
	Ledger     *economy.Ledger
	Timers     *timer.Scheduler
	XP         XPFormulas
	Notify     event.Notifier
	Clock      *Clock
	Match      *Match
	Rand       *rand.Rand
	Log        *zap.Logger
}
