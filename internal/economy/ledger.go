// Package economy tracks gold, XP and epoch progression for the player side.
package economy

import (
	"math"
	"time"

	"github.com/lanewar/engine/internal/core/event"
	"github.com/lanewar/engine/internal/data"
	"go.uber.org/zap"
)

// DefaultMaxXPEvent bounds a single XP award.
const DefaultMaxXPEvent = 2000

// Clamp bounds a raw XP award to [0, limit]. NaN, infinities and negative
// amounts contribute nothing.
func Clamp(raw float64, limit int) float64 {
	if math.IsNaN(raw) || math.IsInf(raw, 0) || raw < 0 {
		return 0
	}
	if raw > float64(limit) {
		return float64(limit)
	}
	return raw
}

// Ledger is the player's purse and progression. Accessed only from the
// simulation goroutine.
type Ledger struct {
	gold        int
	xp          int
	interval    time.Duration // time per gold piece, 0 = no passive income
	accumulator time.Duration
	maxXPEvent  int

	epochs     *data.EpochTable
	epochIndex int

	notify event.Notifier
	log    *zap.Logger
}

type Options struct {
	StartingGold  int
	GoldPerSecond float64
	MaxXPEvent    int
}

func NewLedger(opts Options, epochs *data.EpochTable, notify event.Notifier, log *zap.Logger) *Ledger {
	var interval time.Duration
	if opts.GoldPerSecond > 0 {
		interval = time.Duration(float64(time.Second) / opts.GoldPerSecond)
	}
	if opts.MaxXPEvent <= 0 {
		opts.MaxXPEvent = DefaultMaxXPEvent
	}
	return &Ledger{
		gold:       opts.StartingGold,
		interval:   interval,
		maxXPEvent: opts.MaxXPEvent,
		epochs:     epochs,
		notify:     notify,
		log:        log,
	}
}

func (l *Ledger) Gold() int                   { return l.gold }
func (l *Ledger) XP() int                     { return l.xp }
func (l *Ledger) EpochIndex() int             { return l.epochIndex }
func (l *Ledger) Epoch() *data.Epoch          { return l.epochs.At(l.epochIndex) }
func (l *Ledger) Accumulator() time.Duration  { return l.accumulator }
func (l *Ledger) TickInterval() time.Duration { return l.interval }

// Sync pushes the full ledger state to the notifier.
func (l *Ledger) Sync() {
	l.notify.GoldChanged(l.gold)
	l.notify.XPChanged(l.xp, l.Epoch().XPToNext)
	l.notify.EpochChanged(l.Epoch().Name)
}

// AccrueGold converts elapsed time into whole gold pieces. The remainder is
// carried, so the total is the same however delta is sliced.
func (l *Ledger) AccrueGold(delta time.Duration) int {
	if l.interval <= 0 || delta <= 0 {
		return 0
	}
	l.accumulator += delta
	earned := 0
	for l.accumulator >= l.interval {
		l.accumulator -= l.interval
		earned++
	}
	if earned > 0 {
		l.gold += earned
		l.notify.GoldChanged(l.gold)
	}
	return earned
}

// AddGold credits amount and notifies.
func (l *Ledger) AddGold(amount int) {
	if amount <= 0 {
		return
	}
	l.gold += amount
	l.notify.GoldChanged(l.gold)
}

// SpendGold deducts amount if the purse covers it. Gold never goes negative.
func (l *Ledger) SpendGold(amount int) bool {
	if amount < 0 || l.gold < amount {
		return false
	}
	l.gold -= amount
	l.notify.GoldChanged(l.gold)
	return true
}

// AwardXP clamps raw, adds the whole part to XP and checks for an epoch
// advance. Returns the amount actually applied.
func (l *Ledger) AwardXP(raw float64) int {
	applied := int(math.Floor(Clamp(raw, l.maxXPEvent)))
	l.xp += applied
	l.checkEpochAdvance()
	return applied
}

// checkEpochAdvance moves up at most one epoch per call; surplus XP past the
// threshold is dropped along with the reset.
func (l *Ledger) checkEpochAdvance() {
	cur := l.Epoch()
	if l.xp >= cur.XPToNext && l.epochs.HasNext(l.epochIndex) {
		l.epochIndex++
		l.xp = 0
		next := l.Epoch()
		l.log.Info("epoch advanced", zap.String("epoch", next.Name), zap.Int("index", l.epochIndex))
		l.notify.EpochChanged(next.Name)
		l.notify.XPChanged(l.xp, next.XPToNext)
		return
	}
	l.notify.XPChanged(l.xp, cur.XPToNext)
}
