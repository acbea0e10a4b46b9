package eventtest

import (
	"time"

	"github.com/lanewar/engine/internal/core/event"
)

// Recorder is an event.Notifier that keeps every notification in memory so
// tests can assert on what the simulation reported.
type Recorder struct {
	Gold       []int
	XP         []event.XPChanged
	Epochs     []string
	BaseHP     []event.BaseHPChanged
	Placements []string
	Spawns     []string
	Cooldowns  []event.AbilityCooldown
	Ended      []string
}

var _ event.Notifier = (*Recorder)(nil)

func (r *Recorder) GoldChanged(gold int) { r.Gold = append(r.Gold, gold) }

func (r *Recorder) XPChanged(xp, xpToNext int) {
	r.XP = append(r.XP, event.XPChanged{XP: xp, XPToNext: xpToNext})
}

func (r *Recorder) EpochChanged(name string) { r.Epochs = append(r.Epochs, name) }

func (r *Recorder) BaseHPChanged(hp, maxHP int, side string) {
	r.BaseHP = append(r.BaseHP, event.BaseHPChanged{HP: hp, MaxHP: maxHP, Side: side})
}

func (r *Recorder) PlacementFailed(reason string) { r.Placements = append(r.Placements, reason) }

func (r *Recorder) SpawnFailed(reason string) { r.Spawns = append(r.Spawns, reason) }

func (r *Recorder) AbilityCooldown(ability string, remaining, total time.Duration) {
	r.Cooldowns = append(r.Cooldowns, event.AbilityCooldown{Ability: ability, Remaining: remaining, Total: total})
}

func (r *Recorder) MatchEnded(winner string) { r.Ended = append(r.Ended, winner) }

// LastGold returns the most recent gold notification, or -1 if none.
func (r *Recorder) LastGold() int {
	if len(r.Gold) == 0 {
		return -1
	}
	return r.Gold[len(r.Gold)-1]
}

// LastXP returns the most recent XP notification.
func (r *Recorder) LastXP() (event.XPChanged, bool) {
	if len(r.XP) == 0 {
		return event.XPChanged{}, false
	}
	return r.XP[len(r.XP)-1], true
}
