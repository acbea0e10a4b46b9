package system

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lanewar/engine/internal/core/ecs"
	coresys "github.com/lanewar/engine/internal/core/system"
	"github.com/lanewar/engine/internal/world"
	"go.uber.org/zap"
)

// SpawnerSystem puts units on the lane. Player spawns cost gold; enemy spawns
// are free, scaled by difficulty and issued on a fixed interval.
// Phase PostUpdate, registered after cleanup.
type SpawnerSystem struct {
	deps     *Deps
	interval time.Duration
	next     time.Duration // match time of the next enemy spawn
}

func NewSpawnerSystem(d *Deps) *SpawnerSystem {
	interval := time.Duration(math.Round(float64(d.Config.Spawner.Interval) * d.Difficulty.SpawnIntervalMul))
	return &SpawnerSystem{
		deps:     d,
		interval: interval,
		next:     d.Clock.Now() + interval,
	}
}

func (s *SpawnerSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

// Interval is the difficulty-scaled time between enemy spawns.
func (s *SpawnerSystem) Interval() time.Duration { return s.interval }

func (s *SpawnerSystem) Update(_ time.Duration) {
	if !s.deps.Config.Spawner.Enabled || s.interval <= 0 || s.deps.Match.Over() {
		return
	}
	now := s.deps.Clock.Now()
	for now >= s.next {
		s.next += s.interval
		if _, err := s.Spawn(world.SideEnemy, s.pickEnemy()); err != nil {
			s.deps.Log.Debug("enemy spawn skipped", zap.Error(err))
		}
	}
}

// pickEnemy draws from the first epoch+lookahead catalog entries.
func (s *SpawnerSystem) pickEnemy() int {
	n := s.deps.Ledger.EpochIndex() + s.deps.Config.Spawner.Lookahead
	if total := s.deps.Catalog.Units.Count(); n > total {
		n = total
	}
	if n <= 0 {
		return 0
	}
	return s.deps.Rand.Intn(n)
}

// Spawn takes a unit of the indexed type from side's pool and sets it
// marching from side's spawn point. Indices past the end of the catalog use
// the last entry. A player spawn is refused, with no gold spent, when the
// purse or the pool cannot cover it.
func (s *SpawnerSystem) Spawn(side world.Side, index int) (*world.Unit, error) {
	ut, ok := s.deps.Catalog.Units.At(index)
	if !ok {
		s.deps.Log.Debug("unit index out of range, clamped",
			zap.Int("index", index),
			zap.String("unit", ut.ID),
		)
	}
	pool := s.deps.World.Units(side)

	attrs := world.UnitAttrs{
		TypeID:      ut.ID,
		HP:          ut.HP,
		Damage:      ut.Damage,
		Speed:       ut.Speed,
		Range:       ut.Range,
		AttackSpeed: ut.AttackSpeed,
		Cost:        ut.GoldCost,
	}

	if side == world.SidePlayer {
		if pool.Free() == 0 {
			s.deps.Notify.SpawnFailed("no free unit slot")
			return nil, fmt.Errorf("spawn %s: %w", ut.ID, ecs.ErrPoolExhausted)
		}
		if !s.deps.Ledger.SpendGold(ut.GoldCost) {
			s.deps.Notify.SpawnFailed("not enough gold")
			return nil, fmt.Errorf("spawn %s: need %d gold, have %d: %w",
				ut.ID, ut.GoldCost, s.deps.Ledger.Gold(), ErrInsufficientFunds)
		}
	} else {
		mul := s.deps.Difficulty.EnemyStatMul
		attrs.HP = scaleStat(attrs.HP, mul)
		attrs.Damage = scaleStat(attrs.Damage, mul)
	}

	u, err := pool.Acquire(s.deps.World.SpawnX(side), s.deps.World.Lane.LaneY, attrs)
	if err != nil {
		if side == world.SidePlayer && errors.Is(err, ecs.ErrPoolExhausted) {
			// Free() was checked above; refund to keep the purse consistent.
			s.deps.Ledger.AddGold(ut.GoldCost)
		}
		return nil, fmt.Errorf("spawn %s: %w", ut.ID, err)
	}
	s.deps.Log.Debug("unit spawned",
		zap.String("side", side.String()),
		zap.String("unit", ut.ID),
		zap.Int("hp", u.HP),
	)
	return u, nil
}

func scaleStat(v int, mul float64) int {
	if mul <= 0 || mul == 1 {
		return v
	}
	scaled := int(math.Round(float64(v) * mul))
	if scaled < 1 {
		scaled = 1
	}
	return scaled
}
