package system

import (
	"fmt"
	"math"
	"time"

	coresys "github.com/lanewar/engine/internal/core/system"
	"github.com/lanewar/engine/internal/data"
	"github.com/lanewar/engine/internal/world"
	"go.uber.org/zap"
)

// TurretSystem owns the turret selection and placement commands and fires
// every ready turret at the nearest enemy in range. Phase Update.
type TurretSystem struct {
	deps     *Deps
	selected *data.TurretType // nil = nothing selected
}

func NewTurretSystem(d *Deps) *TurretSystem {
	return &TurretSystem{deps: d}
}

func (s *TurretSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

// Selected returns the turret type picked for the next placement.
func (s *TurretSystem) Selected() *data.TurretType { return s.selected }

// SelectTurretType picks a catalog entry by index. An out-of-range index is
// rejected and leaves the current selection alone.
func (s *TurretSystem) SelectTurretType(index int) error {
	t, ok := s.deps.Catalog.Turrets.At(index)
	if !ok {
		return fmt.Errorf("turret index %d: %w", index, ErrInvalidSelection)
	}
	s.selected = t
	s.deps.Log.Debug("turret selected", zap.String("turret", t.ID))
	return nil
}

// PlaceTurret builds the selected turret at (row, col). Gold is spent and the
// slot occupied together, or neither happens.
func (s *TurretSystem) PlaceTurret(row, col int) error {
	if s.selected == nil {
		return fmt.Errorf("place turret: no type selected: %w", ErrInvalidSelection)
	}
	slot, ok := s.deps.World.Turrets.Slot(row, col)
	if !ok {
		return fmt.Errorf("place turret at (%d,%d): %w", row, col, ErrInvalidSelection)
	}
	if slot.Occupied {
		s.reject("slot occupied")
		return fmt.Errorf("place turret at (%d,%d): %w", row, col, ErrSlotOccupied)
	}
	t := s.selected
	if !s.deps.Ledger.SpendGold(t.GoldCost) {
		s.reject("not enough gold")
		return fmt.Errorf("place %s: need %d gold, have %d: %w",
			t.ID, t.GoldCost, s.deps.Ledger.Gold(), ErrInsufficientFunds)
	}

	slot.Occupied = true
	slot.Turret = t
	slot.LastFire = s.deps.Clock.Now()
	s.selected = nil

	s.deps.Log.Info("turret placed",
		zap.String("turret", t.ID),
		zap.Int("row", row),
		zap.Int("col", col),
		zap.Float64("range", t.Range),
	)
	return nil
}

func (s *TurretSystem) reject(reason string) {
	s.deps.Log.Info("turret placement failed", zap.String("reason", reason))
	s.deps.Notify.PlacementFailed(reason)
}

func (s *TurretSystem) Update(_ time.Duration) {
	now := s.deps.Clock.Now()
	s.deps.World.Turrets.Each(func(slot *world.TurretSlot) {
		if !slot.Ready(now) {
			return
		}
		target := s.nearestEnemy(slot.X, slot.Y, slot.Turret.Range)
		if target == nil {
			return
		}
		if s.fire(slot, target) {
			slot.LastFire = now
		}
	})
}

// nearestEnemy returns the closest active enemy within rng. The range is
// inclusive: a unit exactly rng away is a valid target. Ties go to the unit
// met first in slot order.
func (s *TurretSystem) nearestEnemy(x, y, rng float64) *world.Unit {
	var best *world.Unit
	bestDist := math.Inf(1)
	s.deps.World.EnemyUnits.Each(func(u *world.Unit) {
		d := math.Hypot(u.X-x, u.Y-y)
		if d <= rng && d < bestDist {
			best, bestDist = u, d
		}
	})
	return best
}

func (s *TurretSystem) fire(slot *world.TurretSlot, target *world.Unit) bool {
	t := slot.Turret
	angle := math.Atan2(target.Y-slot.Y, target.X-slot.X)
	_, err := s.deps.World.Projectiles.Acquire(slot.X, slot.Y, world.ProjectileAttrs{
		Owner:  world.SidePlayer,
		Damage: t.Damage,
		VX:     math.Cos(angle) * t.ProjectileSpeed,
		VY:     math.Sin(angle) * t.ProjectileSpeed,
	})
	if err != nil {
		s.deps.Log.Debug("turret shot dropped", zap.String("turret", t.ID), zap.Error(err))
		return false
	}
	return true
}
