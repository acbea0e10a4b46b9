// Package world holds the battlefield: both bases, both unit pools, the
// projectile pool and the turret grid.
package world

import "github.com/lanewar/engine/internal/config"

// State is everything on the lane.
// Accessed only from the simulation goroutine, no locks needed.
type State struct {
	PlayerBase *Base
	EnemyBase  *Base

	PlayerUnits *UnitPool
	EnemyUnits  *UnitPool
	Projectiles *ProjectilePool

	Turrets *TurretGrid

	Lane config.BattleConfig
}

func NewState(cfg *config.Config) *State {
	b := cfg.Battle
	t := cfg.Turrets
	return &State{
		PlayerBase:  NewBase(SidePlayer, b.PlayerBaseX, b.LaneY, b.BaseHP),
		EnemyBase:   NewBase(SideEnemy, b.EnemyBaseX, b.LaneY, b.BaseHP),
		PlayerUnits: NewUnitPool(SidePlayer, cfg.Pools.PlayerUnits),
		EnemyUnits:  NewUnitPool(SideEnemy, cfg.Pools.EnemyUnits),
		Projectiles: NewProjectilePool(cfg.Pools.Projectiles),
		Turrets:     NewTurretGrid(t.Rows, t.Cols, t.StartX, t.StartY, t.CellSize),
		Lane:        b,
	}
}

// Units returns the pool for side.
func (s *State) Units(side Side) *UnitPool {
	if side == SidePlayer {
		return s.PlayerUnits
	}
	return s.EnemyUnits
}

// Base returns the base owned by side.
func (s *State) Base(side Side) *Base {
	if side == SidePlayer {
		return s.PlayerBase
	}
	return s.EnemyBase
}

// SpawnX is where side's units enter the lane.
func (s *State) SpawnX(side Side) float64 {
	if side == SidePlayer {
		return s.Lane.PlayerSpawnX
	}
	return s.Lane.EnemySpawnX
}
