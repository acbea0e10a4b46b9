package system

import (
	"time"

	coresys "github.com/lanewar/engine/internal/core/system"
	"github.com/lanewar/engine/internal/world"
	"go.uber.org/zap"
)

// CleanupSystem recycles whatever has left the battlefield. A unit that walks
// off the far end damages the opposing base; a base at zero hp ends the
// match. Phase PostUpdate, registered before the spawner.
type CleanupSystem struct {
	deps *Deps
}

func NewCleanupSystem(d *Deps) *CleanupSystem {
	return &CleanupSystem{deps: d}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *CleanupSystem) Update(_ time.Duration) {
	w := s.deps.World
	lane := w.Lane
	right := lane.LaneWidth + lane.CleanupMargin
	left := -lane.CleanupMargin

	for _, u := range w.PlayerUnits.Active() {
		if u.X > right {
			s.breach(w.EnemyBase, u.Damage)
			w.PlayerUnits.Release(u.ID)
		}
	}
	for _, u := range w.EnemyUnits.Active() {
		if u.X < left {
			s.breach(w.PlayerBase, u.Damage)
			w.EnemyUnits.Release(u.ID)
		}
	}

	var gone []*world.Projectile
	w.Projectiles.Each(func(p *world.Projectile) {
		if p.X < left || p.X > right || p.Y < 0 || p.Y > lane.FieldHeight {
			gone = append(gone, p)
		}
	})
	for _, p := range gone {
		w.Projectiles.Release(p.ID)
	}
}

func (s *CleanupSystem) breach(base *world.Base, damage int) {
	hp := base.Damage(damage)
	s.deps.Notify.BaseHPChanged(hp, base.MaxHP, base.Side.String())
	if hp > 0 {
		return
	}
	winner := base.Side.Opponent()
	if s.deps.Match.end(winner) {
		s.deps.Log.Info("base destroyed",
			zap.String("side", base.Side.String()),
			zap.String("winner", winner.String()),
		)
		s.deps.Notify.MatchEnded(winner.String())
	}
}
