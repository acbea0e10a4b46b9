package system

import (
	"math"
	"time"

	coresys "github.com/lanewar/engine/internal/core/system"
	"github.com/lanewar/engine/internal/world"
)

// PhysicsSystem integrates velocities and reports overlaps: opposing units
// engage, projectiles hit the first opposing unit they touch.
// Phase PreUpdate, registered after the timer system.
type PhysicsSystem struct {
	deps   *Deps
	combat *Combat
}

func NewPhysicsSystem(d *Deps, combat *Combat) *PhysicsSystem {
	return &PhysicsSystem{deps: d, combat: combat}
}

func (s *PhysicsSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *PhysicsSystem) Update(dt time.Duration) {
	s.move(dt.Seconds())
	s.unitOverlaps()
	s.projectileOverlaps()
}

func (s *PhysicsSystem) move(sec float64) {
	if sec <= 0 {
		return
	}
	w := s.deps.World
	step := func(u *world.Unit) {
		if !u.InCombat {
			u.X += u.VX * sec
		}
		u.Y += u.VY * sec
	}
	w.PlayerUnits.Each(step)
	w.EnemyUnits.Each(step)
	w.Projectiles.Each(func(p *world.Projectile) {
		p.X += p.VX * sec
		p.Y += p.VY * sec
	})
}

// unitOverlaps pairs each player unit, in slot order, with overlapping enemy
// units. Engage ignores units already fighting, so a unit joins at most one
// exchange.
func (s *PhysicsSystem) unitOverlaps() {
	w := s.deps.World
	cw, ch := s.deps.Config.Combat.UnitWidth, s.deps.Config.Combat.UnitHeight
	w.PlayerUnits.Each(func(p *world.Unit) {
		if p.InCombat {
			return
		}
		e, ok := w.EnemyUnits.Find(func(e *world.Unit) bool {
			return !e.InCombat && overlaps(p.X, p.Y, cw, ch, e.X, e.Y, cw, ch)
		})
		if ok {
			s.combat.Engage(p, e)
		}
	})
}

func (s *PhysicsSystem) projectileOverlaps() {
	w := s.deps.World
	cfg := s.deps.Config.Combat
	size := cfg.ProjectileRadius * 2
	var shots []*world.Projectile
	w.Projectiles.Each(func(p *world.Projectile) { shots = append(shots, p) })

	for _, p := range shots {
		u, ok := w.Units(p.Owner.Opponent()).Find(func(u *world.Unit) bool {
			return overlaps(p.X, p.Y, size, size, u.X, u.Y, cfg.UnitWidth, cfg.UnitHeight)
		})
		if ok {
			s.combat.ProjectileHit(p, u)
		}
	}
}

// overlaps tests two centred axis-aligned boxes. Touching edges do not count.
func overlaps(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	return math.Abs(ax-bx) < (aw+bw)/2 && math.Abs(ay-by) < (ah+bh)/2
}
