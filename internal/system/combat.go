package system

import (
	"time"

	"github.com/lanewar/engine/internal/core/ecs"
	"github.com/lanewar/engine/internal/world"
	"go.uber.org/zap"
)

// Combat resolves unit engagements, projectile hits and area damage.
// Every source of damage goes through ApplyDamage so XP and kill bonuses are
// awarded the same way.
type Combat struct {
	deps *Deps
}

func NewCombat(d *Deps) *Combat {
	return &Combat{deps: d}
}

// Engage starts a melee exchange between two opposing units. Both stop,
// are pushed back a few pixels toward their own base and the exchange
// resolves after the windup. Returns false if either unit is already
// fighting, dead, or both are on the same side.
func (c *Combat) Engage(a, b *world.Unit) bool {
	if a.Side == b.Side || a.InCombat || b.InCombat {
		return false
	}
	w := c.deps.World
	if !w.Units(a.Side).Alive(a.ID) || !w.Units(b.Side).Alive(b.ID) {
		return false
	}

	kb := c.deps.Config.Combat.KnockbackDistance
	for _, u := range [2]*world.Unit{a, b} {
		u.Halt()
		u.X -= u.Side.Dir() * kb
	}

	player, enemy := a, b
	if a.Side != world.SidePlayer {
		player, enemy = b, a
	}
	pid, eid := player.ID, enemy.ID
	due := c.deps.Clock.Now() + c.deps.Config.Combat.Windup
	c.deps.Timers.At(due, func(now time.Duration) {
		c.resolve(pid, eid, now)
	})
	return true
}

// resolve runs when the windup expires. Handles are re-checked: a unit that
// died or was recycled during the windup cancels the exchange, and its
// partner walks on.
func (c *Combat) resolve(pid, eid ecs.EntityID, now time.Duration) {
	w := c.deps.World
	player, pok := w.PlayerUnits.Get(pid)
	enemy, eok := w.EnemyUnits.Get(eid)
	if !pok || !eok {
		if pok {
			player.March()
		}
		if eok {
			enemy.March()
		}
		return
	}

	// Both strikes use the stats from before either lands.
	toEnemy, toPlayer := player.Damage, enemy.Damage
	player.LastAttackTime = now
	enemy.LastAttackTime = now

	if !c.ApplyDamage(enemy, toEnemy, world.SidePlayer) {
		enemy.March()
	}
	if !c.ApplyDamage(player, toPlayer, world.SideEnemy) {
		player.March()
	}
}

// ProjectileHit applies a projectile to a unit of the opposing side and
// recycles the projectile. Returns false without side effects if the owner
// and the unit are on the same side.
func (c *Combat) ProjectileHit(p *world.Projectile, u *world.Unit) bool {
	if p.Owner == u.Side {
		return false
	}
	w := c.deps.World
	if !w.Projectiles.Alive(p.ID) {
		return false
	}
	if w.Units(u.Side).Alive(u.ID) {
		c.ApplyDamage(u, p.Damage, p.Owner)
	}
	w.Projectiles.Release(p.ID)
	return true
}

// ApplyDamage subtracts damage from u on behalf of source. Player-side damage
// to enemies earns XP capped by the hp actually removed, and a kill earns the
// kill bonus. Returns true if the unit died and was recycled.
func (c *Combat) ApplyDamage(u *world.Unit, damage int, source world.Side) bool {
	if damage < 0 {
		damage = 0
	}
	hpBefore := u.HP
	u.HP -= damage

	rewarded := source == world.SidePlayer && u.Side == world.SideEnemy
	if rewarded {
		c.deps.Ledger.AwardXP(c.deps.XP.CalcDamageXP(damage, hpBefore))
	}
	if u.HP > 0 {
		return false
	}

	if rewarded {
		cost := u.Cost
		if cost <= 0 {
			cost = c.deps.Config.Combat.DefaultKillCost
		}
		c.deps.Ledger.AwardXP(c.deps.XP.CalcKillBonusXP(cost))
	}
	c.deps.Log.Debug("unit killed",
		zap.String("side", u.Side.String()),
		zap.String("type", u.TypeID),
		zap.String("by", source.String()),
	)
	c.deps.World.Units(u.Side).Release(u.ID)
	return true
}
