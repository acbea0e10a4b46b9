package system

import (
	"testing"

	"github.com/lanewar/engine/internal/config"
	"github.com/lanewar/engine/internal/world"
)

func TestCleanupBreachDamagesBase(t *testing.T) {
	f := newFixture(t, nil)
	cs := NewCleanupSystem(f.deps)
	f.unit(t, world.SidePlayer, 1331, world.UnitAttrs{HP: 10, Damage: 12})
	f.unit(t, world.SideEnemy, -51, world.UnitAttrs{HP: 10, Damage: 7})
	stay := f.unit(t, world.SidePlayer, 1330, world.UnitAttrs{HP: 10, Damage: 12})

	cs.Update(0)

	if f.deps.World.EnemyBase.HP != 988 || f.deps.World.PlayerBase.HP != 993 {
		t.Errorf("base hp: enemy=%d player=%d", f.deps.World.EnemyBase.HP, f.deps.World.PlayerBase.HP)
	}
	if f.deps.World.PlayerUnits.Len() != 1 || !f.deps.World.PlayerUnits.Alive(stay.ID) {
		t.Error("unit on the margin was recycled")
	}
	if f.deps.World.EnemyUnits.Len() != 0 {
		t.Error("enemy past the margin not recycled")
	}
	if len(f.rec.BaseHP) != 2 || f.rec.BaseHP[0].Side != "enemy" || f.rec.BaseHP[0].MaxHP != 1000 {
		t.Errorf("baseHpChanged notifications: %+v", f.rec.BaseHP)
	}
}

func TestCleanupRecyclesStrayProjectiles(t *testing.T) {
	f := newFixture(t, nil)
	cs := NewCleanupSystem(f.deps)
	pp := f.deps.World.Projectiles
	pp.Acquire(-60, 300, world.ProjectileAttrs{})
	pp.Acquire(1400, 300, world.ProjectileAttrs{})
	pp.Acquire(600, -5, world.ProjectileAttrs{})
	keep, _ := pp.Acquire(600, 300, world.ProjectileAttrs{})

	cs.Update(0)
	if pp.Len() != 1 || !pp.Alive(keep.ID) {
		t.Errorf("expected only the in-field projectile, %d left", pp.Len())
	}
}

func TestBaseDestroyedEndsMatchOnce(t *testing.T) {
	f := newFixture(t, func(c *config.Config) { c.Battle.BaseHP = 20 })
	cs := NewCleanupSystem(f.deps)
	f.unit(t, world.SideEnemy, -100, world.UnitAttrs{HP: 10, Damage: 15})
	f.unit(t, world.SideEnemy, -100, world.UnitAttrs{HP: 10, Damage: 15})
	f.unit(t, world.SideEnemy, -100, world.UnitAttrs{HP: 10, Damage: 15})

	cs.Update(0)
	if f.deps.World.PlayerBase.HP != 0 {
		t.Errorf("base hp should clamp at 0, got %d", f.deps.World.PlayerBase.HP)
	}
	if !f.deps.Match.Over() || f.deps.Match.Winner() != world.SideEnemy {
		t.Fatalf("match not ended for enemy: over=%v winner=%v", f.deps.Match.Over(), f.deps.Match.Winner())
	}
	if len(f.rec.Ended) != 1 || f.rec.Ended[0] != "enemy" {
		t.Errorf("matchEnded notifications: %v", f.rec.Ended)
	}
}
