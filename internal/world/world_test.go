package world

import (
	"errors"
	"testing"

	"github.com/lanewar/engine/internal/config"
	"github.com/lanewar/engine/internal/core/ecs"
)

func TestUnitPoolAcquireMarches(t *testing.T) {
	p := NewUnitPool(SideEnemy, 2)
	u, err := p.Acquire(1130, 360, UnitAttrs{TypeID: "clubman", HP: 50, Damage: 10, Speed: 60})
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if u.VX != -60 || u.InCombat {
		t.Errorf("enemy should march left, vx=%v inCombat=%v", u.VX, u.InCombat)
	}
	if u.MaxHP != 50 || u.Side != SideEnemy {
		t.Errorf("unexpected record %+v", u)
	}
}

func TestUnitPoolExhaustion(t *testing.T) {
	p := NewUnitPool(SidePlayer, 1)
	if _, err := p.Acquire(0, 0, UnitAttrs{HP: 1}); err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	_, err := p.Acquire(0, 0, UnitAttrs{HP: 1})
	if !errors.Is(err, ecs.ErrPoolExhausted) {
		t.Fatalf("expected ErrPoolExhausted, got %v", err)
	}
	if p.Len() != 1 {
		t.Errorf("exhausted acquire changed active count: %d", p.Len())
	}
}

func TestUnitPoolReleaseIdempotent(t *testing.T) {
	p := NewUnitPool(SidePlayer, 4)
	u, _ := p.Acquire(10, 20, UnitAttrs{HP: 5, Speed: 40})
	u.Halt()
	id := u.ID

	if !p.Release(id) {
		t.Fatal("first release failed")
	}
	if u.VX != 0 || u.VY != 0 || u.InCombat {
		t.Errorf("release did not reset motion: %+v", u)
	}
	if p.Release(id) {
		t.Error("second release reported success")
	}
	if p.Len() != 0 || p.Free() != 4 {
		t.Errorf("free list corrupted: len=%d free=%d", p.Len(), p.Free())
	}

	// The slot is reused with a fresh generation; the old handle stays dead.
	v, _ := p.Acquire(0, 0, UnitAttrs{HP: 5})
	if p.Alive(id) {
		t.Error("stale handle alive after reuse")
	}
	if _, ok := p.Get(v.ID); !ok {
		t.Error("new handle not found")
	}
}

func TestProjectilePoolReleaseIdempotent(t *testing.T) {
	p := NewProjectilePool(2)
	pr, err := p.Acquire(5, 5, ProjectileAttrs{Owner: SidePlayer, Damage: 8, VX: 3, VY: 4})
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	id := pr.ID
	if !p.Release(id) || p.Release(id) {
		t.Error("release should succeed once")
	}
	if p.Len() != 0 {
		t.Errorf("expected empty pool, len=%d", p.Len())
	}
}

func TestBaseDamageClamps(t *testing.T) {
	b := NewBase(SidePlayer, 100, 360, 30)
	if hp := b.Damage(20); hp != 10 {
		t.Errorf("expected 10, got %d", hp)
	}
	if hp := b.Damage(50); hp != 0 || !b.Destroyed() {
		t.Errorf("expected clamp to 0, got %d", hp)
	}
}

func TestTurretGridLayout(t *testing.T) {
	cfg := config.Defaults()
	s := NewState(cfg)
	slot, ok := s.Turrets.Slot(2, 4)
	if !ok {
		t.Fatal("slot (2,4) missing")
	}
	if slot.X != 50+4*60 || slot.Y != 150+2*60 {
		t.Errorf("slot (2,4) at (%v,%v)", slot.X, slot.Y)
	}
	for _, rc := range [][2]int{{-1, 0}, {3, 0}, {0, 5}, {0, -1}} {
		if _, ok := s.Turrets.Slot(rc[0], rc[1]); ok {
			t.Errorf("slot %v should be out of range", rc)
		}
	}
}
