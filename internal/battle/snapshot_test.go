package battle

import (
	"testing"
	"time"

	"github.com/lanewar/engine/internal/world"
)

func TestSnapshotRoundTrip(t *testing.T) {
	sim, _ := newTestSim(t, nil)
	sim.SelectTurretType(0)
	if err := sim.PlaceTurret(1, 1); err != nil {
		t.Fatal(err)
	}
	sim.SpawnUnit(world.SidePlayer, 0)
	sim.SpawnUnit(world.SideEnemy, 0)
	sim.Tick(500*time.Millisecond, 500*time.Millisecond)
	sim.UseAbilityB()

	snap := sim.Snapshot()
	data, err := EncodeSnapshot(&snap)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got.Time != 500*time.Millisecond || got.Gold != snap.Gold || got.Epoch != "Stone Age" {
		t.Errorf("header mismatch: %+v", got)
	}
	if len(got.Units) != 2 || got.Units[0].Side != "player" || got.Units[1].Side != "enemy" {
		t.Errorf("units: %+v", got.Units)
	}
	if got.Units[0].X != 180 {
		t.Errorf("player unit x=%v, want 180", got.Units[0].X)
	}
	if len(got.Turrets) != 1 || got.Turrets[0].Turret != "rock-thrower" || got.Turrets[0].Row != 1 {
		t.Errorf("turrets: %+v", got.Turrets)
	}
	if len(got.Abilities) != 2 || got.Abilities[1].Remaining != 60*time.Second {
		t.Errorf("abilities: %+v", got.Abilities)
	}
	if got.EnemyBase.HP != 1000 || got.PlayerBase.MaxHP != 1000 {
		t.Errorf("bases: %+v %+v", got.PlayerBase, got.EnemyBase)
	}
}

func TestDecodeSnapshotRejectsGarbage(t *testing.T) {
	if _, err := DecodeSnapshot([]byte{0xc1}); err == nil {
		t.Error("expected an error for invalid msgpack")
	}
}
