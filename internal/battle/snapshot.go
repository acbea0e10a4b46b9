package battle

import (
	"fmt"
	"math"
	"time"

	"github.com/lanewar/engine/internal/system"
	"github.com/lanewar/engine/internal/world"
	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot is a plain copy of the battlefield for a renderer or a replay
// file. Coordinates are rounded to 0.1px to keep the encoding small.
type Snapshot struct {
	Time     time.Duration `msgpack:"t"`
	Over     bool          `msgpack:"over"`
	Winner   string        `msgpack:"winner,omitempty"`
	Gold     int           `msgpack:"gold"`
	XP       int           `msgpack:"xp"`
	XPToNext int           `msgpack:"xp_next"`
	Epoch    string        `msgpack:"epoch"`

	PlayerBase  BaseState         `msgpack:"pb"`
	EnemyBase   BaseState         `msgpack:"eb"`
	Units       []UnitState       `msgpack:"units"`
	Projectiles []ProjectileState `msgpack:"proj"`
	Turrets     []TurretState     `msgpack:"turrets"`
	Abilities   []AbilityState    `msgpack:"abilities"`
}

type BaseState struct {
	X     float64 `msgpack:"x"`
	HP    int     `msgpack:"hp"`
	MaxHP int     `msgpack:"max_hp"`
}

type UnitState struct {
	ID       uint64  `msgpack:"id"`
	Side     string  `msgpack:"side"`
	Type     string  `msgpack:"type"`
	X        float64 `msgpack:"x"`
	Y        float64 `msgpack:"y"`
	HP       int     `msgpack:"hp"`
	MaxHP    int     `msgpack:"max_hp"`
	InCombat bool    `msgpack:"combat"`
}

type ProjectileState struct {
	ID    uint64  `msgpack:"id"`
	Owner string  `msgpack:"owner"`
	X     float64 `msgpack:"x"`
	Y     float64 `msgpack:"y"`
}

type TurretState struct {
	Row    int    `msgpack:"row"`
	Col    int    `msgpack:"col"`
	Turret string `msgpack:"turret"`
}

type AbilityState struct {
	Name      string        `msgpack:"name"`
	Remaining time.Duration `msgpack:"remaining"`
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

// Snapshot captures the current state.
func (s *Simulation) Snapshot() Snapshot {
	w := s.deps.World
	l := s.deps.Ledger
	now := s.deps.Clock.Now()

	snap := Snapshot{
		Time:       now,
		Over:       s.Over(),
		Gold:       l.Gold(),
		XP:         l.XP(),
		XPToNext:   l.Epoch().XPToNext,
		Epoch:      l.Epoch().Name,
		PlayerBase: BaseState{X: w.PlayerBase.X, HP: w.PlayerBase.HP, MaxHP: w.PlayerBase.MaxHP},
		EnemyBase:  BaseState{X: w.EnemyBase.X, HP: w.EnemyBase.HP, MaxHP: w.EnemyBase.MaxHP},
	}
	if snap.Over {
		snap.Winner = s.Winner().String()
	}

	addUnit := func(u *world.Unit) {
		snap.Units = append(snap.Units, UnitState{
			ID:       uint64(u.ID),
			Side:     u.Side.String(),
			Type:     u.TypeID,
			X:        round1(u.X),
			Y:        round1(u.Y),
			HP:       u.HP,
			MaxHP:    u.MaxHP,
			InCombat: u.InCombat,
		})
	}
	w.PlayerUnits.Each(addUnit)
	w.EnemyUnits.Each(addUnit)

	w.Projectiles.Each(func(p *world.Projectile) {
		snap.Projectiles = append(snap.Projectiles, ProjectileState{
			ID:    uint64(p.ID),
			Owner: p.Owner.String(),
			X:     round1(p.X),
			Y:     round1(p.Y),
		})
	})

	w.Turrets.Each(func(slot *world.TurretSlot) {
		if !slot.Occupied {
			return
		}
		snap.Turrets = append(snap.Turrets, TurretState{Row: slot.Row, Col: slot.Col, Turret: slot.Turret.ID})
	})

	for _, a := range []system.Ability{system.AbilityRocks, system.AbilityArtillery} {
		snap.Abilities = append(snap.Abilities, AbilityState{
			Name:      a.String(),
			Remaining: s.abilities.CooldownRemaining(a, now),
		})
	}
	return snap
}

// EncodeSnapshot serialises snap with msgpack.
func EncodeSnapshot(snap *Snapshot) ([]byte, error) {
	data, err := msgpack.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot is the inverse of EncodeSnapshot.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}
