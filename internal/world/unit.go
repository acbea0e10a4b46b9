package world

import (
	"fmt"
	"time"

	"github.com/lanewar/engine/internal/core/ecs"
)

// Unit is a pooled lane fighter. Accessed only from the simulation goroutine.
type Unit struct {
	ID     ecs.EntityID
	Side   Side
	TypeID string

	HP          int
	MaxHP       int
	Damage      int
	Speed       float64 // px/s
	Range       float64
	AttackSpeed float64 // seconds between attacks
	Cost        int     // gold cost, used for the kill bonus

	X, Y   float64
	VX, VY float64

	InCombat       bool // horizontal motion frozen while set
	LastAttackTime time.Duration
}

// March resumes walking toward the opposing base.
func (u *Unit) March() {
	u.InCombat = false
	u.VX = u.Side.Dir() * u.Speed
	u.VY = 0
}

// Halt stops horizontal motion for an engagement.
func (u *Unit) Halt() {
	u.InCombat = true
	u.VX = 0
}

// UnitAttrs are the stats copied onto a unit when it is taken from the pool.
type UnitAttrs struct {
	TypeID      string
	HP          int
	Damage      int
	Speed       float64
	Range       float64
	AttackSpeed float64
	Cost        int
}

// UnitPool is the bounded set of units for one side.
type UnitPool struct {
	side  Side
	store *ecs.Store[Unit]
}

func NewUnitPool(side Side, capacity int) *UnitPool {
	return &UnitPool{side: side, store: ecs.NewStore[Unit](capacity)}
}

// Acquire activates a unit at (x, y) marching toward the opposing base.
// Returns ecs.ErrPoolExhausted when every slot is in use.
func (p *UnitPool) Acquire(x, y float64, attrs UnitAttrs) (*Unit, error) {
	id, u, err := p.store.Acquire()
	if err != nil {
		return nil, fmt.Errorf("%s units: %w", p.side, err)
	}
	*u = Unit{
		ID:          id,
		Side:        p.side,
		TypeID:      attrs.TypeID,
		HP:          attrs.HP,
		MaxHP:       attrs.HP,
		Damage:      attrs.Damage,
		Speed:       attrs.Speed,
		Range:       attrs.Range,
		AttackSpeed: attrs.AttackSpeed,
		Cost:        attrs.Cost,
		X:           x,
		Y:           y,
	}
	u.March()
	return u, nil
}

// Release returns a unit to the pool. Releasing a stale or already released
// id is a no-op and returns false.
func (p *UnitPool) Release(id ecs.EntityID) bool {
	u, ok := p.store.Get(id)
	if !ok {
		return false
	}
	u.VX, u.VY = 0, 0
	u.InCombat = false
	return p.store.Release(id)
}

// Get returns the live unit for id, or false if the handle is stale.
func (p *UnitPool) Get(id ecs.EntityID) (*Unit, bool) { return p.store.Get(id) }

// Each visits active units in slot order.
func (p *UnitPool) Each(fn func(u *Unit)) {
	p.store.Each(func(_ ecs.EntityID, u *Unit) { fn(u) })
}

// Find returns the first active unit in slot order that satisfies pred.
func (p *UnitPool) Find(pred func(u *Unit) bool) (*Unit, bool) {
	_, u, ok := p.store.Find(func(_ ecs.EntityID, u *Unit) bool { return pred(u) })
	return u, ok
}

// Active returns a copy of the active units' pointers in slot order. Callers
// that release while walking use this instead of Each.
func (p *UnitPool) Active() []*Unit {
	out := make([]*Unit, 0, p.store.Len())
	p.Each(func(u *Unit) { out = append(out, u) })
	return out
}

func (p *UnitPool) Side() Side                 { return p.side }
func (p *UnitPool) Alive(id ecs.EntityID) bool { return p.store.Alive(id) }
func (p *UnitPool) Len() int                   { return p.store.Len() }
func (p *UnitPool) Cap() int                   { return p.store.Cap() }
func (p *UnitPool) Free() int                  { return p.store.Free() }
