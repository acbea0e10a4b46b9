package world

import (
	"fmt"

	"github.com/lanewar/engine/internal/core/ecs"
)

// Projectile is a pooled turret shot.
type Projectile struct {
	ID     ecs.EntityID
	Owner  Side
	Damage int
	X, Y   float64
	VX, VY float64
}

type ProjectileAttrs struct {
	Owner  Side
	Damage int
	VX, VY float64
}

type ProjectilePool struct {
	store *ecs.Store[Projectile]
}

func NewProjectilePool(capacity int) *ProjectilePool {
	return &ProjectilePool{store: ecs.NewStore[Projectile](capacity)}
}

func (p *ProjectilePool) Acquire(x, y float64, attrs ProjectileAttrs) (*Projectile, error) {
	id, pr, err := p.store.Acquire()
	if err != nil {
		return nil, fmt.Errorf("projectiles: %w", err)
	}
	*pr = Projectile{
		ID:     id,
		Owner:  attrs.Owner,
		Damage: attrs.Damage,
		X:      x,
		Y:      y,
		VX:     attrs.VX,
		VY:     attrs.VY,
	}
	return pr, nil
}

// Release is idempotent like UnitPool.Release.
func (p *ProjectilePool) Release(id ecs.EntityID) bool {
	pr, ok := p.store.Get(id)
	if !ok {
		return false
	}
	pr.VX, pr.VY = 0, 0
	return p.store.Release(id)
}

func (p *ProjectilePool) Get(id ecs.EntityID) (*Projectile, bool) { return p.store.Get(id) }

func (p *ProjectilePool) Each(fn func(pr *Projectile)) {
	p.store.Each(func(_ ecs.EntityID, pr *Projectile) { fn(pr) })
}

func (p *ProjectilePool) Alive(id ecs.EntityID) bool { return p.store.Alive(id) }
func (p *ProjectilePool) Len() int                   { return p.store.Len() }
func (p *ProjectilePool) Cap() int                   { return p.store.Cap() }
