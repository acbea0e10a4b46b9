package ecs

import "errors"

// ErrPoolExhausted is returned by Create when every slot is in use.
var ErrPoolExhausted = errors.New("pool exhausted")

// EntityID encodes a 32-bit index in the lower bits and a 32-bit generation
// in the upper bits. Generation increments on destroy to invalidate stale refs.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

// EntityPool manages a fixed number of slots with generational indices and a
// free list. Generations start at 1 so the zero EntityID never names a live slot.
type EntityPool struct {
	generations []uint32
	alive       []bool
	freeList    []uint32
	nextIndex   uint32
	active      int
}

// NewEntityPool creates a pool that never hands out more than capacity live IDs.
func NewEntityPool(capacity int) *EntityPool {
	if capacity < 0 {
		capacity = 0
	}
	return &EntityPool{
		generations: make([]uint32, capacity),
		alive:       make([]bool, capacity),
		freeList:    make([]uint32, 0, capacity),
	}
}

// Create reserves a slot. Released slots are reused LIFO before fresh ones.
func (p *EntityPool) Create() (EntityID, error) {
	var idx uint32
	switch {
	case len(p.freeList) > 0:
		idx = p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
	case int(p.nextIndex) < len(p.generations):
		idx = p.nextIndex
		p.nextIndex++
		p.generations[idx] = 1
	default:
		return 0, ErrPoolExhausted
	}
	p.alive[idx] = true
	p.active++
	return NewEntityID(idx, p.generations[idx]), nil
}

func (p *EntityPool) Alive(id EntityID) bool {
	idx := id.Index()
	if idx >= p.nextIndex {
		return false
	}
	return p.alive[idx] && p.generations[idx] == id.Generation()
}

// Destroy frees the slot named by id. Stale or repeated destroys are no-ops.
func (p *EntityPool) Destroy(id EntityID) bool {
	if !p.Alive(id) {
		return false
	}
	idx := id.Index()
	p.alive[idx] = false
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
	p.active--
	return true
}

// Current returns the live ID occupying slot idx, if any.
func (p *EntityPool) Current(idx uint32) (EntityID, bool) {
	if idx >= p.nextIndex || !p.alive[idx] {
		return 0, false
	}
	return NewEntityID(idx, p.generations[idx]), true
}

func (p *EntityPool) Active() int   { return p.active }
func (p *EntityPool) Capacity() int { return len(p.generations) }
func (p *EntityPool) Free() int     { return len(p.generations) - p.active }
