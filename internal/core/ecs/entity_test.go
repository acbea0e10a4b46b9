package ecs

import (
	"errors"
	"testing"
)

func TestEntityPoolCapacity(t *testing.T) {
	p := NewEntityPool(2)

	a, err := p.Create()
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	if _, err := p.Create(); err != nil {
		t.Fatalf("create b: %v", err)
	}
	if _, err := p.Create(); !errors.Is(err, ErrPoolExhausted) {
		t.Fatalf("expected ErrPoolExhausted, got %v", err)
	}
	if p.Active() != 2 {
		t.Errorf("expected 2 active, got %d", p.Active())
	}

	p.Destroy(a)
	if p.Active() != 1 || p.Free() != 1 {
		t.Errorf("after destroy: active=%d free=%d", p.Active(), p.Free())
	}
	if _, err := p.Create(); err != nil {
		t.Errorf("create after destroy: %v", err)
	}
}

func TestEntityPoolDestroyIdempotent(t *testing.T) {
	p := NewEntityPool(4)
	id, _ := p.Create()

	if !p.Destroy(id) {
		t.Fatal("first destroy should succeed")
	}
	if p.Destroy(id) {
		t.Error("second destroy should be a no-op")
	}
	if p.Active() != 0 {
		t.Errorf("expected 0 active, got %d", p.Active())
	}
	if len(p.freeList) != 1 {
		t.Errorf("free list corrupted by double destroy: len=%d", len(p.freeList))
	}
}

func TestEntityPoolStaleGeneration(t *testing.T) {
	p := NewEntityPool(1)
	old, _ := p.Create()
	p.Destroy(old)

	reused, err := p.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if reused.Index() != old.Index() {
		t.Fatalf("expected slot reuse, got index %d want %d", reused.Index(), old.Index())
	}
	if p.Alive(old) {
		t.Error("stale id reported alive after slot reuse")
	}
	if !p.Alive(reused) {
		t.Error("reused id should be alive")
	}
	// Destroying through the stale handle must not free the new occupant.
	if p.Destroy(old) {
		t.Error("stale destroy should be rejected")
	}
	if !p.Alive(reused) {
		t.Error("reused id killed by stale destroy")
	}
}

func TestZeroIDNeverAlive(t *testing.T) {
	p := NewEntityPool(1)
	id, _ := p.Create()
	if id.IsZero() {
		t.Fatal("first id must not be zero")
	}
	if p.Alive(0) {
		t.Error("zero id reported alive")
	}
}

func TestStoreEachSlotOrder(t *testing.T) {
	s := NewStore[int](4)
	var ids []EntityID
	for i := 0; i < 4; i++ {
		id, rec, err := s.Acquire()
		if err != nil {
			t.Fatalf("acquire %d: %v", i, err)
		}
		*rec = i
		ids = append(ids, id)
	}
	s.Release(ids[1])

	var seen []int
	s.Each(func(_ EntityID, v *int) { seen = append(seen, *v) })
	want := []int{0, 2, 3}
	if len(seen) != len(want) {
		t.Fatalf("expected %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("index %d: expected %d, got %d", i, want[i], seen[i])
		}
	}

	if _, ok := s.Get(ids[1]); ok {
		t.Error("released id should not resolve")
	}
}

func TestStoreEachToleratesRelease(t *testing.T) {
	s := NewStore[int](3)
	a, _, _ := s.Acquire()
	b, _, _ := s.Acquire()
	s.Acquire()

	visits := 0
	s.Each(func(id EntityID, _ *int) {
		visits++
		if id == a {
			s.Release(b)
		}
	})
	if visits != 2 {
		t.Errorf("expected 2 visits after releasing b mid-walk, got %d", visits)
	}
}
