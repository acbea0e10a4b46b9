package timer

import (
	"container/heap"
	"time"
)

// Scheduler holds delayed callbacks keyed by match time. It is driven from
// the simulation goroutine: callbacks only run inside RunDue, never on their
// own goroutine. There is no cancellation; callbacks that outlive their
// subject check handle liveness themselves.
type Scheduler struct {
	now   time.Duration
	queue callbackHeap
	seq   uint64
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

type callback struct {
	due time.Duration
	seq uint64
	fn  func(now time.Duration)
}

// Now is the time of the most recent RunDue.
func (s *Scheduler) Now() time.Duration { return s.now }

// Pending returns the number of callbacks not yet run.
func (s *Scheduler) Pending() int { return len(s.queue) }

// After schedules fn to run delay after the current scheduler time. A zero
// delay runs on the next RunDue.
func (s *Scheduler) After(delay time.Duration, fn func(now time.Duration)) {
	if delay < 0 {
		delay = 0
	}
	s.At(s.now+delay, fn)
}

// At schedules fn for an absolute match time.
func (s *Scheduler) At(due time.Duration, fn func(now time.Duration)) {
	s.seq++
	heap.Push(&s.queue, &callback{due: due, seq: s.seq, fn: fn})
}

// RunDue advances the clock to now and runs every callback due at or before
// it, earliest first and FIFO among equal due times. Callbacks scheduled while
// running are picked up in the same pass if they are already due.
func (s *Scheduler) RunDue(now time.Duration) int {
	if now > s.now {
		s.now = now
	}
	ran := 0
	for len(s.queue) > 0 && s.queue[0].due <= s.now {
		cb := heap.Pop(&s.queue).(*callback)
		cb.fn(s.now)
		ran++
	}
	return ran
}

type callbackHeap []*callback

func (h callbackHeap) Len() int { return len(h) }

func (h callbackHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}

func (h callbackHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *callbackHeap) Push(x any) { *h = append(*h, x.(*callback)) }

func (h *callbackHeap) Pop() any {
	old := *h
	n := len(old)
	cb := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return cb
}
