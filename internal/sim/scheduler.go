// internal/sim/scheduler.go
package sim

import (
	"container/heap"
	"time"
)

// TimerID identifies a scheduled callback. Zero is never issued.
type TimerID uint64

type timer struct {
	id    TimerID
	at    time.Duration
	seq   uint64 // FIFO among timers due at the same instant
	fn    func()
	index int
}

type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].at == q[j].at {
		return q[i].seq < q[j].seq
	}
	return q[i].at < q[j].at
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Scheduler runs callbacks at simulation time instead of wall-clock time.
// Timers only fire from Advance, which the simulator calls at the start of
// every fixed step, so callbacks never race the rules.
type Scheduler struct {
	now    time.Duration
	queue  timerQueue
	byID   map[TimerID]*timer
	nextID TimerID
	seq    uint64
}

// NewScheduler creates an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{
		byID: make(map[TimerID]*timer),
	}
}

// Now returns the time of the last Advance.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once d has elapsed from the current time.
// Non-positive durations fire on the next Advance.
func (s *Scheduler) After(d time.Duration, fn func()) TimerID {
	if d < 0 {
		d = 0
	}
	s.nextID++
	s.seq++
	t := &timer{
		id:  s.nextID,
		at:  s.now + d,
		seq: s.seq,
		fn:  fn,
	}
	heap.Push(&s.queue, t)
	s.byID[t.id] = t
	return t.id
}

// Cancel removes a pending timer and reports whether it was still pending.
func (s *Scheduler) Cancel(id TimerID) bool {
	t, ok := s.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&s.queue, t.index)
	delete(s.byID, id)
	return true
}

// CancelAll drops every pending timer.
func (s *Scheduler) CancelAll() {
	s.queue = nil
	s.byID = make(map[TimerID]*timer)
}

// Advance moves the clock to now and runs every timer that is due, in due
// order. Callbacks may schedule or cancel other timers; a timer scheduled
// with zero delay from inside a callback runs in the same Advance.
func (s *Scheduler) Advance(now time.Duration) int {
	if now > s.now {
		s.now = now
	}
	fired := 0
	for len(s.queue) > 0 {
		next := s.queue[0]
		if next.at > s.now {
			break
		}
		heap.Pop(&s.queue)
		delete(s.byID, next.id)
		next.fn()
		fired++
	}
	return fired
}

// Len returns the number of pending timers.
func (s *Scheduler) Len() int {
	return len(s.queue)
}

// Pending reports whether id is still scheduled.
func (s *Scheduler) Pending(id TimerID) bool {
	_, ok := s.byID[id]
	return ok
}
