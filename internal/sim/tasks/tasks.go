package tasks

import "sort"

type Kind string

const (
	KindCraft Kind = "CRAFT"
	KindBuild Kind = "BUILD"
	KindBusy  Kind = "BUSY"
)

// Handle identifies one scheduled continuation. The zero Handle is never
// issued.
type Handle uint64

// Scheduler is a deferred-continuation queue advanced once per simulation
// tick. Timers are tick counts, not wall clocks; cancellation removes the
// pending entry by handle before it fires.
type Scheduler struct {
	next    Handle
	pending map[Handle]*entry
}

type entry struct {
	kind      Kind
	remaining int
	total     int
	fire      func()
}

func NewScheduler() *Scheduler {
	return &Scheduler{pending: map[Handle]*entry{}}
}

// After schedules fire to run once ticks have elapsed. ticks <= 0 fires on
// the next Tick.
func (s *Scheduler) After(kind Kind, ticks int, fire func()) Handle {
	if ticks < 0 {
		ticks = 0
	}
	s.next++
	s.pending[s.next] = &entry{kind: kind, remaining: ticks, total: ticks, fire: fire}
	return s.next
}

// Cancel removes a pending entry. It reports whether the entry was still
// pending; a fired or already-cancelled handle is a no-op.
func (s *Scheduler) Cancel(h Handle) bool {
	if _, ok := s.pending[h]; !ok {
		return false
	}
	delete(s.pending, h)
	return true
}

func (s *Scheduler) Pending(h Handle) bool {
	_, ok := s.pending[h]
	return ok
}

// Progress reports elapsed/total for a pending entry, in [0,1]. Zero-length
// timers report 1.
func (s *Scheduler) Progress(h Handle) (float64, bool) {
	e, ok := s.pending[h]
	if !ok {
		return 0, false
	}
	if e.total == 0 {
		return 1, true
	}
	return float64(e.total-e.remaining) / float64(e.total), true
}

func (s *Scheduler) Remaining(h Handle) int {
	e, ok := s.pending[h]
	if !ok {
		return 0
	}
	return e.remaining
}

// Tick advances every pending entry by one tick and fires the due ones in
// handle order. Continuations scheduled by a firing entry run on a later
// tick, never the current one.
func (s *Scheduler) Tick() {
	var due []Handle
	for h, e := range s.pending {
		if e.remaining > 0 {
			e.remaining--
		}
		if e.remaining <= 0 {
			due = append(due, h)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i] < due[j] })
	for _, h := range due {
		e, ok := s.pending[h]
		if !ok {
			// Cancelled by an earlier continuation on this tick.
			continue
		}
		delete(s.pending, h)
		e.fire()
	}
}

func (s *Scheduler) Len() int { return len(s.pending) }
