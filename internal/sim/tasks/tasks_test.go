package tasks

import "testing"

func TestAfterFiresAfterTicks(t *testing.T) {
	s := NewScheduler()
	fired := 0
	h := s.After(KindCraft, 3, func() { fired++ })

	for i := 0; i < 2; i++ {
		s.Tick()
		if fired != 0 {
			t.Fatalf("fired early at tick %d", i+1)
		}
	}
	if p, ok := s.Progress(h); !ok || p <= 0 {
		t.Fatalf("progress=%v ok=%v", p, ok)
	}
	s.Tick()
	if fired != 1 {
		t.Fatalf("fired=%d want 1", fired)
	}
	if s.Pending(h) {
		t.Fatalf("handle still pending after fire")
	}
}

func TestZeroTicksFiresNextTick(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.After(KindBusy, 0, func() { fired = true })
	if fired {
		t.Fatalf("fired synchronously")
	}
	s.Tick()
	if !fired {
		t.Fatalf("did not fire on next tick")
	}
}

func TestCancelPreventsFire(t *testing.T) {
	s := NewScheduler()
	fired := false
	h := s.After(KindCraft, 2, func() { fired = true })
	if !s.Cancel(h) {
		t.Fatalf("cancel returned false for pending handle")
	}
	if s.Cancel(h) {
		t.Fatalf("second cancel should be a no-op")
	}
	s.Tick()
	s.Tick()
	s.Tick()
	if fired {
		t.Fatalf("fired after cancel")
	}
}

func TestDueEntriesFireInHandleOrder(t *testing.T) {
	s := NewScheduler()
	var order []int
	s.After(KindCraft, 1, func() { order = append(order, 1) })
	s.After(KindCraft, 1, func() { order = append(order, 2) })
	s.After(KindBusy, 1, func() { order = append(order, 3) })
	s.Tick()
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("fire order = %v", order)
	}
}

func TestContinuationCanCancelLaterDueEntry(t *testing.T) {
	s := NewScheduler()
	fired := false
	var victim Handle
	s.After(KindCraft, 1, func() { s.Cancel(victim) })
	victim = s.After(KindCraft, 1, func() { fired = true })
	s.Tick()
	if fired {
		t.Fatalf("cancelled entry fired on the same tick")
	}
}

func TestRescheduleFromContinuationRunsLaterTick(t *testing.T) {
	s := NewScheduler()
	second := false
	s.After(KindBusy, 1, func() {
		s.After(KindBusy, 1, func() { second = true })
	})
	s.Tick()
	if second {
		t.Fatalf("chained continuation fired on the scheduling tick")
	}
	s.Tick()
	if !second {
		t.Fatalf("chained continuation never fired")
	}
	if s.Len() != 0 {
		t.Fatalf("pending=%d want 0", s.Len())
	}
}

func TestRemaining(t *testing.T) {
	s := NewScheduler()
	h := s.After(KindCraft, 5, func() {})
	if got := s.Remaining(h); got != 5 {
		t.Fatalf("remaining=%d want 5", got)
	}
	s.Tick()
	s.Tick()
	if got := s.Remaining(h); got != 3 {
		t.Fatalf("remaining=%d want 3", got)
	}
}
