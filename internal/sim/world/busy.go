package world

import (
	"frontiercraft.ai/internal/sim/tasks"
	"frontiercraft.ai/internal/sim/world/kernel/model"
)

// TriggerBusy wraps an effect in a busy window: the actor is busy until the
// continuation fires. Returns false (and schedules nothing) when the actor
// is already busy.
func (w *World) TriggerBusy(a *model.Actor, ticks int, cancelable bool, onComplete func()) bool {
	return w.triggerBusy(a, ticks, cancelable, false, onComplete)
}

// TriggerProgressBusy is TriggerBusy with progress exposed for presentation.
func (w *World) TriggerProgressBusy(a *model.Actor, ticks int, cancelable bool, onComplete func()) bool {
	return w.triggerBusy(a, ticks, cancelable, true, onComplete)
}

func (w *World) triggerBusy(a *model.Actor, ticks int, cancelable, progress bool, onComplete func()) bool {
	if w.IsBusy(a) {
		return false
	}
	a.BusyCancelable = cancelable
	a.BusyProgress = progress
	a.BusyTask = w.sched.After(tasks.KindBusy, ticks, func() {
		a.BusyTask = 0
		onComplete()
	})
	return true
}

func (w *World) IsBusy(a *model.Actor) bool {
	return a.BusyTask != 0 && w.sched.Pending(a.BusyTask)
}

// CancelBusy stops the pending continuation if the busy action was declared
// cancelable; the effect never fires, so inventory stays untouched.
func (w *World) CancelBusy(a *model.Actor) bool {
	if !w.IsBusy(a) || !a.BusyCancelable {
		return false
	}
	w.sched.Cancel(a.BusyTask)
	a.BusyTask = 0
	return true
}

func (w *World) BusyProgress(a *model.Actor) (float64, bool) {
	if !w.IsBusy(a) || !a.BusyProgress {
		return 0, false
	}
	return w.sched.Progress(a.BusyTask)
}
