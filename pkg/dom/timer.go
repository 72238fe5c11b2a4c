package dom

import "time"

// Timer is a deferred callback created by SetTimeout.
type Timer struct {
	id    int
	delay time.Duration
	due   time.Duration
	fn    func()
	doc   *Document
	done  bool
}

// ID identifies the timer within its document.
func (t *Timer) ID() int { return t.id }

// Delay returns the delay the timer was scheduled with.
func (t *Timer) Delay() time.Duration { return t.delay }

// Stop cancels the timer. It returns false if the timer already fired or
// was stopped.
func (t *Timer) Stop() bool {
	if t == nil || t.done {
		return false
	}
	t.done = true
	t.doc.dropTimer(t)
	return true
}

// SetTimeout schedules fn to run once after delay. The callback runs as its
// own task, followed by a flush.
func (d *Document) SetTimeout(delay time.Duration, fn func()) *Timer {
	if delay < 0 {
		delay = 0
	}
	d.nextTimer++
	t := &Timer{id: d.nextTimer, delay: delay, due: d.now + delay, fn: fn, doc: d}
	d.timers = append(d.timers, t)
	if d.onSchedule != nil {
		d.onSchedule(t)
	}
	return t
}

// OnSchedule registers a hook told about every new timer. Hosts use it to
// turn timers into real clock ticks and call Fire when they elapse.
func (d *Document) OnSchedule(hook func(*Timer)) {
	d.onSchedule = hook
}

// Fire runs the pending timer with the given id now. It returns false when
// no such timer is pending.
func (d *Document) Fire(id int) bool {
	for _, t := range d.timers {
		if t.id == id {
			d.run(t)
			return true
		}
	}
	return false
}

// Advance moves the document clock forward, running every timer that falls
// due in deadline order.
func (d *Document) Advance(elapsed time.Duration) {
	target := d.now + elapsed
	for {
		next := d.nextDue(target)
		if next == nil {
			break
		}
		if next.due > d.now {
			d.now = next.due
		}
		d.run(next)
	}
	d.now = target
}

// PendingTimers returns the number of timers that have not fired.
func (d *Document) PendingTimers() int {
	return len(d.timers)
}

func (d *Document) nextDue(limit time.Duration) *Timer {
	var best *Timer
	for _, t := range d.timers {
		if t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.id < best.id) {
			best = t
		}
	}
	return best
}

func (d *Document) run(t *Timer) {
	t.done = true
	d.dropTimer(t)
	t.fn()
	d.Flush()
}

func (d *Document) dropTimer(t *Timer) {
	for i, x := range d.timers {
		if x == t {
			d.timers = append(d.timers[:i:i], d.timers[i+1:]...)
			return
		}
	}
}
