package game

// task is a one-shot callback due after Delay seconds of simulation time.
type task struct {
	Delay float64
	Fn    func()
}

// taskQueue runs deferred callbacks between frames.
type taskQueue struct {
	pending []task
	due     []func()
}

// After schedules fn to run once delay seconds of simulation time have passed.
func (q *taskQueue) After(delay float64, fn func()) {
	q.pending = append(q.pending, task{Delay: delay, Fn: fn})
}

// Drain ages every task by dt and runs those that came due. Tasks scheduled
// by a running callback wait for the next drain.
func (q *taskQueue) Drain(dt float64) {
	if len(q.pending) == 0 {
		return
	}
	out := q.pending[:0]
	for _, t := range q.pending {
		t.Delay -= dt
		if t.Delay <= 0 {
			q.due = append(q.due, t.Fn)
			continue
		}
		out = append(out, t)
	}
	clear(q.pending[len(out):])
	q.pending = out

	due := q.due
	q.due = q.due[:0]
	for i, fn := range due {
		fn()
		due[i] = nil
	}
}

func (q *taskQueue) Len() int { return len(q.pending) }

func (q *taskQueue) Clear() {
	clear(q.pending)
	q.pending = q.pending[:0]
}
