package memhost

// FrameQueue is a host.FrameScheduler driven by explicit ticks.
type FrameQueue struct {
	pending []func()
	ticks   int
}

// RequestAnimationFrame queues fn for the next tick.
func (q *FrameQueue) RequestAnimationFrame(fn func()) {
	q.pending = append(q.pending, fn)
}

// Tick runs the callbacks queued before it started and returns how many ran.
// Callbacks queued while ticking run on the next tick.
func (q *FrameQueue) Tick() int {
	run := q.pending
	q.pending = nil
	q.ticks++
	for _, fn := range run {
		fn()
	}
	return len(run)
}

// Pending returns the number of queued callbacks.
func (q *FrameQueue) Pending() int { return len(q.pending) }

// Ticks returns the number of ticks run so far.
func (q *FrameQueue) Ticks() int { return q.ticks }
