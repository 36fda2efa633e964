// Package frame provides the display-refresh scheduling primitive.
//
// Callbacks requested during frame N run exactly once at the start of frame
// N+1, in request order. Nothing ticks unless the host runs frames.
package frame

// Scheduler queues callbacks for the next frame.
//
// It is not safe for concurrent use; all calls must come from the frame loop.
type Scheduler struct {
	frame   uint64
	pending []func(uint64)
	spare   []func(uint64)
}

// New creates an idle scheduler at frame 0.
func New() *Scheduler {
	return &Scheduler{}
}

// RequestFrame queues fn for the next frame. It never runs fn inline.
func (s *Scheduler) RequestFrame(fn func(frame uint64)) {
	if fn == nil {
		return
	}
	s.pending = append(s.pending, fn)
}

// RunFrame advances to the next frame and runs the callbacks queued before
// the call. Callbacks queued while running are deferred to the following
// frame. It returns the number of callbacks run.
func (s *Scheduler) RunFrame() int {
	s.frame++
	run := s.pending
	s.pending = s.spare[:0]
	for i, fn := range run {
		fn(s.frame)
		run[i] = nil
	}
	s.spare = run[:0]
	return len(run)
}

// Frame returns the number of frames run so far.
func (s *Scheduler) Frame() uint64 { return s.frame }

// Pending returns the number of callbacks waiting for the next frame.
func (s *Scheduler) Pending() int { return len(s.pending) }
