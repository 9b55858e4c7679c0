package clock

// FrameID identifies a pending frame request. The zero value is never issued.
type FrameID uint64

type frameRequest struct {
	id FrameID
	fn func()
}

// Frames is an explicit "run this on the next frame" scheduler.
// Callbacks requested while a step is running are deferred to the following
// step, so a callback that re-requests itself runs exactly once per frame.
type Frames struct {
	nextID  FrameID
	queue   []frameRequest
	running []frameRequest
}

// NewFrames creates an empty frame scheduler.
func NewFrames() *Frames {
	return &Frames{}
}

// RequestFrame queues fn for the next Step.
func (f *Frames) RequestFrame(fn func()) FrameID {
	f.nextID++
	f.queue = append(f.queue, frameRequest{id: f.nextID, fn: fn})
	return f.nextID
}

// CancelFrame drops a pending request. Cancelling a request that already ran
// is a no-op.
func (f *Frames) CancelFrame(id FrameID) {
	if id == 0 {
		return
	}
	for i, req := range f.queue {
		if req.id == id {
			f.queue = append(f.queue[:i], f.queue[i+1:]...)
			return
		}
	}
	// The request may belong to the step currently running.
	for i := range f.running {
		if f.running[i].id == id {
			f.running[i].fn = nil
			return
		}
	}
}

// Pending returns the number of requests waiting for the next Step.
func (f *Frames) Pending() int {
	return len(f.queue)
}

// Step runs every callback requested before this call and returns how many ran.
func (f *Frames) Step() int {
	f.running, f.queue = f.queue, f.running[:0]
	ran := 0
	for i := range f.running {
		fn := f.running[i].fn
		if fn == nil {
			continue
		}
		fn()
		ran++
	}
	f.running = f.running[:0]
	return ran
}
