package storage

import "github.com/vovakirdan/tui-invaders/internal/core"

// Frame is an input change: from Tick onward the held actions are Mask,
// until the next frame.
type Frame struct {
	Tick int64
	Mask uint8
}

// Recorder collects the input of a live session as a list of changes.
type Recorder struct {
	frames  []Frame
	last    uint8
	started bool
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record notes the input used on a tick. Ticks must be increasing.
// Only changes are kept.
func (r *Recorder) Record(tick int64, in core.InputFrame) {
	mask := in.Mask()
	if r.started && mask == r.last {
		return
	}
	r.frames = append(r.frames, Frame{Tick: tick, Mask: mask})
	r.last = mask
	r.started = true
}

// Frames returns the recorded changes.
func (r *Recorder) Frames() []Frame {
	out := make([]Frame, len(r.frames))
	copy(out, r.frames)
	return out
}

// Player feeds recorded input back tick by tick.
type Player struct {
	frames  []Frame
	next    int
	current core.InputFrame
}

// NewPlayer creates a player over frames sorted by tick.
func NewPlayer(frames []Frame) *Player {
	return &Player{frames: frames, current: core.NewInputFrame()}
}

// Frame returns the input held on tick. Ticks must be requested in
// increasing order.
func (p *Player) Frame(tick int64) core.InputFrame {
	for p.next < len(p.frames) && p.frames[p.next].Tick <= tick {
		p.current = core.FrameFromMask(p.frames[p.next].Mask)
		p.next++
	}
	return p.current.Clone()
}

// Done reports whether every recorded change has been played.
func (p *Player) Done() bool {
	return p.next >= len(p.frames)
}
