package scramble

import (
	"context"
	"sync"
	"time"
)

// DefaultFrameInterval approximates one display refresh.
const DefaultFrameInterval = 16 * time.Millisecond

// FrameScheduler runs a callback once before the next frame.
type FrameScheduler interface {
	RequestFrame(fn func())
}

// DelayScheduler is a FrameScheduler that can also run work after a delay.
type DelayScheduler interface {
	FrameScheduler
	After(d time.Duration, fn func())
}

// FrameLoop is a ticker-driven FrameScheduler. Every callback runs on the
// goroutine that called Run, so an Engine driven only through the loop needs
// no locking.
type FrameLoop struct {
	interval time.Duration

	mu      sync.Mutex
	pending []func()
	posted  chan func()

	stopOnce sync.Once
	done     chan struct{}
}

// NewFrameLoop returns a loop ticking at interval, or DefaultFrameInterval
// when interval is not positive.
func NewFrameLoop(interval time.Duration) *FrameLoop {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &FrameLoop{
		interval: interval,
		posted:   make(chan func(), 64),
		done:     make(chan struct{}),
	}
}

// RequestFrame queues fn for the next tick.
func (l *FrameLoop) RequestFrame(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.pending = append(l.pending, fn)
	l.mu.Unlock()
}

// After queues fn for the first tick at least d from now.
func (l *FrameLoop) After(d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	if d <= 0 {
		l.RequestFrame(fn)
		return
	}
	time.AfterFunc(d, func() { l.RequestFrame(fn) })
}

// Do runs fn on the loop goroutine as soon as possible. It blocks while the
// post queue is full and reports false without queuing once Run has returned.
func (l *FrameLoop) Do(fn func()) bool {
	if fn == nil {
		return false
	}
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.posted <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Done is closed when Run returns.
func (l *FrameLoop) Done() <-chan struct{} {
	return l.done
}

// Run drives the loop until ctx is done. Call it once per loop.
func (l *FrameLoop) Run(ctx context.Context) {
	defer l.stopOnce.Do(func() { close(l.done) })
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.posted:
			fn()
		case <-ticker.C:
			l.drain()
		}
	}
}

// drain runs the callbacks queued before this tick. Callbacks that request
// another frame land in the next tick.
func (l *FrameLoop) drain() {
	l.mu.Lock()
	batch := l.pending
	l.pending = nil
	l.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
}

// Reveal starts target under id and keeps requesting frames until the job
// completes or is superseded. onFrame sees every rendered frame, frame zero
// included, and may be nil.
func Reveal(e *Engine, s FrameScheduler, id, target string, onFrame func(id, text string)) Ticket {
	ticket := e.Start(id, target)
	emit := func() {
		if onFrame == nil {
			return
		}
		if text, ok := e.Display(id); ok {
			onFrame(id, text)
		}
	}
	emit()

	var step func()
	step = func() {
		if !e.Current(ticket) {
			return
		}
		more := e.Step(ticket)
		emit()
		if more {
			s.RequestFrame(step)
		}
	}
	if e.Current(ticket) {
		s.RequestFrame(step)
	}
	return ticket
}

// Label is one text to reveal.
type Label struct {
	ID   string
	Text string
}

// Scheduled is a label with its start offset.
type Scheduled struct {
	Label
	Delay time.Duration
}

// StaggerPlan offsets label i by i*delay.
func StaggerPlan(labels []Label, delay time.Duration) []Scheduled {
	if delay < 0 {
		delay = 0
	}
	out := make([]Scheduled, len(labels))
	for i, l := range labels {
		out[i] = Scheduled{Label: l, Delay: time.Duration(i) * delay}
	}
	return out
}

// Stagger reveals labels one after another, delay apart.
func Stagger(e *Engine, s DelayScheduler, labels []Label, delay time.Duration, onFrame func(id, text string)) {
	for _, item := range StaggerPlan(labels, delay) {
		s.After(item.Delay, func() {
			Reveal(e, s, item.ID, item.Text, onFrame)
		})
	}
}
