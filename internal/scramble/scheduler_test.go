package scramble

import (
	"context"
	"math/rand/v2"
	"reflect"
	"sync"
	"testing"
	"time"
)

// manualScheduler runs queued frames only when the test says so.
type manualScheduler struct {
	queue  []func()
	after  []time.Duration
	frames int
}

func (m *manualScheduler) RequestFrame(fn func()) {
	m.queue = append(m.queue, fn)
}

func (m *manualScheduler) After(d time.Duration, fn func()) {
	m.after = append(m.after, d)
	m.queue = append(m.queue, fn)
}

func (m *manualScheduler) tick() bool {
	if len(m.queue) == 0 {
		return false
	}
	batch := m.queue
	m.queue = nil
	m.frames++
	for _, fn := range batch {
		fn()
	}
	return true
}

func (m *manualScheduler) drain(t *testing.T) {
	t.Helper()
	for m.tick() {
		if m.frames > 10000 {
			t.Fatalf("scheduler never went idle")
		}
	}
}

func TestReveal_DrivesJobToCompletion(t *testing.T) {
	e := New(WithRand(rand.New(rand.NewPCG(5, 6))))
	s := &manualScheduler{}

	var frames []string
	Reveal(e, s, "home", "HOME", func(id, text string) {
		if id != "home" {
			t.Fatalf("onFrame id = %q", id)
		}
		frames = append(frames, text)
	})
	s.drain(t)

	if len(frames) != DefaultTotalFrames+1 {
		t.Fatalf("observed %d frames, want %d", len(frames), DefaultTotalFrames+1)
	}
	if frames[len(frames)-1] != "HOME" {
		t.Fatalf("last frame = %q, want HOME", frames[len(frames)-1])
	}
	if s.frames != DefaultTotalFrames {
		t.Fatalf("scheduler ran %d frames, want %d", s.frames, DefaultTotalFrames)
	}
}

func TestReveal_RestartDropsStaleCallbacks(t *testing.T) {
	e := New(WithRand(rand.New(rand.NewPCG(7, 8))))
	s := &manualScheduler{}

	first := 0
	Reveal(e, s, "about", "ABOUT", func(string, string) { first++ })
	s.tick()
	s.tick()

	second := 0
	Reveal(e, s, "about", "ABOUT", func(string, string) { second++ })
	s.drain(t)

	if first != 3 {
		t.Fatalf("superseded reveal observed %d frames after restart, want 3 in total", first)
	}
	if second != DefaultTotalFrames+1 {
		t.Fatalf("second reveal observed %d frames, want %d", second, DefaultTotalFrames+1)
	}
	if got, _ := e.Display("about"); got != "ABOUT" {
		t.Fatalf("Display = %q", got)
	}
}

func TestReveal_CancelStopsRequestingFrames(t *testing.T) {
	e := New()
	s := &manualScheduler{}
	Reveal(e, s, "nav", "STORE", nil)
	s.tick()
	e.Cancel("nav")
	s.drain(t)
	if e.Frame("nav") != 1 {
		t.Fatalf("Frame = %d, want 1 after cancel", e.Frame("nav"))
	}
}

func TestReveal_EmptyTargetSchedulesNothing(t *testing.T) {
	e := New()
	s := &manualScheduler{}
	var seen []string
	Reveal(e, s, "blank", "", func(_, text string) { seen = append(seen, text) })
	if len(s.queue) != 0 {
		t.Fatalf("empty target should not request frames")
	}
	if !reflect.DeepEqual(seen, []string{""}) {
		t.Fatalf("seen = %q", seen)
	}
}

func TestStaggerPlan(t *testing.T) {
	labels := []Label{{"home", "HOME"}, {"about", "ABOUT"}, {"store", "STORE"}}
	plan := StaggerPlan(labels, 100*time.Millisecond)
	want := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}
	for i, item := range plan {
		if item.Delay != want[i] || item.Label != labels[i] {
			t.Fatalf("plan[%d] = %+v", i, item)
		}
	}
	for _, item := range StaggerPlan(labels, -time.Second) {
		if item.Delay != 0 {
			t.Fatalf("negative delay should clamp to zero, got %v", item.Delay)
		}
	}
}

func TestStagger_UsesAfterOffsets(t *testing.T) {
	e := New()
	s := &manualScheduler{}
	labels := []Label{{"discord", "DISCORD"}, {"instagram", "INSTAGRAM"}}
	done := map[string]string{}
	Stagger(e, s, labels, 50*time.Millisecond, func(id, text string) { done[id] = text })
	if !reflect.DeepEqual(s.after, []time.Duration{0, 50 * time.Millisecond}) {
		t.Fatalf("After offsets = %v", s.after)
	}
	s.drain(t)
	if done["discord"] != "DISCORD" || done["instagram"] != "INSTAGRAM" {
		t.Fatalf("final frames = %v", done)
	}
}

func TestFrameLoop_RevealsOnLoopGoroutine(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	loop := NewFrameLoop(time.Millisecond)
	go loop.Run(ctx)

	e := New()
	var (
		mu    sync.Mutex
		texts []string
	)
	finished := make(chan struct{})
	loop.Do(func() {
		Stagger(e, loop, []Label{{"a", "HOME"}, {"b", "STORE"}}, 2*time.Millisecond, func(id, text string) {
			mu.Lock()
			texts = append(texts, id+":"+text)
			mu.Unlock()
			if id == "b" && !e.Active("b") && text == "STORE" {
				close(finished)
			}
		})
	})

	select {
	case <-finished:
	case <-ctx.Done():
		t.Fatalf("reveal did not finish in time")
	}

	mu.Lock()
	defer mu.Unlock()
	sawHome := false
	for _, s := range texts {
		if s == "a:HOME" {
			sawHome = true
		}
	}
	if !sawHome {
		t.Fatalf("label a never settled: %v", texts)
	}
}

func TestNewFrameLoop_DefaultInterval(t *testing.T) {
	if l := NewFrameLoop(0); l.interval != DefaultFrameInterval {
		t.Fatalf("interval = %v", l.interval)
	}
}

func TestFrameLoop_DoAfterRunReturns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	loop := NewFrameLoop(time.Millisecond)
	stopped := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	select {
	case <-loop.Done():
	default:
		t.Fatal("Done should be closed after Run returns")
	}

	// Fill the post queue so a blocking send would hang.
	for range cap(loop.posted) {
		loop.posted <- func() {}
	}

	result := make(chan bool, 1)
	go func() { result <- loop.Do(func() {}) }()
	select {
	case queued := <-result:
		if queued {
			t.Fatal("Do queued work on a stopped loop")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Do blocked on a stopped loop")
	}
}
