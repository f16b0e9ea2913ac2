// Package scramble animates labels from random glyphs into their final text.
//
// Each label id owns at most one job. Starting a label again supersedes the
// running job: the generation counter in its Ticket moves on, so frames that
// were already scheduled for the old job turn into no-ops. Jobs for different
// ids never interact.
//
// The Engine itself is not safe for concurrent use. Hosts drive it from one
// goroutine, either the Bubble Tea update loop or a FrameLoop.
package scramble

import (
	"math/rand/v2"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultTotalFrames is the number of frames a reveal takes.
	DefaultTotalFrames = 15
	// DefaultAlphabet is the glyph set unresolved positions are drawn from.
	DefaultAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	placeholderGlyph = "—"
)

// Ticket identifies one started job. It goes stale as soon as the same id is
// started again.
type Ticket struct {
	ID  string
	Gen uint64
}

type job struct {
	target  []rune
	frame   int
	display string
	gen     uint64
	active  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithTotalFrames sets the reveal length. Values below one are ignored.
func WithTotalFrames(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.total = n
		}
	}
}

// WithAlphabet sets the glyphs used for unresolved positions.
func WithAlphabet(alphabet string) Option {
	return func(e *Engine) {
		if alphabet != "" {
			e.alphabet = []rune(alphabet)
		}
	}
}

// WithRand injects the random source, mostly for tests.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rand = r
		}
	}
}

// Engine tracks one scramble job per label id.
type Engine struct {
	total    int
	alphabet []rune
	rand     *rand.Rand
	jobs     map[string]*job
}

// New returns an engine with 15 frames over A-Z unless overridden.
func New(opts ...Option) *Engine {
	e := &Engine{
		total:    DefaultTotalFrames,
		alphabet: []rune(DefaultAlphabet),
		rand:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		jobs:     make(map[string]*job),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TotalFrames returns the configured reveal length.
func (e *Engine) TotalFrames() int {
	return e.total
}

// Start begins revealing target under id, replacing any job already running
// for that id, and renders frame zero. An empty target completes at once.
func (e *Engine) Start(id, target string) Ticket {
	j, ok := e.jobs[id]
	if !ok {
		j = &job{}
		e.jobs[id] = j
	}
	j.gen++
	j.target = []rune(target)
	j.frame = 0
	j.active = len(j.target) > 0
	e.render(j)
	return Ticket{ID: id, Gen: j.gen}
}

// Step advances the job behind t by one frame. It reports whether more
// frames remain; a stale, cancelled or finished ticket does nothing and
// returns false.
func (e *Engine) Step(t Ticket) bool {
	j, ok := e.jobs[t.ID]
	if !ok || j.gen != t.Gen || !j.active {
		return false
	}
	j.frame++
	if j.frame >= e.total {
		j.frame = e.total
		j.active = false
	}
	e.render(j)
	return j.active
}

// Current reports whether t still names the live job for its id.
func (e *Engine) Current(t Ticket) bool {
	j, ok := e.jobs[t.ID]
	return ok && j.gen == t.Gen && j.active
}

// Cancel stops the job for id and keeps whatever text it last showed.
func (e *Engine) Cancel(id string) {
	if j, ok := e.jobs[id]; ok {
		j.active = false
	}
}

// Display returns the current text for id.
func (e *Engine) Display(id string) (string, bool) {
	j, ok := e.jobs[id]
	if !ok {
		return "", false
	}
	return j.display, true
}

// DisplayOr returns the current text for id, or the placeholder for fallback
// when id was never started.
func (e *Engine) DisplayOr(id, fallback string) string {
	if text, ok := e.Display(id); ok {
		return text
	}
	return Placeholder(fallback)
}

// Active reports whether id still has frames to render.
func (e *Engine) Active(id string) bool {
	j, ok := e.jobs[id]
	return ok && j.active
}

// Frame returns the frame index of the job for id.
func (e *Engine) Frame(id string) int {
	if j, ok := e.jobs[id]; ok {
		return j.frame
	}
	return 0
}

// Resolved returns how many leading runes of an n-rune target are settled
// at frame.
func Resolved(frame, total, n int) int {
	if total <= 0 || frame >= total {
		return n
	}
	if frame <= 0 {
		return 0
	}
	return frame * n / total
}

func (e *Engine) render(j *job) {
	n := len(j.target)
	if j.frame >= e.total {
		j.display = string(j.target)
		return
	}
	resolved := Resolved(j.frame, e.total, n)
	var b strings.Builder
	b.Grow(n * utf8.UTFMax)
	for i, r := range j.target {
		if i < resolved {
			b.WriteRune(r)
			continue
		}
		b.WriteRune(e.alphabet[e.rand.IntN(len(e.alphabet))])
	}
	j.display = b.String()
}

// Placeholder is the text shown for a label that has never been revealed:
// one dash per rune of target.
func Placeholder(target string) string {
	return strings.Repeat(placeholderGlyph, utf8.RuneCountInString(target))
}
