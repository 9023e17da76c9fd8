package engine

import (
	"sync"
	"time"
)

// DefaultInterval is the delay between automatic steps
const DefaultInterval = 100 * time.Millisecond

// Scheduler runs fn once after delay. Hosts decide which goroutine fn runs on.
type Scheduler interface {
	Schedule(delay time.Duration, fn func())
}

// Renderer redraws the board after every tick
type Renderer interface {
	Render(v View)
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(v View)

func (f RendererFunc) Render(v View) { f(v) }

// Loop drives an Engine: each tick evolves (unless paused) and redraws, then
// schedules the next tick through the host's Scheduler.
type Loop struct {
	engine   *Engine
	interval time.Duration
	renderer Renderer
	onStep   func(e *Engine)

	mu        sync.Mutex
	scheduler Scheduler
	running   bool
	epoch     uint64
}

// NewLoop binds a loop to e. A non-positive interval means DefaultInterval.
func NewLoop(e *Engine, interval time.Duration, r Renderer) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Loop{engine: e, interval: interval, renderer: r}
}

// OnStep registers fn to run after every computed generation
func (l *Loop) OnStep(fn func(e *Engine)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onStep = fn
}

func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Tick evolves unless paused, runs the OnStep hook, then redraws.
// It reports whether a generation was computed.
func (l *Loop) Tick() bool {
	stepped := l.engine.autoStep()

	l.mu.Lock()
	onStep := l.onStep
	l.mu.Unlock()
	if stepped && onStep != nil {
		onStep(l.engine)
	}

	if l.renderer != nil {
		l.renderer.Render(l.engine)
	}
	return stepped
}

// Start ticks now and keeps rescheduling on s until Stop. Starting a running loop does nothing.
func (l *Loop) Start(s Scheduler) {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return
	}
	l.running = true
	l.scheduler = s
	l.epoch++
	epoch := l.epoch
	l.mu.Unlock()

	l.run(epoch)
}

// Stop ends the loop. Callbacks already handed to the scheduler become no-ops.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.running = false
	l.epoch++
}

// Running reports whether the loop is rescheduling itself
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

func (l *Loop) current(epoch uint64) (Scheduler, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.scheduler, l.running && l.epoch == epoch
}

func (l *Loop) run(epoch uint64) {
	if _, ok := l.current(epoch); !ok {
		return
	}
	l.Tick()

	s, ok := l.current(epoch)
	if !ok {
		return
	}
	s.Schedule(l.interval, func() { l.run(epoch) })
}
