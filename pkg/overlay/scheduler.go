package overlay

import (
	"sync"
	"time"

	overlayerrors "github.com/go-drift/studio/pkg/errors"
	"github.com/go-drift/studio/pkg/geometry"
)

// DefaultCollisionDelay is how long a CollisionPass waits for the host to
// finish layout before measuring.
const DefaultCollisionDelay = 100 * time.Millisecond

// Timer is a pending callback that can be stopped.
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or was stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemScheduler schedules callbacks with time.AfterFunc.
var SystemScheduler Scheduler = systemScheduler{}

// MeasureFunc reports the container bounds and the measured bounds of each
// rendered widget, keyed by id, in one coordinate space.
type MeasureFunc func() (container geometry.Rect, widgets map[string]geometry.Rect)

// CollisionPass runs DetectCollisions once the host has laid out its widgets.
// Each Schedule supersedes the previous one; a pass that was superseded,
// cancelled or closed before it fires, or while it measures, never calls
// Apply.
//
// Timer callbacks arrive on their own goroutine. Set Dispatch to marshal the
// measurement and Apply onto the host's UI thread.
type CollisionPass struct {
	// Delay defaults to DefaultCollisionDelay.
	Delay time.Duration
	// Scheduler defaults to SystemScheduler.
	Scheduler Scheduler
	// Dispatch runs f on the host's UI thread. Nil runs it inline.
	Dispatch func(f func())
	Measure  MeasureFunc
	Apply    func(CollisionResult)

	mu      sync.Mutex
	gen     uint64
	timer   Timer
	pending bool
	closed  bool
}

// Schedule arms a pass for cfg, cancelling any pass already pending. It
// returns false when the pass is closed or has no Measure or Apply hook.
func (p *CollisionPass) Schedule(cfg Configuration) bool {
	if p.Measure == nil || p.Apply == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	p.stopLocked()
	p.gen++
	gen := p.gen
	cfg = cfg.Clone()

	delay := p.Delay
	if delay <= 0 {
		delay = DefaultCollisionDelay
	}
	sched := p.Scheduler
	if sched == nil {
		sched = SystemScheduler
	}
	p.pending = true
	p.timer = sched.AfterFunc(delay, func() { p.fire(gen, cfg) })
	return true
}

// Cancel drops the pending pass, if any.
func (p *CollisionPass) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.gen++
}

// Close cancels the pending pass and rejects further scheduling. Call it
// when the container is torn down.
func (p *CollisionPass) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.gen++
	p.closed = true
}

// Pending reports whether a pass is armed and has not started.
func (p *CollisionPass) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending
}

func (p *CollisionPass) stopLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.pending = false
}

// current reports whether gen is still the live pass. With claim set it also
// marks the pass as started.
func (p *CollisionPass) current(gen uint64, claim bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.gen != gen {
		return false
	}
	if claim {
		p.pending = false
		p.timer = nil
	}
	return true
}

func (p *CollisionPass) fire(gen uint64, cfg Configuration) {
	run := func() {
		defer overlayerrors.Recover("overlay.CollisionPass")
		if !p.current(gen, true) {
			return
		}
		container, measured := p.Measure()
		res := DetectCollisions(cfg, container, measured)
		if !p.current(gen, false) {
			return
		}
		p.Apply(res)
	}
	if p.Dispatch != nil {
		p.Dispatch(run)
		return
	}
	run()
}
