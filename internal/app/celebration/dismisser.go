// Package celebration clears the engine's celebration flag after the UI has
// had time to show it.
package celebration

import (
	"context"
	"sync"
	"time"

	"github.com/PabloGalante/fillyourcup/internal/app/cup"
)

// DefaultDelay matches how long the celebration overlay stays on screen.
const DefaultDelay = 1200 * time.Millisecond

// Engine is the part of cup.Engine the dismisser needs.
type Engine interface {
	Subscribe(fn func(cup.Snapshot)) (cancel func())
	ClearCelebration(ctx context.Context) bool
}

// Dismisser arms a timer whenever a snapshot shows the celebration flag.
// A newer celebration restarts the timer, so rapid completions keep the
// overlay up until delay has passed since the last one.
type Dismisser struct {
	engine Engine
	delay  time.Duration

	mu          sync.Mutex
	timer       *time.Timer
	generation  uint64
	lastDone    int
	stopped     bool
	unsubscribe func()
}

func NewDismisser(engine Engine, delay time.Duration) *Dismisser {
	if delay <= 0 {
		delay = DefaultDelay
	}
	d := &Dismisser{engine: engine, delay: delay}
	d.unsubscribe = engine.Subscribe(d.onChange)
	return d
}

func (d *Dismisser) onChange(s cup.Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Only a new completion arms the timer; other changes made while the
	// overlay is up must not extend it.
	if d.stopped || !s.ShowCelebration || s.CompletedCount <= d.lastDone {
		return
	}
	d.lastDone = s.CompletedCount

	if d.timer != nil {
		d.timer.Stop()
	}
	d.generation++
	gen := d.generation
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// fire ignores timers that were superseded after they had already started.
func (d *Dismisser) fire(gen uint64) {
	d.mu.Lock()
	current := !d.stopped && gen == d.generation
	d.mu.Unlock()
	if !current {
		return
	}
	d.engine.ClearCelebration(context.Background())
}

// Stop unsubscribes and cancels a pending timer.
func (d *Dismisser) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.unsubscribe()
}
