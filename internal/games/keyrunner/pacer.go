package keyrunner

import (
	"context"
	"sync"
	"time"
)

// Pacer calls a function on a fixed interval from its own goroutine. Hosts
// without a frame loop use it to schedule Session.Tick.
//
// Stop returns only after the goroutine has exited, so fn never runs after
// Stop returns. Every Start creates a new handle; a stopped handle is never
// resumed.
type Pacer struct {
	mu       sync.Mutex
	interval time.Duration
	fn       func()

	cancel context.CancelFunc
	done     chan struct{}
	gen      uint64
	reset    chan time.Duration
}

// NewPacer creates a stopped pacer.
func NewPacer(interval time.Duration, fn func()) *Pacer {
	if interval <= 0 {
		interval = time.Second
	}
	return &Pacer{interval: interval, fn: fn}
}

// Start begins calling fn every interval until ctx is done or Stop is called.
// A running pacer is stopped first.
func (p *Pacer) Start(ctx context.Context) {
	p.Stop()

	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	reset := make(chan time.Duration, 1)
	p.cancel = cancel
	p.done = done
	p.reset = reset
	p.gen++

	go p.run(runCtx, p.interval, reset, done)
}

func (p *Pacer) run(ctx context.Context, interval time.Duration, reset <-chan time.Duration, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case iv := <-reset:
			ticker.Reset(iv)
		case <-ticker.C:
			// Stop may have raced the tick.
			if ctx.Err() != nil {
				return
			}
			p.fn()
		}
	}
}

// Stop cancels the current run and waits for it to exit. Safe to call when
// the pacer is not running.
func (p *Pacer) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done, p.reset = nil, nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether a run is active.
func (p *Pacer) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done == nil {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// SetInterval changes the cadence. A running pacer picks it up on its next
// wake-up.
func (p *Pacer) SetInterval(iv time.Duration) {
	if iv <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if iv == p.interval {
		return
	}
	p.interval = iv
	if p.reset == nil {
		return
	}
	// Keep only the newest request.
	select {
	case <-p.reset:
	default:
	}
	p.reset <- iv
}

// Interval returns the configured cadence.
func (p *Pacer) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

// Generation counts Start calls; each run gets a new value.
func (p *Pacer) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen
}
