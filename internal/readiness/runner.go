package readiness

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Listener receives phase changes from a Runner. Calls come from the
// runner's goroutine.
type Listener interface {
	PhaseChanged(phase Phase, outcome Outcome)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(phase Phase, outcome Outcome)

// PhaseChanged calls f.
func (f ListenerFunc) PhaseChanged(phase Phase, outcome Outcome) {
	f(phase, outcome)
}

// Runner runs the readiness check as a fire-once background task.
type Runner struct {
	checker *Checker
	grace   time.Duration

	mu       sync.Mutex
	listener Listener

	once   sync.Once
	alive  atomic.Bool
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRunner creates a runner that checks with checker and, after a
// "generated" result, waits grace before completing. The check is bound to
// ctx; cancelling it has the same effect as Stop.
func NewRunner(ctx context.Context, checker *Checker, grace time.Duration) *Runner {
	ctx, cancel := context.WithCancel(ctx)
	r := &Runner{
		checker: checker,
		grace:   grace,
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	r.alive.Store(true)
	return r
}

// SetListener sets where phase changes go. Call before Start.
func (r *Runner) SetListener(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listener = l
}

// Start launches the check. Only the first call has any effect.
func (r *Runner) Start() {
	r.once.Do(func() {
		go r.run()
	})
}

// Stop tears the runner down. Phase changes not yet delivered are dropped.
// Safe to call more than once, and before Start.
func (r *Runner) Stop() {
	r.alive.Store(false)
	r.cancel()
}

// Done is closed once a started check has settled or been stopped.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Wait starts the runner if needed and blocks until it settles or ctx ends.
func (r *Runner) Wait(ctx context.Context) error {
	r.Start()
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		r.Stop()
		return ctx.Err()
	}
}

func (r *Runner) run() {
	defer close(r.done)

	outcome := r.checker.Check(r.ctx)

	if outcome.Next() == PhaseGenerating {
		r.dispatch(PhaseGenerating, outcome)
		if !r.sleep(r.grace) {
			return
		}
	}

	r.dispatch(PhaseComplete, outcome)
}

// sleep waits d, returning false if the runner was stopped first.
func (r *Runner) sleep(d time.Duration) bool {
	if d <= 0 {
		return r.ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-r.ctx.Done():
		return false
	}
}

func (r *Runner) dispatch(phase Phase, outcome Outcome) {
	if !r.alive.Load() {
		return
	}
	r.mu.Lock()
	l := r.listener
	r.mu.Unlock()
	if l != nil {
		l.PhaseChanged(phase, outcome)
	}
}
