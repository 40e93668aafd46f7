package remote

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/swbrowse/pkg/fp"
)

// Operation is a deferred computation resolving to either an error or a value.
// it is invoked once per Run and must honor ctx cancellation.
type Operation[E, A any] func(ctx context.Context) fp.Either[E, A]

// Transition describes one phase change of a tracker.
type Transition[E, A any] struct {
	Name string      // tracker name from Config
	Seq  uint64      // sequence number of the run that caused the change, 0 for Clear on a fresh tracker
	Old  Phase[E, A] // phase before the change
	Cur  Phase[E, A] // phase after the change
	At   time.Time   // when the change was applied
}

// Config holds tracker configuration.
type Config struct {
	Name       string        // name used in logs and transitions
	MinLoading time.Duration // minimum time between Run and its terminal transition, 0 disables
	Log        lgr.L         // optional logger, defaults to lgr.NoOp
}

// Tracker owns the phase of one asynchronous operation and drives it through its lifecycle.
// each Run replaces the prior state entirely. only the latest issued run may settle:
// results of superseded, cleared or canceled runs are discarded.
// thread-safe; OnChange callbacks fire outside the lock.
type Tracker[E, A any] struct {
	mu        sync.Mutex
	phase     Phase[E, A]
	seq       uint64
	onChange  func(Transition[E, A])
	recoverFn func(any) E

	name       string
	minLoading time.Duration
	log        lgr.L
}

// New creates an idle tracker. when E is error, panics inside operations are
// recovered and normalized with NormalizeError. other error types need SetRecover,
// New logs a warning when none can be installed.
func New[E, A any](cfg Config) *Tracker[E, A] {
	t := &Tracker[E, A]{
		name:       cfg.Name,
		minLoading: cfg.MinLoading,
		log:        cfg.Log,
	}
	if t.log == nil {
		t.log = lgr.NoOp
	}
	if fn, ok := any(NormalizeError).(func(any) E); ok {
		t.recoverFn = fn
	} else {
		var zero E
		t.log.Logf("[WARN] %s: panics in operations are not recovered for error type %T, call SetRecover", t.name, zero)
	}
	return t
}

// Name returns the configured tracker name.
func (t *Tracker[E, A]) Name() string { return t.name }

// SetRecover installs the function converting a recovered panic value into an error.
// with no recover function a panicking operation crashes the process.
func (t *Tracker[E, A]) SetRecover(fn func(any) E) {
	t.mu.Lock()
	t.recoverFn = fn
	t.mu.Unlock()
}

// OnChange registers a callback that fires on every phase transition.
// only one callback is supported; subsequent calls replace the previous one.
func (t *Tracker[E, A]) OnChange(fn func(Transition[E, A])) {
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
}

// Phase returns the current phase.
func (t *Tracker[E, A]) Phase() Phase[E, A] {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.phase
}

// Seq returns the sequence number of the latest issued run.
func (t *Tracker[E, A]) Seq() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seq
}

// Match calls exactly one handler for the current phase.
func (t *Tracker[E, A]) Match(onIdle, onLoading func(), onFailed func(E), onSucceeded func(A)) {
	t.Phase().Handle(onIdle, onLoading, onFailed, onSucceeded)
}

// Clear forces the phase back to Idle and invalidates any run still in flight.
func (t *Tracker[E, A]) Clear() {
	t.mu.Lock()
	t.seq++
	seq := t.seq
	t.mu.Unlock()
	t.apply(context.Background(), seq, Idle[E, A]())
}

// Run transitions to Loading before returning, then invokes op in its own goroutine.
// when op settles the phase becomes Failed or Succeeded, unless ctx is done by then
// or a newer Run/Clear was issued, in which case the result is dropped.
// the returned channel is closed once the run has settled, applied or not.
func (t *Tracker[E, A]) Run(ctx context.Context, op Operation[E, A]) <-chan struct{} {
	t.mu.Lock()
	t.seq++
	seq := t.seq
	t.mu.Unlock()
	t.apply(context.Background(), seq, Loading[E, A]())
	t.log.Logf("[DEBUG] %s: run %d started", t.name, seq)

	done := make(chan struct{})
	go func() {
		defer close(done)
		start := time.Now()
		res := t.invoke(ctx, op)

		if wait := t.minLoading - time.Since(start); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
			}
			timer.Stop()
		}

		next := fp.MatchEither(res, Failed[E, A], Succeeded[E, A])
		if !t.apply(ctx, seq, next) {
			reason := "superseded"
			if ctx.Err() != nil {
				reason = "canceled"
			}
			t.log.Logf("[DEBUG] %s: run %d %s, result dropped", t.name, seq, reason)
			return
		}
		t.log.Logf("[DEBUG] %s: run %d %s in %v", t.name, seq, next.Kind(), time.Since(start).Round(time.Millisecond))
	}()
	return done
}

// invoke calls op, converting a panic into the error channel when a recover function is set.
func (t *Tracker[E, A]) invoke(ctx context.Context, op Operation[E, A]) (res fp.Either[E, A]) {
	t.mu.Lock()
	recoverFn := t.recoverFn
	t.mu.Unlock()

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if recoverFn == nil {
			panic(fmt.Sprintf("%s: operation panicked: %v", t.name, r))
		}
		t.log.Logf("[WARN] %s: operation panicked: %v", t.name, r)
		res = fp.Left[E, A](recoverFn(r))
	}()
	return op(ctx)
}

// apply sets the phase if seq is still the latest issued and ctx is not done, then
// fires the callback. both checks are made under the lock, so a cancel that happens
// before apply returns false can't be overtaken by the result.
// returns false when the transition was discarded.
func (t *Tracker[E, A]) apply(ctx context.Context, seq uint64, next Phase[E, A]) bool {
	t.mu.Lock()
	if seq != t.seq || ctx.Err() != nil {
		t.mu.Unlock()
		return false
	}
	old := t.phase
	t.phase = next
	cb := t.onChange
	t.mu.Unlock()

	if cb != nil {
		cb(Transition[E, A]{Name: t.name, Seq: seq, Old: old, Cur: next, At: time.Now()})
	}
	return true
}
