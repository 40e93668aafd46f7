// Package remote tracks the lifecycle of asynchronous, cancellable operations.
// a Phase is the observable state of one operation: idle, loading, failed or succeeded.
// a Tracker owns a Phase and drives it through Run and Clear.
package remote

import "fmt"

// Kind discriminates the four phase variants.
type Kind int

// phase kinds, in lifecycle order.
const (
	KindIdle Kind = iota
	KindLoading
	KindFailed
	KindSucceeded
)

// String returns the lowercase kind name used in logs and events.
func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindLoading:
		return "loading"
	case KindFailed:
		return "failed"
	case KindSucceeded:
		return "succeeded"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Phase is a sum type over Idle, Loading, Failed(E) and Succeeded(A).
// exactly one variant is held; the zero value is Idle.
type Phase[E, A any] struct {
	kind  Kind
	err   E
	value A
}

// Idle returns the phase of an operation that was never issued or was cleared.
func Idle[E, A any]() Phase[E, A] { return Phase[E, A]{kind: KindIdle} }

// Loading returns the phase of an operation in flight.
func Loading[E, A any]() Phase[E, A] { return Phase[E, A]{kind: KindLoading} }

// Failed returns the phase of an operation that settled with an error.
func Failed[E, A any](err E) Phase[E, A] { return Phase[E, A]{kind: KindFailed, err: err} }

// Succeeded returns the phase of an operation that settled with a value.
func Succeeded[E, A any](value A) Phase[E, A] {
	return Phase[E, A]{kind: KindSucceeded, value: value}
}

// Kind returns the held variant.
func (p Phase[E, A]) Kind() Kind { return p.kind }

// IsIdle reports whether p is Idle.
func (p Phase[E, A]) IsIdle() bool { return p.kind == KindIdle }

// IsLoading reports whether p is Loading.
func (p Phase[E, A]) IsLoading() bool { return p.kind == KindLoading }

// IsFailed reports whether p is Failed.
func (p Phase[E, A]) IsFailed() bool { return p.kind == KindFailed }

// IsSucceeded reports whether p is Succeeded.
func (p Phase[E, A]) IsSucceeded() bool { return p.kind == KindSucceeded }

// Err returns the error and true for Failed, zero and false otherwise.
func (p Phase[E, A]) Err() (E, bool) {
	if p.kind == KindFailed {
		return p.err, true
	}
	var zero E
	return zero, false
}

// Value returns the value and true for Succeeded, zero and false otherwise.
func (p Phase[E, A]) Value() (A, bool) {
	if p.kind == KindSucceeded {
		return p.value, true
	}
	var zero A
	return zero, false
}

// Handle calls exactly one of the handlers, matching the held variant.
// nil handlers are skipped.
func (p Phase[E, A]) Handle(onIdle, onLoading func(), onFailed func(E), onSucceeded func(A)) {
	switch p.kind {
	case KindLoading:
		if onLoading != nil {
			onLoading()
		}
	case KindFailed:
		if onFailed != nil {
			onFailed(p.err)
		}
	case KindSucceeded:
		if onSucceeded != nil {
			onSucceeded(p.value)
		}
	default:
		if onIdle != nil {
			onIdle()
		}
	}
}

// String implements fmt.Stringer.
func (p Phase[E, A]) String() string {
	switch p.kind {
	case KindFailed:
		return fmt.Sprintf("failed(%v)", p.err)
	case KindSucceeded:
		return "succeeded"
	default:
		return p.kind.String()
	}
}

// Match is a total pattern match over p, returning the result of the one handler that fires.
func Match[E, A, T any](p Phase[E, A], onIdle, onLoading func() T, onFailed func(E) T, onSucceeded func(A) T) T {
	switch p.kind {
	case KindLoading:
		return onLoading()
	case KindFailed:
		return onFailed(p.err)
	case KindSucceeded:
		return onSucceeded(p.value)
	default:
		return onIdle()
	}
}

// MapPhase applies f to a succeeded value, keeping every other variant as is.
func MapPhase[E, A, B any](p Phase[E, A], f func(A) B) Phase[E, B] {
	switch p.kind {
	case KindLoading:
		return Loading[E, B]()
	case KindFailed:
		return Failed[E, B](p.err)
	case KindSucceeded:
		return Succeeded[E](f(p.value))
	default:
		return Idle[E, B]()
	}
}
