package fp

// Option represents an optional value, either Some(value) or None.
// the zero value is None.
type Option[A any] struct {
	some  bool
	value A
}

// Some wraps a present value.
func Some[A any](a A) Option[A] {
	return Option[A]{some: true, value: a}
}

// None returns an absent value.
func None[A any]() Option[A] {
	return Option[A]{}
}

// FromPtr converts a nil-able pointer into an Option.
func FromPtr[A any](p *A) Option[A] {
	if p == nil {
		return None[A]()
	}
	return Some(*p)
}

// FromString returns None for the empty string, Some otherwise.
// matches how form inputs are captured: an empty field is absent.
func FromString(s string) Option[string] {
	if s == "" {
		return None[string]()
	}
	return Some(s)
}

// FromPredicate returns Some(a) if pred holds, None otherwise.
func FromPredicate[A any](a A, pred func(A) bool) Option[A] {
	if pred(a) {
		return Some(a)
	}
	return None[A]()
}

// IsSome reports whether the value is present.
func (o Option[A]) IsSome() bool { return o.some }

// IsNone reports whether the value is absent.
func (o Option[A]) IsNone() bool { return !o.some }

// Get returns the value and true, or zero and false.
func (o Option[A]) Get() (A, bool) {
	return o.value, o.some
}

// GetOrElse returns the value if present, otherwise the result of fallback.
func (o Option[A]) GetOrElse(fallback func() A) A {
	if o.some {
		return o.value
	}
	return fallback()
}

// Ptr returns a pointer to a copy of the value, or nil for None.
func (o Option[A]) Ptr() *A {
	if !o.some {
		return nil
	}
	v := o.value
	return &v
}

// MapOption applies f to a present value.
func MapOption[A, B any](o Option[A], f func(A) B) Option[B] {
	if o.some {
		return Some(f(o.value))
	}
	return None[B]()
}

// ChainOption sequences a computation that may itself produce no value.
func ChainOption[A, B any](o Option[A], f func(A) Option[B]) Option[B] {
	if o.some {
		return f(o.value)
	}
	return None[B]()
}

// MatchOption calls onNone or onSome depending on presence.
func MatchOption[A, T any](o Option[A], onNone func() T, onSome func(A) T) T {
	if o.some {
		return onSome(o.value)
	}
	return onNone()
}

// ToEither converts an Option into an Either, using onNone to build the error for None.
func ToEither[E, A any](o Option[A], onNone func() E) Either[E, A] {
	if o.some {
		return Right[E](o.value)
	}
	return Left[E, A](onNone())
}
