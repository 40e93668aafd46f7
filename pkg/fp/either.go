// Package fp provides the small set of algebraic data types used across swbrowse:
// Option, Either, Ord and Reader, with the functor helpers needed to compose them.
package fp

// Either holds exactly one of two values: Left (the error channel) or Right (the success channel).
// the zero value is Left with a zero E.
type Either[E, A any] struct {
	isRight bool
	left    E
	right   A
}

// Left creates an Either holding an error value.
func Left[E, A any](e E) Either[E, A] {
	return Either[E, A]{left: e}
}

// Right creates an Either holding a success value.
func Right[E, A any](a A) Either[E, A] {
	return Either[E, A]{isRight: true, right: a}
}

// IsLeft reports whether e holds an error value.
func (e Either[E, A]) IsLeft() bool { return !e.isRight }

// IsRight reports whether e holds a success value.
func (e Either[E, A]) IsRight() bool { return e.isRight }

// GetLeft returns the error value and true, or zero and false.
func (e Either[E, A]) GetLeft() (E, bool) {
	if !e.isRight {
		return e.left, true
	}
	var zero E
	return zero, false
}

// GetRight returns the success value and true, or zero and false.
func (e Either[E, A]) GetRight() (A, bool) {
	if e.isRight {
		return e.right, true
	}
	var zero A
	return zero, false
}

// MatchEither calls onLeft or onRight depending on the held value.
func MatchEither[E, A, T any](e Either[E, A], onLeft func(E) T, onRight func(A) T) T {
	if e.isRight {
		return onRight(e.right)
	}
	return onLeft(e.left)
}

// MapEither applies f to the success value, leaving an error untouched.
func MapEither[E, A, B any](e Either[E, A], f func(A) B) Either[E, B] {
	if e.isRight {
		return Right[E](f(e.right))
	}
	return Left[E, B](e.left)
}

// MapLeft applies f to the error value, leaving a success untouched.
func MapLeft[E, F, A any](e Either[E, A], f func(E) F) Either[F, A] {
	if e.isRight {
		return Right[F](e.right)
	}
	return Left[F, A](f(e.left))
}

// Bimap maps both channels at once, onLeft for the error and onRight for the success.
func Bimap[E, F, A, B any](e Either[E, A], onLeft func(E) F, onRight func(A) B) Either[F, B] {
	if e.isRight {
		return Right[F](onRight(e.right))
	}
	return Left[F, B](onLeft(e.left))
}

// ChainEither sequences a dependent computation on the success value.
func ChainEither[E, A, B any](e Either[E, A], f func(A) Either[E, B]) Either[E, B] {
	if e.isRight {
		return f(e.right)
	}
	return Left[E, B](e.left)
}

// FromResult converts a Go (value, error) pair into an Either.
func FromResult[A any](a A, err error) Either[error, A] {
	if err != nil {
		return Left[error, A](err)
	}
	return Right[error](a)
}

// ToResult converts an error-typed Either back into a Go (value, error) pair.
func ToResult[A any](e Either[error, A]) (A, error) {
	if e.isRight {
		return e.right, nil
	}
	var zero A
	return zero, e.left
}
