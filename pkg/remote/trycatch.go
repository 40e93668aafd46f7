package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/umputun/swbrowse/pkg/fp"
)

// TryCatch lifts a plain Go call into an Operation. a returned error lands in the
// error channel; a panic is recovered and normalized with NormalizeError.
func TryCatch[A any](f func(ctx context.Context) (A, error)) Operation[error, A] {
	return func(ctx context.Context) (res fp.Either[error, A]) {
		defer func() {
			if r := recover(); r != nil {
				res = fp.Left[error, A](NormalizeError(r))
			}
		}()
		v, err := f(ctx)
		return fp.FromResult(v, err)
	}
}

// NormalizeError converts an arbitrary recovered value into an error.
// errors pass through; other values are stringified as JSON when possible, %v otherwise.
func NormalizeError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	if s, ok := v.(string); ok {
		return errors.New(s)
	}
	if data, err := json.Marshal(v); err == nil {
		return errors.New(string(data))
	}
	return fmt.Errorf("%v", v)
}

// Of returns an Operation that immediately succeeds with a.
func Of[E, A any](a A) Operation[E, A] {
	return func(context.Context) fp.Either[E, A] { return fp.Right[E](a) }
}

// Fail returns an Operation that immediately fails with e.
func Fail[E, A any](e E) Operation[E, A] {
	return func(context.Context) fp.Either[E, A] { return fp.Left[E, A](e) }
}

// MapOperation transforms the success value of op.
func MapOperation[E, A, B any](op Operation[E, A], f func(A) B) Operation[E, B] {
	return func(ctx context.Context) fp.Either[E, B] {
		return fp.MapEither(op(ctx), f)
	}
}

// ChainOperation runs op, then the operation derived from its success value.
// the second operation is skipped on failure.
func ChainOperation[E, A, B any](op Operation[E, A], f func(A) Operation[E, B]) Operation[E, B] {
	return func(ctx context.Context) fp.Either[E, B] {
		return fp.ChainEither(op(ctx), func(a A) fp.Either[E, B] { return f(a)(ctx) })
	}
}
