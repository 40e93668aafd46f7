package fp

import (
	"cmp"
	"slices"
)

// Ord is a total ordering over A. Compare returns a negative number when x < y,
// zero when equal and a positive number when x > y.
type Ord[A any] func(x, y A) int

// Natural returns the ordering of an ordered type.
func Natural[A cmp.Ordered]() Ord[A] {
	return cmp.Compare[A]
}

// Contramap derives an ordering of B from an ordering of A and a projection B -> A.
func Contramap[A, B any](ord Ord[A], f func(B) A) Ord[B] {
	return func(x, y B) int {
		return ord(f(x), f(y))
	}
}

// Reverse flips the ordering.
func (o Ord[A]) Reverse() Ord[A] {
	return func(x, y A) int { return o(y, x) }
}

// SortBy returns a sorted copy of items, leaving the input untouched.
// the sort is stable so equal elements keep their original order.
func SortBy[A any](items []A, ord Ord[A]) []A {
	res := slices.Clone(items)
	slices.SortStableFunc(res, ord)
	return res
}
