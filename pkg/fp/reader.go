package fp

// Reader is a computation that reads from an environment R to produce A.
type Reader[R, A any] func(R) A

// Promap adapts a reader on both sides: pre transforms the incoming environment
// and post transforms the produced value.
func Promap[R, S, A, B any](r Reader[R, A], pre func(S) R, post func(A) B) Reader[S, B] {
	return func(s S) B {
		return post(r(pre(s)))
	}
}

// MapReader transforms the produced value only.
func MapReader[R, A, B any](r Reader[R, A], f func(A) B) Reader[R, B] {
	return func(env R) B {
		return f(r(env))
	}
}
