package decode

import "github.com/umputun/swbrowse/pkg/fp"

// Object gives a struct decoder access to the fields of one JSON object.
// field helpers record violations instead of stopping, so every bad field is reported.
type Object struct {
	raw  map[string]any
	errs *Error
}

// Struct builds a decoder for a JSON object. build reads fields through Field and
// OptionalField; the built value is discarded if any field failed.
func Struct[T any](build func(o *Object) T) Decoder[T] {
	return func(in any) (T, *Error) {
		raw, ok := in.(map[string]any)
		if !ok {
			var zero T
			return zero, newError("expected object, got %s", kindOf(in))
		}
		o := &Object{raw: raw, errs: &Error{}}
		v := build(o)
		if len(o.errs.Violations) > 0 {
			var zero T
			return zero, o.errs
		}
		return v, nil
	}
}

// Field decodes a required field. a missing key is a violation even for nullable decoders.
func Field[T any](o *Object, key string, d Decoder[T]) T {
	var zero T
	in, ok := o.raw[key]
	if !ok {
		o.errs.Violations = append(o.errs.Violations, Violation{Path: key, Message: "missing required field"})
		return zero
	}
	v, err := d(in)
	if err != nil {
		o.errs.add(key, err)
		return zero
	}
	return v
}

// OptionalField decodes a field that may be absent or null, returning None in both cases.
func OptionalField[T any](o *Object, key string, d Decoder[T]) fp.Option[T] {
	in, ok := o.raw[key]
	if !ok || in == nil {
		return fp.None[T]()
	}
	v, err := d(in)
	if err != nil {
		o.errs.add(key, err)
		return fp.None[T]()
	}
	return fp.Some(v)
}
