// Package decode validates untrusted, JSON-shaped input against a declared shape.
// a Decoder produces either a typed value or an *Error listing every structural
// mismatch together with the path of the offending field.
package decode

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Violation is one structural mismatch found while decoding.
type Violation struct {
	Path    string `json:"path,omitempty"` // dot-separated path, e.g. results.0.name; empty for the root
	Message string `json:"message"`
}

// String formats the violation as "path: message".
func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

// Error collects all violations of a single decode.
type Error struct {
	Violations []Violation
}

// Error returns all violations, one per line.
func (e *Error) Error() string {
	lines := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		lines = append(lines, v.String())
	}
	return strings.Join(lines, "\n")
}

// Paths returns the paths of all violations in order.
func (e *Error) Paths() []string {
	res := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		res = append(res, v.Path)
	}
	return res
}

// add appends violations of child under the given path segment.
func (e *Error) add(segment string, child *Error) {
	for _, v := range child.Violations {
		p := segment
		if v.Path != "" {
			p = segment + "." + v.Path
		}
		e.Violations = append(e.Violations, Violation{Path: p, Message: v.Message})
	}
}

func newError(format string, args ...any) *Error {
	return &Error{Violations: []Violation{{Message: fmt.Sprintf(format, args...)}}}
}

// Decoder converts raw input into T, returning nil *Error on success.
type Decoder[T any] func(in any) (T, *Error)

// Decode runs d on in and returns a plain error, nil on success.
func (d Decoder[T]) Decode(in any) (T, error) {
	v, err := d(in)
	if err != nil {
		return v, err
	}
	return v, nil
}

// FromJSON parses data as JSON and decodes it with d.
// a parse failure is reported as a root violation.
func FromJSON[T any](data []byte, d Decoder[T]) (T, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		var zero T
		return zero, newError("invalid JSON: %v", err)
	}
	return d.Decode(raw)
}

// primitive decoders.
var (
	String = Decoder[string](decodeString)  // accepts a JSON string
	Number = Decoder[float64](decodeNumber) // accepts any JSON number
	Int    = Decoder[int](decodeInt)        // accepts a JSON number without a fractional part
	Bool   = Decoder[bool](decodeBool)      // accepts a JSON boolean
)

func decodeString(in any) (string, *Error) {
	s, ok := in.(string)
	if !ok {
		return "", newError("expected string, got %s", kindOf(in))
	}
	return s, nil
}

func decodeNumber(in any) (float64, *Error) {
	switch v := in.(type) {
	case float64:
		return v, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, newError("expected number, got %q", v.String())
		}
		return f, nil
	default:
		return 0, newError("expected number, got %s", kindOf(in))
	}
}

func decodeInt(in any) (int, *Error) {
	f, err := decodeNumber(in)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, newError("expected integer, got %s", strconv.FormatFloat(f, 'f', -1, 64))
	}
	if f < math.MinInt || f >= -math.MinInt {
		return 0, newError("integer out of range, got %s", strconv.FormatFloat(f, 'g', -1, 64))
	}
	return int(f), nil
}

func decodeBool(in any) (bool, *Error) {
	b, ok := in.(bool)
	if !ok {
		return false, newError("expected boolean, got %s", kindOf(in))
	}
	return b, nil
}

// Nullable accepts null as a nil pointer, otherwise decodes with d.
func Nullable[T any](d Decoder[T]) Decoder[*T] {
	return func(in any) (*T, *Error) {
		if in == nil {
			return nil, nil
		}
		v, err := d(in)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
}

// Array accepts a JSON array whose every element satisfies d.
// violations of all elements are reported, prefixed with the element index.
func Array[T any](d Decoder[T]) Decoder[[]T] {
	return func(in any) ([]T, *Error) {
		items, ok := in.([]any)
		if !ok {
			return nil, newError("expected array, got %s", kindOf(in))
		}
		res := make([]T, 0, len(items))
		errs := &Error{}
		for i, item := range items {
			v, err := d(item)
			if err != nil {
				errs.add(strconv.Itoa(i), err)
				continue
			}
			res = append(res, v)
		}
		if len(errs.Violations) > 0 {
			return nil, errs
		}
		return res, nil
	}
}

// Refine narrows d with an additional predicate; name describes the refined shape.
func Refine[T any](d Decoder[T], pred func(T) bool, name string) Decoder[T] {
	return func(in any) (T, *Error) {
		v, err := d(in)
		if err != nil {
			return v, err
		}
		if !pred(v) {
			var zero T
			return zero, newError("expected %s", name)
		}
		return v, nil
	}
}

// NonEmpty refines an array decoder to reject empty arrays.
func NonEmpty[T any](d Decoder[[]T]) Decoder[[]T] {
	return Refine(d, func(v []T) bool { return len(v) > 0 }, "non-empty array")
}

// kindOf names the JSON kind of a decoded value for diagnostics.
func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64, json.Number:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
