// Package validate implements the form field rules.
// each rule takes an optional input and returns either the violations it found or the
// validated string; All runs several rules and collects every violation.
package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/umputun/swbrowse/pkg/fp"
)

// MinLen is the minimal accepted length of a field, in characters.
const MinLen = 6

// rule messages.
const (
	MsgMinLength  = "at least 6 characters"
	MsgOneCapital = "at least one capital letter"
	MsgOneNumber  = "at least one number"
)

// Result is the outcome of a single rule or of a combination of rules.
type Result = fp.Either[[]string, string]

// Validator checks an optional input. an absent input fails every rule.
type Validator func(in fp.Option[string]) Result

// NonEmpty fails with msg if in is absent.
func NonEmpty(msg string, in fp.Option[string]) Result {
	return fp.ToEither(in, func() []string { return []string{msg} })
}

// MinLength fails if in is absent or shorter than MinLen characters.
func MinLength(in fp.Option[string]) Result {
	return check(in, func(s string) bool { return utf8.RuneCountInString(s) >= MinLen }, MsgMinLength)
}

// OneCapital fails if in is absent or has no ASCII capital letter.
func OneCapital(in fp.Option[string]) Result {
	return check(in, func(s string) bool { return strings.ContainsFunc(s, isUpperASCII) }, MsgOneCapital)
}

// OneNumber fails if in is absent or has no ASCII digit.
func OneNumber(in fp.Option[string]) Result {
	return check(in, func(s string) bool { return strings.ContainsFunc(s, isDigitASCII) }, MsgOneNumber)
}

// NonEmptyWith binds the empty-input message, making NonEmpty usable as a Validator.
func NonEmptyWith(msg string) Validator {
	return func(in fp.Option[string]) Result { return NonEmpty(msg, in) }
}

// All runs every validator against in and concatenates all violations in order.
// on success the input value is returned.
func All(in fp.Option[string], validators ...Validator) Result {
	var errs []string
	for _, v := range validators {
		if msgs, failed := v(in).GetLeft(); failed {
			errs = append(errs, msgs...)
		}
	}
	if len(errs) > 0 {
		return fp.Left[[]string, string](errs)
	}
	// every validator passed, so in is present when at least one rule was given
	return fp.ToEither(in, func() []string { return nil })
}

// Field validates one form input with the standard rule set.
func Field(emptyMsg string, in fp.Option[string]) Result {
	return All(in, NonEmptyWith(emptyMsg), MinLength, OneCapital, OneNumber)
}

func check(in fp.Option[string], pred func(string) bool, msg string) Result {
	ok := fp.ChainOption(in, func(s string) fp.Option[string] { return fp.FromPredicate(s, pred) })
	return fp.ToEither(ok, func() []string { return []string{msg} })
}

func isUpperASCII(r rune) bool { return r >= 'A' && r <= 'Z' }

func isDigitASCII(r rune) bool { return r >= '0' && r <= '9' }
