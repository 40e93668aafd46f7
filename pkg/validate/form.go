package validate

import (
	"fmt"
	"strings"

	"github.com/umputun/swbrowse/pkg/fp"
)

// field empty messages.
const (
	MsgEmailEmpty    = "email cannot be empty"
	MsgPasswordEmpty = "password cannot be empty"
)

// Strategy selects how field results are combined.
type Strategy int

// combination strategies.
const (
	Total    Strategy = iota // validate every field and report all violations
	FailFast                 // stop at the first failing field
)

// String returns the strategy name as used in config and the api.
func (s Strategy) String() string {
	switch s {
	case Total:
		return "total"
	case FailFast:
		return "fail-fast"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy converts a name into a Strategy. empty means Total.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "total":
		return Total, nil
	case "fail-fast", "failfast", "fast":
		return FailFast, nil
	default:
		return Total, fmt.Errorf("unknown validation strategy %q", name)
	}
}

// Form is the raw email/password input. an empty text box is an absent value.
type Form struct {
	Email    fp.Option[string]
	Password fp.Option[string]
}

// NewForm builds a Form from plain strings, treating "" as absent.
func NewForm(email, password string) Form {
	return Form{Email: fp.FromString(email), Password: fp.FromString(password)}
}

// Credentials is a fully validated form.
type Credentials struct {
	Email    string `json:"email" yaml:"email"`
	Password string `json:"-" yaml:"-"`
}

// Error is the list of independent rule violations of a rejected form.
type Error struct {
	Violations []string
}

// Error joins violations with "; ".
func (e *Error) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// Validate checks the form with the given strategy.
func Validate(f Form, s Strategy) fp.Either[*Error, Credentials] {
	email := Field(MsgEmailEmpty, f.Email)
	if s == FailFast {
		res := fp.ChainEither(email, func(e string) fp.Either[[]string, Credentials] {
			return fp.MapEither(Field(MsgPasswordEmpty, f.Password), func(p string) Credentials {
				return Credentials{Email: e, Password: p}
			})
		})
		return fp.MapLeft(res, toError)
	}

	password := Field(MsgPasswordEmpty, f.Password)
	var errs []string
	if msgs, failed := email.GetLeft(); failed {
		errs = append(errs, msgs...)
	}
	if msgs, failed := password.GetLeft(); failed {
		errs = append(errs, msgs...)
	}
	if len(errs) > 0 {
		return fp.Left[*Error, Credentials](toError(errs))
	}
	e, _ := email.GetRight()
	p, _ := password.GetRight()
	return fp.Right[*Error](Credentials{Email: e, Password: p})
}

func toError(msgs []string) *Error { return &Error{Violations: msgs} }
