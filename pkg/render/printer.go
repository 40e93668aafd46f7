package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/umputun/swbrowse/pkg/browser"
	"github.com/umputun/swbrowse/pkg/fp"
	"github.com/umputun/swbrowse/pkg/remote"
	"github.com/umputun/swbrowse/pkg/swapi"
	"github.com/umputun/swbrowse/pkg/validate"
)

// Config holds printer configuration.
type Config struct {
	Out     io.Writer // defaults to os.Stdout
	Colors  *Colors   // defaults to DefaultColors
	NoColor bool      // plain output, markdown is printed as is
	Width   int       // wrap width, 0 detects the terminal
}

// Printer writes human-readable views of the browser state.
type Printer struct {
	out     io.Writer
	colors  *Colors
	noColor bool
	width   int
}

// New creates a printer.
func New(cfg Config) *Printer {
	p := &Printer{out: cfg.Out, colors: cfg.Colors, noColor: cfg.NoColor, width: cfg.Width}
	if p.out == nil {
		p.out = os.Stdout
	}
	if p.colors == nil {
		p.colors = DefaultColors()
	}
	if p.width <= 0 {
		p.width = TerminalWidth()
	}
	return p
}

// Phase prints the state of one request: a hint when idle, a loading line, the error
// when failed; on success onSucceeded is called with the value.
func Phase[A any](p *Printer, what string, ph remote.Phase[error, A], onSucceeded func(A)) {
	ph.Handle(
		func() { p.line(p.colors.Info, "Nothing loaded yet") },
		func() { p.line(p.colors.Loading, "Loading %s...", what) },
		func(err error) { p.Error(err) },
		onSucceeded,
	)
}

// Error prints err in the error color. decode failures are listed one violation per line.
func (p *Printer) Error(err error) {
	var derr *swapi.DecodeError
	if errors.As(err, &derr) {
		p.line(p.colors.Error, "Unexpected response from %s:", derr.URL)
		for _, v := range derr.Err.Violations {
			p.line(p.colors.Error, "  - %s", v)
		}
		return
	}
	var verr *validate.Error
	if errors.As(err, &verr) {
		p.line(p.colors.Error, "Validation failed:")
		for _, v := range verr.Violations {
			p.line(p.colors.Error, "  - %s", v)
		}
		return
	}
	p.line(p.colors.Error, "Error: %v", err)
}

// People prints a people page as a numbered list with the pagination footer.
func (p *Printer) People(page swapi.Page[swapi.Person], r browser.Range) {
	for i, person := range page.Results {
		num := fmt.Sprintf("%3d. ", i+1)
		desc := person.Name
		if details := personSummary(person); details != "" {
			desc += " (" + details + ")"
		}
		_, _ = fmt.Fprintln(p.out, num+wrapText(desc, p.width-len(num), strings.Repeat(" ", len(num))))
	}
	p.line(p.colors.Info, "%s", Footer(r))
}

// Footer formats the pagination line, e.g. "Showing 1-10 of 15 · page 1 of 2".
func Footer(r browser.Range) string {
	return fmt.Sprintf("Showing %s-%s of %s · page %d of %d",
		humanize.Comma(int64(r.Start)), humanize.Comma(int64(r.End)), humanize.Comma(int64(r.Count)), r.Page, r.Pages)
}

// Hints returns the interactive command summary for the list view.
func Hints(r browser.Range) string {
	cmds := make([]string, 0, 5)
	if r.HasPrev {
		cmds = append(cmds, "[p]rev")
	}
	if r.HasNext {
		cmds = append(cmds, "[n]ext")
	}
	cmds = append(cmds, "[1-9] select", "[r]eload", "[q]uit")
	return strings.Join(cmds, "  ")
}

// Person prints the detail view of person with the films request state.
func (p *Printer) Person(person swapi.Person, films remote.Phase[error, []swapi.Film]) error {
	md := PersonMarkdown(person)
	out, err := Markdown(md, p.width, p.noColor)
	if err != nil {
		return fmt.Errorf("render person: %w", err)
	}
	_, _ = fmt.Fprint(p.out, out)
	if !strings.HasSuffix(out, "\n") {
		_, _ = fmt.Fprintln(p.out)
	}

	var ferr error
	Phase(p, "films", films, func(list []swapi.Film) {
		out, err := Markdown(FilmsMarkdown(list), p.width, p.noColor)
		if err != nil {
			ferr = fmt.Errorf("render films: %w", err)
			return
		}
		_, _ = fmt.Fprint(p.out, out)
	})
	return ferr
}

// Validation prints the outcome of a form validation.
func (p *Printer) Validation(res fp.Either[*validate.Error, validate.Credentials], strategy validate.Strategy) {
	fp.MatchEither(res,
		func(verr *validate.Error) struct{} {
			p.Error(verr)
			return struct{}{}
		},
		func(c validate.Credentials) struct{} {
			p.line(p.colors.Success, "Form is valid (%s validation), email %s", strategy, c.Email)
			return struct{}{}
		})
}

// Elapsed prints how long a request took, e.g. "people loaded in 120ms".
func (p *Printer) Elapsed(what string, start time.Time) {
	p.line(p.colors.Info, "%s loaded in %v", what, time.Since(start).Round(time.Millisecond))
}

// Info prints a line in the info color.
func (p *Printer) Info(format string, args ...any) {
	p.line(p.colors.Info, format, args...)
}

// PersonMarkdown formats the person attributes as a markdown table.
func PersonMarkdown(person swapi.Person) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", person.Name)
	b.WriteString("| attribute | value |\n|---|---|\n")
	for _, row := range []struct {
		name string
		val  *string
	}{
		{"height", person.Height},
		{"gender", person.Gender},
		{"hair color", person.HairColor},
		{"skin color", person.SkinColor},
		{"eye color", person.EyeColor},
		{"birth year", person.BirthYear},
	} {
		fmt.Fprintf(&b, "| %s | %s |\n", row.name, orUnknown(row.val))
	}
	fmt.Fprintf(&b, "\n%s in %d films\n", person.Name, len(person.Films))
	return b.String()
}

// FilmsMarkdown formats films as a numbered markdown list.
func FilmsMarkdown(films []swapi.Film) string {
	if len(films) == 0 {
		return "_no films_\n"
	}
	var b strings.Builder
	b.WriteString("## Films\n\n")
	for i, f := range films {
		fmt.Fprintf(&b, "%d. **%s** (episode %d, %s), directed by %s\n", i+1, f.Title, f.EpisodeID, f.ReleaseDate, f.Director)
	}
	return b.String()
}

func personSummary(person swapi.Person) string {
	parts := make([]string, 0, 2)
	for _, v := range []*string{person.Gender, person.BirthYear} {
		if s := fp.FromPtr(v).GetOrElse(func() string { return "" }); s != "" && s != "n/a" && s != "unknown" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func orUnknown(v *string) string {
	return fp.FromPtr(v).GetOrElse(func() string { return "unknown" })
}

func (p *Printer) line(c *color.Color, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.noColor || c == nil {
		_, _ = fmt.Fprintln(p.out, msg)
		return
	}
	_, _ = fmt.Fprintln(p.out, c.Sprintf("%s", msg))
}
