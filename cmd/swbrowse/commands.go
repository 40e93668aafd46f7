package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/umputun/swbrowse/pkg/browser"
	"github.com/umputun/swbrowse/pkg/input"
	"github.com/umputun/swbrowse/pkg/render"
	"github.com/umputun/swbrowse/pkg/swapi"
	"github.com/umputun/swbrowse/pkg/validate"
)

// errFailed is returned after a failed request or an invalid form was already printed.
var errFailed = errors.New("request failed")

// listRequest describes a one-shot listing.
type listRequest struct {
	Page   int
	Person int // 1-based person number on the page, 0 lists the page
	Format string
}

// runList loads one page, optionally one person with films, prints the result and returns.
func runList(ctx context.Context, br *browser.Browser, p *render.Printer, out io.Writer, req listRequest) error {
	text := req.Format == "" || req.Format == render.FormatText
	start := time.Now()

	done, err := br.SetPage(req.Page)
	if err != nil {
		return fmt.Errorf("load page: %w", err)
	}
	if text {
		render.Phase(p, "people", br.People(), func(swapi.Page[swapi.Person]) {})
	}
	if err = wait(ctx, done); err != nil {
		return err
	}

	people := br.People()
	if perr, failed := people.Err(); failed {
		if !text {
			return fmt.Errorf("load people page %d: %w", req.Page, perr)
		}
		p.Error(perr)
		return errFailed
	}

	if req.Person > 0 {
		return showPerson(ctx, br, p, out, req)
	}

	page, _ := people.Value()
	r, _ := br.Range()
	if !text {
		return render.Encode(out, req.Format, render.PeopleView{Range: r, Results: page.Results})
	}
	p.People(page, r)
	p.Elapsed("people", start)
	return nil
}

func showPerson(ctx context.Context, br *browser.Browser, p *render.Printer, out io.Writer, req listRequest) error {
	text := req.Format == "" || req.Format == render.FormatText
	done, err := br.Select(req.Person - 1)
	if err != nil {
		return fmt.Errorf("select person: %w", err)
	}
	if err = wait(ctx, done); err != nil {
		return err
	}

	person, _ := br.Selected()
	films := br.Films()
	if text {
		if err := p.Person(person, films); err != nil {
			return err
		}
		if films.IsFailed() {
			return errFailed
		}
		return nil
	}
	if ferr, failed := films.Err(); failed {
		return fmt.Errorf("load films of %s: %w", person.Name, ferr)
	}
	list, _ := films.Value()
	return render.Encode(out, req.Format, render.PersonView{Person: person, Films: list})
}

// validateRequest is a form to validate; empty email and password are prompted for.
type validateRequest struct {
	Email    string
	Password string
	Strategy validate.Strategy
}

func runValidate(ctx context.Context, req validateRequest, prompter input.Prompter, p *render.Printer) error {
	if req.Email == "" && req.Password == "" {
		var err error
		if req.Email, err = prompter.Ask(ctx, "Email"); err != nil {
			return fmt.Errorf("read email: %w", err)
		}
		if req.Password, err = prompter.Ask(ctx, "Password"); err != nil {
			return fmt.Errorf("read password: %w", err)
		}
	}

	res := validate.Validate(validate.NewForm(req.Email, req.Password), req.Strategy)
	p.Validation(res, req.Strategy)
	if res.IsLeft() {
		return errFailed
	}
	return nil
}

// wait blocks until done is closed or ctx is done.
func wait(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for request: %w", ctx.Err())
	}
}
