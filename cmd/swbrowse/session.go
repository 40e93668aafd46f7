package main

import (
	"context"
	"io"

	"github.com/umputun/swbrowse/pkg/browser"
	"github.com/umputun/swbrowse/pkg/input"
	"github.com/umputun/swbrowse/pkg/render"
	"github.com/umputun/swbrowse/pkg/swapi"
)

const (
	listHelp   = "commands: n next page, p previous page, <number> select person, r reload, q quit"
	personHelp = "[b]ack  [r]eload  [q]uit"
)

// session is an interactive browsing loop. views are printed when a tracker settles,
// so a command issued while loading replaces the stale request.
type session struct {
	br     *browser.Browser
	p      *render.Printer
	events chan browser.Event
}

func newSession(br *browser.Browser, p *render.Printer) *session {
	s := &session{br: br, p: p, events: make(chan browser.Event, 64)}
	br.Subscribe(func(ev browser.Event) {
		select {
		case s.events <- ev:
		default: // the loop re-reads the current phase, a dropped event only skips a redraw
		}
	})
	return s
}

// run loads page and processes commands from in until quit, EOF or ctx is done.
func (s *session) run(ctx context.Context, page int, in io.Reader) error {
	cmds := input.Commands(ctx, in)
	if _, err := s.br.SetPage(page); err != nil {
		return err
	}
	s.p.Info(listHelp)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-s.events:
			s.show(ev)
		case res, ok := <-cmds:
			if !ok {
				return nil
			}
			if res.Err != nil {
				s.p.Error(res.Err)
				continue
			}
			if quit := s.handle(res.Command); quit {
				return nil
			}
		}
	}
}

// handle applies one command and reports whether the session should end.
func (s *session) handle(cmd input.Command) bool {
	var err error
	switch cmd.Action {
	case input.ActionNext:
		_, err = s.br.Next()
	case input.ActionPrev:
		_, err = s.br.Prev()
	case input.ActionSelect:
		_, err = s.br.Select(cmd.Number - 1)
	case input.ActionBack:
		s.br.Back()
		s.showPeople()
	case input.ActionReload:
		_, err = s.br.Reload()
	case input.ActionHelp:
		s.p.Info(listHelp)
	case input.ActionQuit:
		return true
	}
	if err != nil {
		s.p.Error(err)
	}
	return false
}

// show redraws the view of the tracker in ev, skipping events already superseded.
func (s *session) show(ev browser.Event) {
	switch ev.Tracker {
	case browser.PeopleTracker:
		if ev.To == "idle" || s.br.People().Kind().String() != ev.To {
			return
		}
		s.showPeople()
	case browser.FilmsTracker:
		films := s.br.Films()
		person, ok := s.br.Selected()
		if !ok || ev.To == "idle" || films.Kind().String() != ev.To {
			return
		}
		if films.IsLoading() {
			render.Phase(s.p, "films of "+person.Name, films, func([]swapi.Film) {})
			return
		}
		if err := s.p.Person(person, films); err != nil {
			s.p.Error(err)
		}
		s.p.Info(personHelp)
	}
}

func (s *session) showPeople() {
	render.Phase(s.p, "people", s.br.People(), func(page swapi.Page[swapi.Person]) {
		r, _ := s.br.Range()
		s.p.People(page, r)
		s.p.Info("%s", render.Hints(r))
	})
}
