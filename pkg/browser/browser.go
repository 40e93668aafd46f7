// Package browser drives the people list and person detail views.
// every input change (page, selected person) cancels the request issued for the previous
// value and runs a new one through a remote.Tracker; listeners get each phase transition.
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/swbrowse/pkg/remote"
	"github.com/umputun/swbrowse/pkg/swapi"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher

// Fetcher loads remote resources. implemented by *swapi.Client.
type Fetcher interface {
	People(ctx context.Context, page int) (swapi.Page[swapi.Person], error)
	Films(ctx context.Context, urls []string) ([]swapi.Film, error)
}

// tracker names, used in events and logs.
const (
	PeopleTracker = "people"
	FilmsTracker  = "films"
)

// ErrNoSelection is returned when an operation needs a loaded people page or a selected person.
var ErrNoSelection = errors.New("nothing selected")

// PeoplePhase is the state of the people list request.
type PeoplePhase = remote.Phase[error, swapi.Page[swapi.Person]]

// FilmsPhase is the state of the selected person's films request.
type FilmsPhase = remote.Phase[error, []swapi.Film]

// Event is a phase transition of one of the browser trackers.
type Event struct {
	Tracker string    `json:"tracker"`
	Seq     uint64    `json:"seq"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	Error   string    `json:"error,omitempty"`
	At      time.Time `json:"at"`
}

// Config holds browser configuration.
type Config struct {
	Fetcher    Fetcher       // required
	MinLoading time.Duration // minimum visible loading time of every request
	Log        lgr.L         // optional logger, defaults to lgr.NoOp
}

// Browser holds the current inputs and the two trackers depending on them.
// input changes (page, selection) are serialized by vmu, so a selection can't be committed
// against a page that is being replaced.
type Browser struct {
	fetch Fetcher
	log   lgr.L

	people *remote.Tracker[error, swapi.Page[swapi.Person]]
	films  *remote.Tracker[error, []swapi.Film]

	vmu sync.Mutex // held for the whole of SetPage, Select, Back and Reload

	mu          sync.Mutex
	ctx         context.Context
	cancel      context.CancelFunc
	page        int
	selected    int // index into the current page results, -1 when none
	cancelPage  context.CancelFunc
	cancelFilms context.CancelFunc

	lmu       sync.RWMutex
	listeners []func(Event)
}

// New creates a browser bound to ctx; canceling ctx or calling Close stops all requests.
func New(ctx context.Context, cfg Config) *Browser {
	if cfg.Log == nil {
		cfg.Log = lgr.NoOp
	}
	b := &Browser{
		fetch:    cfg.Fetcher,
		log:      cfg.Log,
		page:     1,
		selected: -1,
		people:   remote.New[error, swapi.Page[swapi.Person]](remote.Config{Name: PeopleTracker, MinLoading: cfg.MinLoading, Log: cfg.Log}),
		films:    remote.New[error, []swapi.Film](remote.Config{Name: FilmsTracker, MinLoading: cfg.MinLoading, Log: cfg.Log}),
	}
	b.ctx, b.cancel = context.WithCancel(ctx)
	b.people.OnChange(func(tr remote.Transition[error, swapi.Page[swapi.Person]]) {
		b.emit(newEvent(tr.Name, tr.Seq, tr.Old.Kind(), tr.Cur, tr.At))
	})
	b.films.OnChange(func(tr remote.Transition[error, []swapi.Film]) {
		b.emit(newEvent(tr.Name, tr.Seq, tr.Old.Kind(), tr.Cur, tr.At))
	})
	return b
}

// Subscribe registers fn for every phase transition of both trackers.
// fn is called synchronously from the goroutine applying the transition.
func (b *Browser) Subscribe(fn func(Event)) {
	b.lmu.Lock()
	b.listeners = append(b.listeners, fn)
	b.lmu.Unlock()
}

// People returns the current state of the people list.
func (b *Browser) People() PeoplePhase { return b.people.Phase() }

// Films returns the current state of the selected person's films.
func (b *Browser) Films() FilmsPhase { return b.films.Phase() }

// Page returns the current 1-based page number.
func (b *Browser) Page() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page
}

// PageSize returns the number of people per page served by the API.
func (b *Browser) PageSize() int { return swapi.PageSize }

// Range returns the visible window of the loaded people page.
// ok is false unless the people list has succeeded.
func (b *Browser) Range() (r Range, ok bool) {
	page := b.Page()
	p, ok := b.people.Phase().Value()
	if !ok {
		return Range{}, false
	}
	return NewRange(page, swapi.PageSize, p.Count, len(p.Results)), true
}

// Selected returns the selected person, if any.
func (b *Browser) Selected() (swapi.Person, bool) {
	b.mu.Lock()
	idx := b.selected
	b.mu.Unlock()
	if idx < 0 {
		return swapi.Person{}, false
	}
	p, ok := b.people.Phase().Value()
	if !ok || idx >= len(p.Results) {
		return swapi.Person{}, false
	}
	return p.Results[idx], true
}

// SetPage switches to the given page: the previous page request and any selection are
// canceled, the list is cleared and the new page is requested.
// the returned channel closes when the new request settles.
func (b *Browser) SetPage(page int) (<-chan struct{}, error) {
	if page < 1 {
		return nil, fmt.Errorf("invalid page %d", page)
	}
	b.vmu.Lock()
	defer b.vmu.Unlock()
	return b.setPage(page), nil
}

func (b *Browser) setPage(page int) <-chan struct{} {
	b.mu.Lock()
	b.page = page
	b.dropSelectionLocked()
	if b.cancelPage != nil {
		b.cancelPage()
	}
	ctx, cancel := context.WithCancel(b.ctx)
	b.cancelPage = cancel
	b.mu.Unlock()
	b.films.Clear()

	b.log.Logf("[DEBUG] load people page %d", page)
	b.people.Clear()
	return b.people.Run(ctx, remote.TryCatch(func(ctx context.Context) (swapi.Page[swapi.Person], error) {
		return b.fetch.People(ctx, page)
	}))
}

// Next moves forward one page. fails if the loaded page is the last one or nothing is loaded.
func (b *Browser) Next() (<-chan struct{}, error) {
	r, ok := b.Range()
	if !ok {
		return nil, fmt.Errorf("next page: %w", ErrNoSelection)
	}
	if !r.HasNext {
		return nil, errors.New("already on the last page")
	}
	return b.SetPage(r.Page + 1)
}

// Prev moves back one page. fails on the first page.
func (b *Browser) Prev() (<-chan struct{}, error) {
	page := b.Page()
	if page <= 1 {
		return nil, errors.New("already on the first page")
	}
	return b.SetPage(page - 1)
}

// Select chooses the person at the 0-based index of the loaded page and loads all
// of their films. a previous films request is canceled.
func (b *Browser) Select(idx int) (<-chan struct{}, error) {
	b.vmu.Lock()
	defer b.vmu.Unlock()
	return b.selectPerson(idx)
}

// selectPerson expects vmu held; the people value read here stays current until it returns.
func (b *Browser) selectPerson(idx int) (<-chan struct{}, error) {
	p, ok := b.people.Phase().Value()
	if !ok {
		return nil, fmt.Errorf("select %d: %w", idx+1, ErrNoSelection)
	}
	if idx < 0 || idx >= len(p.Results) {
		return nil, fmt.Errorf("select %d: out of range 1-%d", idx+1, len(p.Results))
	}
	person := p.Results[idx]

	b.mu.Lock()
	b.selected = idx
	if b.cancelFilms != nil {
		b.cancelFilms()
	}
	ctx, cancel := context.WithCancel(b.ctx)
	b.cancelFilms = cancel
	b.mu.Unlock()

	b.log.Logf("[DEBUG] load %d films of %s", len(person.Films), person.Name)
	b.films.Clear()
	return b.films.Run(ctx, remote.TryCatch(func(ctx context.Context) ([]swapi.Film, error) {
		return b.fetch.Films(ctx, person.Films)
	})), nil
}

// Back drops the selection and cancels its films request.
func (b *Browser) Back() {
	b.vmu.Lock()
	defer b.vmu.Unlock()
	b.mu.Lock()
	b.dropSelectionLocked()
	b.mu.Unlock()
	b.films.Clear()
}

// Reload repeats the request of the innermost view: the films of the selected person
// if there is one, the current page otherwise.
func (b *Browser) Reload() (<-chan struct{}, error) {
	b.vmu.Lock()
	defer b.vmu.Unlock()
	b.mu.Lock()
	idx := b.selected
	page := b.page
	b.mu.Unlock()
	if idx >= 0 {
		return b.selectPerson(idx)
	}
	return b.setPage(page), nil
}

// Close cancels every outstanding request. trackers keep their last phase.
func (b *Browser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cancel()
	b.selected = -1
}

func (b *Browser) dropSelectionLocked() {
	b.selected = -1
	if b.cancelFilms != nil {
		b.cancelFilms()
		b.cancelFilms = nil
	}
}

func (b *Browser) emit(ev Event) {
	b.lmu.RLock()
	defer b.lmu.RUnlock()
	for _, fn := range b.listeners {
		fn(ev)
	}
}

func newEvent[A any](name string, seq uint64, from remote.Kind, cur remote.Phase[error, A], at time.Time) Event {
	ev := Event{Tracker: name, Seq: seq, From: from.String(), To: cur.Kind().String(), At: at}
	if err, ok := cur.Err(); ok && err != nil {
		ev.Error = err.Error()
	}
	return ev
}
