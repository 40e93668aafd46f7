// Package web provides the HTTP dashboard: current browser state, transition history,
// SSE streaming of tracker transitions, form validation and metrics.
package web

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/umputun/swbrowse/pkg/browser"
)

// EventType names the SSE event kind.
type EventType string

// event type constants for SSE streaming.
const (
	EventTypeTransition EventType = "transition" // tracker phase change
	EventTypeFailure    EventType = "failure"    // transition into the failed phase
)

// Event is a tracker transition as streamed to web clients.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Tracker   string    `json:"tracker"`
	Seq       uint64    `json:"seq"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent converts a browser transition into a web event with a fresh id.
func NewEvent(ev browser.Event) Event {
	typ := EventTypeTransition
	if ev.To == "failed" {
		typ = EventTypeFailure
	}
	ts := ev.At
	if ts.IsZero() {
		ts = time.Now()
	}
	return Event{
		ID:        uuid.NewString(),
		Type:      typ,
		Tracker:   ev.Tracker,
		Seq:       ev.Seq,
		From:      ev.From,
		To:        ev.To,
		Error:     ev.Error,
		Timestamp: ts,
	}
}

// JSON returns the event as JSON bytes.
func (e Event) JSON() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}
