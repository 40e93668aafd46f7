package web

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/swbrowse/pkg/browser"
)

func TestNewEvent(t *testing.T) {
	at := time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)

	t.Run("transition", func(t *testing.T) {
		e := NewEvent(browser.Event{Tracker: "people", Seq: 3, From: "idle", To: "loading", At: at})
		_, err := uuid.Parse(e.ID)
		require.NoError(t, err)
		assert.Equal(t, EventTypeTransition, e.Type)
		assert.Equal(t, "people", e.Tracker)
		assert.Equal(t, uint64(3), e.Seq)
		assert.Equal(t, at, e.Timestamp)
	})

	t.Run("failure", func(t *testing.T) {
		e := NewEvent(browser.Event{Tracker: "films", Seq: 1, From: "loading", To: "failed", Error: "boom"})
		assert.Equal(t, EventTypeFailure, e.Type)
		assert.Equal(t, "boom", e.Error)
		assert.False(t, e.Timestamp.IsZero())
	})

	t.Run("unique ids", func(t *testing.T) {
		a, b := NewEvent(browser.Event{Tracker: "people"}), NewEvent(browser.Event{Tracker: "people"})
		assert.NotEqual(t, a.ID, b.ID)
	})
}

func TestEvent_JSON(t *testing.T) {
	e := Event{ID: "x", Type: EventTypeTransition, Tracker: "people", Seq: 2, From: "loading", To: "succeeded",
		Timestamp: time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)}
	data, err := e.JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "transition", decoded["type"])
	assert.Equal(t, "people", decoded["tracker"])
	assert.Equal(t, "succeeded", decoded["to"])
	assert.NotContains(t, decoded, "error")
}
