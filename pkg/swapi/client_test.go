package swapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/swbrowse/pkg/decode"
)

// fixtureServer serves testdata files by path, everything else is 404.
func fixtureServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Path
		if q := r.URL.RawQuery; q != "" {
			key += "?" + q
		}
		name, ok := routes[key]
		if !ok {
			http.NotFound(w, r)
			return
		}
		data, err := os.ReadFile(filepath.Join("testdata", name)) //nolint:gosec // test fixture
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_PeopleURL(t *testing.T) {
	tests := []struct {
		name, base, want string
		page             int
	}{
		{name: "default base", base: "", page: 1, want: "https://swapi.dev/api/people/?page=1"},
		{name: "trailing slash trimmed", base: "http://localhost:8080/api/", page: 3, want: "http://localhost:8080/api/people/?page=3"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New(Config{BaseURL: tc.base})
			assert.Equal(t, tc.want, c.PeopleURL(tc.page))
		})
	}
}

func TestClient_People(t *testing.T) {
	srv := fixtureServer(t, map[string]string{
		"/people/?page=1": "people_page1.json",
		"/people/?page=2": "people_page2.json",
	})
	c := New(Config{BaseURL: srv.URL})

	t.Run("full envelope", func(t *testing.T) {
		page, err := c.People(t.Context(), 1)
		require.NoError(t, err)
		assert.Equal(t, 15, page.Count)
		require.Len(t, page.Results, 10)
		require.NotNil(t, page.Next)
		assert.Equal(t, "https://swapi.dev/api/people/?page=2", *page.Next)
		assert.Nil(t, page.Previous)

		luke := page.Results[0]
		assert.Equal(t, "Luke Skywalker", luke.Name)
		require.NotNil(t, luke.Height)
		assert.Equal(t, "172", *luke.Height)
		assert.Len(t, luke.Films, 2)
		assert.Nil(t, page.Results[1].HairColor, "null hair colour decodes to nil")
	})

	t.Run("reduced envelope", func(t *testing.T) {
		page, err := c.People(t.Context(), 2)
		require.NoError(t, err)
		assert.Equal(t, 15, page.Count)
		assert.Len(t, page.Results, 5)
		assert.Nil(t, page.Next)
		assert.Nil(t, page.Previous)
	})

	t.Run("not found is a transport error", func(t *testing.T) {
		_, err := c.People(t.Context(), 9)
		var terr *TransportError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, http.StatusNotFound, terr.StatusCode)
		assert.False(t, terr.Canceled())
		assert.Contains(t, err.Error(), "unexpected status 404")
	})
}

func TestClient_DecodeFailures(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantPaths []string
		wantMsg   string
	}{
		{name: "empty results rejected", body: `{"count":0,"results":[]}`,
			wantPaths: []string{"results"}, wantMsg: "results: expected non-empty array"},
		{name: "wrong type in a result", body: `{"count":1,"results":[{"name":42,"height":null,"gender":null,` +
			`"hair_color":null,"skin_color":null,"eye_color":null,"birth_year":null,"homeworld":"h",` +
			`"species":[],"vehicles":[],"films":[]}]}`,
			wantPaths: []string{"results.0.name"}, wantMsg: "results.0.name: expected string, got number"},
		{name: "missing count", body: `{"results":[]}`,
			wantPaths: []string{"count", "results"}, wantMsg: "count: missing required field"},
		{name: "not json", body: `<html>`, wantPaths: []string{""}, wantMsg: "invalid JSON"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := New(Config{BaseURL: srv.URL}).People(t.Context(), 1)
			var derr *DecodeError
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, tc.wantPaths, derr.Err.Paths())
			assert.Contains(t, err.Error(), tc.wantMsg)

			var inner *decode.Error
			assert.ErrorAs(t, err, &inner)
		})
	}
}

func TestClient_FilmDecodeFailures(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "film1.json"))
	require.NoError(t, err)

	tests := []struct {
		name      string
		modify    func(film map[string]any)
		wantPaths []string
		wantMsg   string
	}{
		{name: "fractional episode_id", modify: func(f map[string]any) { f["episode_id"] = 4.5 },
			wantPaths: []string{"episode_id"}, wantMsg: "episode_id: expected integer, got 4.5"},
		{name: "missing url", modify: func(f map[string]any) { delete(f, "url") },
			wantPaths: []string{"url"}, wantMsg: "url: missing required field"},
		{name: "wrong type in characters", modify: func(f map[string]any) { f["characters"] = []any{1} },
			wantPaths: []string{"characters.0"}, wantMsg: "characters.0: expected string, got number"},
		{name: "episode_id and title together", modify: func(f map[string]any) { f["episode_id"] = "4"; f["title"] = nil },
			wantPaths: []string{"episode_id", "title"}, wantMsg: "title: expected string, got null"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			film := map[string]any{}
			require.NoError(t, json.Unmarshal(data, &film))
			tc.modify(film)
			body, err := json.Marshal(film)
			require.NoError(t, err)

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write(body)
			}))
			defer srv.Close()

			_, err = New(Config{BaseURL: srv.URL}).Film(t.Context(), srv.URL+"/films/1/")
			var derr *DecodeError
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, srv.URL+"/films/1/", derr.URL)
			assert.ElementsMatch(t, tc.wantPaths, derr.Err.Paths())
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestClient_Canceled(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(t.Context())
	errCh := make(chan error, 1)
	go func() {
		_, err := New(Config{BaseURL: srv.URL}).People(ctx, 1)
		errCh <- err
	}()
	<-started
	cancel()

	select {
	case err := <-errCh:
		var terr *TransportError
		require.ErrorAs(t, err, &terr)
		assert.True(t, terr.Canceled())
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("request was not canceled")
	}
}

func TestClient_Films(t *testing.T) {
	srv := fixtureServer(t, map[string]string{
		"/films/1/": "film1.json",
		"/films/2/": "film2.json",
	})
	c := New(Config{BaseURL: srv.URL, FilmsConcurrency: 2})

	t.Run("order preserved", func(t *testing.T) {
		films, err := c.Films(t.Context(), []string{srv.URL + "/films/2/", srv.URL + "/films/1/"})
		require.NoError(t, err)
		require.Len(t, films, 2)
		assert.Equal(t, "The Empire Strikes Back", films[0].Title)
		assert.Equal(t, 5, films[0].EpisodeID)
		assert.Equal(t, "A New Hope", films[1].Title)
	})

	t.Run("empty list", func(t *testing.T) {
		films, err := c.Films(t.Context(), nil)
		require.NoError(t, err)
		assert.Empty(t, films)
	})

	t.Run("one failure fails all", func(t *testing.T) {
		_, err := c.Films(t.Context(), []string{srv.URL + "/films/1/", srv.URL + "/films/7/"})
		var terr *TransportError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, http.StatusNotFound, terr.StatusCode)
	})
}

func TestClient_RateLimit(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"title":"x","episode_id":1,"opening_crawl":"","director":"","producer":"",` +
			`"release_date":"","planets":[],"characters":[],"species":[],"vehicles":[],"created":"","edited":"","url":""}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, RateLimit: 20, RateBurst: 1})
	start := time.Now()
	for range 3 {
		_, err := c.Film(t.Context(), srv.URL+"/films/1/")
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
	assert.Equal(t, int32(3), hits.Load())

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err := c.Film(ctx, srv.URL+"/films/1/")
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.ErrorIs(t, err, context.Canceled)
}
