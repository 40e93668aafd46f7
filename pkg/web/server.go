package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-pkgz/lgr"
	"github.com/tmaxmax/go-sse"

	"github.com/umputun/swbrowse/pkg/browser"
	"github.com/umputun/swbrowse/pkg/fp"
	"github.com/umputun/swbrowse/pkg/remote"
	"github.com/umputun/swbrowse/pkg/swapi"
	"github.com/umputun/swbrowse/pkg/validate"
)

//go:embed templates
var content embed.FS

const maxBodyBytes = 64 << 10

//go:generate moq -out mocks/browser.go -pkg mocks -skip-ensure -fmt goimports . Browser

// Browser is the state and navigation surface the dashboard exposes.
// implemented by *browser.Browser.
type Browser interface {
	People() browser.PeoplePhase
	Films() browser.FilmsPhase
	Page() int
	PageSize() int
	Range() (browser.Range, bool)
	Selected() (swapi.Person, bool)
	SetPage(page int) (<-chan struct{}, error)
	Select(idx int) (<-chan struct{}, error)
	Back()
	Reload() (<-chan struct{}, error)
}

// ServerConfig holds configuration for the web server.
type ServerConfig struct {
	Port        int               // port to listen on
	BaseURL     string            // remote API base url shown on the index page
	CORSOrigins []string          // allowed origins, defaults to any
	Strategy    validate.Strategy // default strategy of /api/validate
	Log         lgr.L             // optional logger, defaults to lgr.NoOp
}

// Server provides the HTTP dashboard for a browser session.
type Server struct {
	cfg     ServerConfig
	browser Browser
	buffer  *Buffer
	metrics *Metrics
	sse     *sse.Server
	index   *template.Template
	log     lgr.L
	srv     *http.Server
}

// NewServer creates a new web server. Observe must be subscribed to the browser
// transitions for history, metrics and streaming to work.
func NewServer(cfg ServerConfig, b Browser, buffer *Buffer) *Server {
	if cfg.Log == nil {
		cfg.Log = lgr.NoOp
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}
	if buffer == nil {
		buffer = NewBuffer(0)
	}
	return &Server{
		cfg:     cfg,
		browser: b,
		buffer:  buffer,
		metrics: NewMetrics(),
		sse:     &sse.Server{},
		index:   template.Must(template.ParseFS(content, "templates/index.html")),
		log:     cfg.Log,
	}
}

// Buffer returns the server's event buffer.
func (s *Server) Buffer() *Buffer { return s.buffer }

// Metrics returns the server's metrics.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Observe records a browser transition and publishes it to connected clients.
func (s *Server) Observe(ev browser.Event) {
	e := NewEvent(ev)
	s.buffer.Add(e)
	s.metrics.Observe(e)

	data, err := e.JSON()
	if err != nil {
		s.log.Logf("[WARN] %v", err)
		return
	}
	msg := &sse.Message{ID: sse.ID(e.ID), Type: sse.Type(string(e.Type))}
	msg.AppendData(string(data))
	if err := s.sse.Publish(msg); err != nil {
		s.log.Logf("[DEBUG] publish event %s: %v", e.ID, err)
	}
}

// Handler returns the router with all dashboard routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Last-Event-ID"},
		MaxAge:         300,
	}))
	r.Use(s.metrics.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Method(http.MethodGet, "/events", s.sse)

	r.Group(func(r chi.Router) {
		r.Use(s.metrics.Inflight)
		r.Get("/", s.handleIndex)
		r.Get("/api/state", s.handleState)
		r.Get("/api/history", s.handleHistory)
		r.Post("/api/validate", s.handleValidate)
		r.Post("/api/page/{page}", s.handlePage)
		r.Post("/api/select/{num}", s.handleSelect)
		r.Post("/api/back", s.handleBack)
		r.Post("/api/reload", s.handleReload)
	})
	return r
}

// Start begins listening for HTTP requests.
// blocks until ctx is canceled, the server is stopped or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// start shutdown listener
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.sse.Shutdown(shutdownCtx)
		_ = s.srv.Shutdown(shutdownCtx)
	}()

	s.log.Logf("[INFO] dashboard listening on :%d", s.cfg.Port)
	err := s.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("http server: %w", err)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.sse.Shutdown(ctx)
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

// templateData holds data for the index template.
type templateData struct {
	BaseURL  string
	PageSize int
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := templateData{BaseURL: s.cfg.BaseURL, PageSize: s.browser.PageSize()}
	if err := s.index.Execute(w, data); err != nil {
		s.log.Logf("[WARN] render index: %v", err)
	}
}

// phaseView is the JSON form of a tracker phase.
type phaseView[A any] struct {
	Phase string `json:"phase"`
	Error string `json:"error,omitempty"`
	Value *A     `json:"value,omitempty"`
}

func newPhaseView[A any](ph remote.Phase[error, A]) phaseView[A] {
	v := phaseView[A]{Phase: ph.Kind().String()}
	if err, ok := ph.Err(); ok && err != nil {
		v.Error = err.Error()
	}
	if val, ok := ph.Value(); ok {
		v.Value = &val
	}
	return v
}

// stateView is the response of /api/state.
type stateView struct {
	Page     int                                 `json:"page"`
	PageSize int                                 `json:"page_size"`
	Range    *browser.Range                      `json:"range,omitempty"`
	People   phaseView[swapi.Page[swapi.Person]] `json:"people"`
	Selected *swapi.Person                       `json:"selected,omitempty"`
	Films    phaseView[[]swapi.Film]             `json:"films"`
}

func (s *Server) state() stateView {
	st := stateView{
		Page:     s.browser.Page(),
		PageSize: s.browser.PageSize(),
		People:   newPhaseView(s.browser.People()),
		Films:    newPhaseView(s.browser.Films()),
	}
	if r, ok := s.browser.Range(); ok {
		st.Range = &r
	}
	if p, ok := s.browser.Selected(); ok {
		st.Selected = &p
	}
	return st
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	var events []Event
	switch name := r.URL.Query().Get("tracker"); name {
	case "":
		events = s.buffer.All()
	case browser.PeopleTracker, browser.FilmsTracker:
		events = s.buffer.ByTracker(name)
	default:
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("unknown tracker %q", name))
		return
	}
	if events == nil {
		events = []Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// validateRequest is the body of /api/validate.
type validateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Strategy string `json:"strategy,omitempty"`
}

// validateResponse is the result of /api/validate.
type validateResponse struct {
	Valid      bool     `json:"valid"`
	Strategy   string   `json:"strategy"`
	Email      string   `json:"email,omitempty"`
	Violations []string `json:"violations,omitempty"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	strategy := s.cfg.Strategy
	if req.Strategy != "" {
		var err error
		if strategy, err = validate.ParseStrategy(req.Strategy); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	res := validate.Validate(validate.NewForm(req.Email, req.Password), strategy)
	resp := fp.MatchEither(res,
		func(verr *validate.Error) validateResponse {
			return validateResponse{Strategy: strategy.String(), Violations: verr.Violations}
		},
		func(c validate.Credentials) validateResponse {
			return validateResponse{Valid: true, Strategy: strategy.String(), Email: c.Email}
		},
	)
	status := http.StatusOK
	if !resp.Valid {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resp)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "page must be a number")
		return
	}
	s.accepted(w)(s.browser.SetPage(page))
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	num, err := strconv.Atoi(chi.URLParam(r, "num"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "selection must be a number")
		return
	}
	s.accepted(w)(s.browser.Select(num - 1))
}

func (s *Server) handleBack(w http.ResponseWriter, _ *http.Request) {
	s.browser.Back()
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleReload(w http.ResponseWriter, _ *http.Request) {
	s.accepted(w)(s.browser.Reload())
}

// accepted answers a navigation request. the request settles asynchronously, clients
// follow it on /events or poll /api/state.
func (s *Server) accepted(w http.ResponseWriter) func(<-chan struct{}, error) {
	return func(_ <-chan struct{}, err error) {
		switch {
		case errors.Is(err, browser.ErrNoSelection):
			writeJSONError(w, http.StatusConflict, err.Error())
		case err != nil:
			writeJSONError(w, http.StatusBadRequest, err.Error())
		default:
			writeJSON(w, http.StatusAccepted, s.state())
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
