package swapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/umputun/swbrowse/pkg/decode"
)

// DefaultBaseURL is the public demo API root.
const DefaultBaseURL = "https://swapi.dev/api"

// PageSize is the number of people the API serves per page. it is fixed server side.
const PageSize = 10

// maxBodyBytes caps the size of a decoded response body.
const maxBodyBytes = 10 << 20

// Config holds client configuration.
type Config struct {
	BaseURL          string        // API root, defaults to DefaultBaseURL
	Timeout          time.Duration // per-request timeout, 0 means no client-side timeout
	RateLimit        float64       // requests per second, 0 disables limiting
	RateBurst        int           // limiter burst, defaults to 1
	FilmsConcurrency int           // parallel film requests, defaults to 4
	HTTPClient       *http.Client  // optional, a client with Timeout is created if nil
	Log              lgr.L         // optional logger, defaults to lgr.NoOp
}

// Client issues GET requests and decodes their bodies.
type Client struct {
	baseURL     string
	http        *http.Client
	limiter     *rate.Limiter
	concurrency int
	log         lgr.L
}

// New creates a client from cfg, filling in defaults.
func New(cfg Config) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		http:        cfg.HTTPClient,
		concurrency: cfg.FilmsConcurrency,
		log:         cfg.Log,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: cfg.Timeout}
	}
	if c.concurrency <= 0 {
		c.concurrency = 4
	}
	if c.log == nil {
		c.log = lgr.NoOp
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c
}

// BaseURL returns the API root used by the client.
func (c *Client) BaseURL() string { return c.baseURL }

// PeopleURL returns the people list URL for the given 1-based page.
func (c *Client) PeopleURL(page int) string {
	u, err := url.Parse(c.baseURL + "/people/")
	if err != nil {
		return c.baseURL + "/people/?page=" + strconv.Itoa(page)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}

// Fetch issues a GET to rawURL and decodes the JSON body with d.
// failures are returned as *TransportError or *DecodeError.
func Fetch[T any](ctx context.Context, c *Client, rawURL string, d decode.Decoder[T]) (T, error) {
	var zero T
	body, err := c.get(ctx, rawURL)
	if err != nil {
		return zero, err
	}

	v, err := decode.FromJSON(body, d)
	if err != nil {
		var derr *decode.Error
		if errors.As(err, &derr) {
			c.log.Logf("[DEBUG] decode %s failed: %v", rawURL, strings.ReplaceAll(derr.Error(), "\n", "; "))
			return zero, &DecodeError{URL: rawURL, Err: derr}
		}
		return zero, fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return v, nil
}

// get performs the request and returns the raw body of a 2xx response.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{URL: rawURL, Err: fmt.Errorf("rate limit: %w", err)}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, &TransportError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()
	c.log.Logf("[DEBUG] GET %s -> %d in %v", rawURL, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

// People fetches one page of the people list.
func (c *Client) People(ctx context.Context, page int) (Page[Person], error) {
	return Fetch(ctx, c, c.PeopleURL(page), PeoplePageDecoder)
}

// Film fetches a single film by its resource URL.
func (c *Client) Film(ctx context.Context, rawURL string) (Film, error) {
	return Fetch(ctx, c, rawURL, FilmDecoder)
}

// Films fetches all films concurrently, preserving the order of urls.
// the first failure cancels the remaining requests and is returned.
func (c *Client) Films(ctx context.Context, urls []string) ([]Film, error) {
	films := make([]Film, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, u := range urls {
		g.Go(func() error {
			f, err := c.Film(gctx, u)
			if err != nil {
				return err
			}
			films[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return films, nil
}
