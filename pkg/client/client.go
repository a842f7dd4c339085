package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/preflight/pkg/domain/model"
	"github.com/m-mizutani/preflight/pkg/utils/async"
)

// State is the submission lifecycle state: Idle → Loading → (Rendered |
// Errored). Terminal states stay until the next Submit, which resets to
// Loading.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateRendered
	StateErrored
)

// String returns the state name for logging
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateRendered:
		return "rendered"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Result is the settled outcome of one submission. Exactly one of the
// success fields (Markdown/HTML) or Message is populated.
type Result struct {
	Markdown string // Raw analysis markdown on success
	HTML     string // Sanitized HTML rendering of Markdown
	Message  string // Failure message
	Failed   bool
}

// DisplayText returns what the result view should show: the rendered HTML
// on success, or the prefixed error text on failure
func (r *Result) DisplayText() string {
	if r.Failed {
		return "Error: " + r.Message
	}
	return r.HTML
}

// Client submits pull request URLs to an analyze endpoint and renders the
// outcome. One request is in flight at a time; overlapping submissions fail
// immediately without touching the network.
type Client struct {
	endpoint   string
	httpClient *http.Client
	renderer   *renderer

	mu    sync.Mutex
	state State
}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithTimeout bounds a single submission round trip. Zero keeps the
// unbounded default; analyses may legitimately take minutes.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a Client for the given analyze endpoint URL
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		renderer:   newRenderer(),
		state:      StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current lifecycle state
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Client) setState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

// beginLoading transitions to Loading unless a request is already in flight
func (c *Client) beginLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateLoading {
		return false
	}
	c.state = StateLoading
	return true
}

// Submit validates prURL, posts it to the analyze endpoint and settles with
// exactly one Result. All failure kinds (validation, backend-reported,
// transport) are terminal for this submission; the client is immediately
// re-submittable afterwards.
func (c *Client) Submit(ctx context.Context, prURL string) *Result {
	if _, err := model.ParsePRURL(prURL); err != nil {
		c.setState(StateErrored)
		return &Result{Failed: true, Message: err.Error()}
	}

	if !c.beginLoading() {
		return &Result{Failed: true, Message: "analysis already in progress"}
	}

	result := c.dispatch(ctx, prURL)

	// The loading state is always cleared, whatever the outcome
	if result.Failed {
		c.setState(StateErrored)
	} else {
		c.setState(StateRendered)
	}

	return result
}

// SubmitAsync runs Submit in the background and invokes callback once with
// the settled result
func (c *Client) SubmitAsync(ctx context.Context, prURL string, callback func(*Result)) {
	async.Dispatch(ctx, func(ctx context.Context) error {
		callback(c.Submit(ctx, prURL))
		return nil
	})
}

func (c *Client) dispatch(ctx context.Context, prURL string) *Result {
	body, err := json.Marshal(model.AnalysisRequest{PRURL: prURL})
	if err != nil {
		return &Result{Failed: true, Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &Result{Failed: true, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return &Result{Failed: true, Message: err.Error()}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return &Result{Failed: true, Message: err.Error()}
	}

	// Error payloads arrive with non-2xx status but share the envelope, so
	// the body is parsed regardless of status code.
	var envelope model.AnalysisResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return &Result{Failed: true, Message: goerr.Wrap(err, "malformed analyze response").Error()}
	}

	// Presence of the error key always wins, even next to a result value
	if envelope.Failed() {
		return &Result{Failed: true, Message: *envelope.Error}
	}

	return &Result{
		Markdown: envelope.Result,
		HTML:     c.renderer.Render(envelope.Result),
	}
}
