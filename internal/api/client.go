// Package api is the HTTP client for the flashcard backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vodila/vodila/internal/identity"
)

// DefaultBaseURL is the backend used when none is configured.
const DefaultBaseURL = "http://localhost:8000/api"

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 512

// Config holds client settings.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client talks to the backend. It is safe for concurrent use.
type Client struct {
	base      *url.URL
	http      *http.Client
	userAgent string
	log       logrus.FieldLogger

	mu    sync.RWMutex
	ident identity.Identity
	set   bool
}

// NewClient creates a Client for cfg.BaseURL.
func NewClient(cfg Config, log logrus.FieldLogger) (*Client, error) {
	raw := cfg.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(raw, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("parse base url: unsupported scheme %q", base.Scheme)
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = "vodila"
	}
	return &Client{
		base:      base,
		http:      &http.Client{Timeout: cfg.Timeout},
		userAgent: ua,
		log:       log,
	}, nil
}

// SetIdentity sets the identity sent with progress calls.
func (c *Client) SetIdentity(id identity.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ident = id
	c.set = true
}

// Identity returns the identity sent with progress calls.
func (c *Client) Identity() (identity.Identity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ident, c.set
}

// BaseURL returns the resolved backend root.
func (c *Client) BaseURL() string { return c.base.String() }

// resolve joins an endpoint path onto the base URL.
func (c *Client) resolve(endpoint string, query url.Values) string {
	u := c.base.JoinPath(strings.TrimLeft(endpoint, "/"))
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

type request struct {
	method   string
	endpoint string
	query    url.Values
	body     any
	identify bool
	schema   *schema
}

// do sends r and decodes a successful JSON response into out.
func (c *Client) do(ctx context.Context, r request, out any) error {
	raw, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	if err := validateResponse(r.endpoint, r.schema, raw); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &MalformedResponseError{Endpoint: r.endpoint, Content: raw, Err: err}
	}
	return nil
}

func (c *Client) send(ctx context.Context, r request) (json.RawMessage, error) {
	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode body: %w", r.endpoint, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.resolve(r.endpoint, r.query), body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", r.endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.identify {
		c.identify(req)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Endpoint: r.endpoint, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Endpoint: r.endpoint, Err: err}
	}

	c.log.WithFields(logrus.Fields{
		"endpoint": r.endpoint,
		"method":   r.method,
		"status":   resp.StatusCode,
		"latency":  time.Since(start).Round(time.Millisecond),
	}).Debug("api call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{Endpoint: r.endpoint, Status: resp.StatusCode, Body: truncate(raw)}
	}
	return raw, nil
}

func (c *Client) identify(req *http.Request) {
	id, ok := c.Identity()
	if !ok {
		return
	}
	name, value := id.Header()
	if value != "" {
		req.Header.Set(name, value)
	}
	if id.Token != "" {
		req.Header.Set("Authorization", "Bearer "+id.Token)
	}
}

func truncate(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}
