package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultTimeout = 30 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
	auth    func(r *http.Request) // injects auth headers
}

// SetAuth allows setting the auth function after client creation
func (c *Client) SetAuth(authFunc func(r *http.Request)) {
	c.auth = authFunc
}

type Option func(*Client)

// WithTimeout overrides the HTTP client timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

func New(base string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(base, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		auth:    func(*http.Request) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL joins the base URL and a relative path, keeping the query string intact
func (c *Client) URL(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// Get issues a GET request and decodes the JSON body into out.
// Non-2xx responses are returned as *APIError.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(path), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json; charset=utf-8")

	c.auth(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
		return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode), Body: string(b)}
	}
	if out == nil {
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

type APIError struct {
	Status  int
	Message string
	Body    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api %d %s: %s", e.Status, e.Message, strings.TrimSpace(e.Body))
}
