// Package api implements the HTTP clients for the backend REST surface: one
// shared transport plus typed clients for auth, projects, users, phases and
// reference data.
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

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/ports"
)

const maxResponseBody = 4 << 20

// envelope is the uniform backend response shape. Login and me carry the
// user (and token) at the top level; list and detail endpoints use data and
// count.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Count   int             `json:"count,omitempty"`
	Token   string          `json:"token,omitempty"`
	User    json.RawMessage `json:"user,omitempty"`
}

// Client is the shared transport. It attaches the JSON content type, a
// request id, and the bearer token when the session store holds one, decodes
// the response envelope, and funnels every mid-session 401 into the single
// registered auth-lost handler.
type Client struct {
	baseURL string
	httpc   *http.Client
	store   ports.SessionStore
	log     zerolog.Logger

	mu         sync.Mutex
	onAuthLost func(reason string)
}

// Option customises a Client at construction time.
type Option func(*Client)

// WithHTTPClient substitutes the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// WithTimeout sets the per-request timeout on the underlying http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

func NewClient(baseURL string, store ports.SessionStore, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 15 * time.Second},
		store:   store,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnAuthLost registers the handler invoked when a non-auth endpoint answers
// 401. Registering replaces any previous handler; this is the single
// dispatch point for the cross-cutting "authentication lost" signal.
func (c *Client) OnAuthLost(fn func(reason string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onAuthLost = fn
}

func (c *Client) dispatchAuthLost(reason string) {
	c.mu.Lock()
	fn := c.onAuthLost
	c.mu.Unlock()
	if fn != nil {
		fn(reason)
	}
}

// isAuthPath reports whether the path belongs to the login/me flow, whose 401
// handling is local to the session service rather than broadcast.
func isAuthPath(path string) bool {
	return strings.HasPrefix(path, "/auth/")
}

// do performs one request/response cycle and returns the decoded envelope.
// A non-2xx status is a failure regardless of body shape.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*envelope, error) {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(raw)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if sess, ok, _ := c.store.Read(); ok {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return nil, &domain.RequestError{
			Kind:    domain.KindNetwork,
			Message: "le serveur est injoignable",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, &domain.RequestError{Kind: domain.KindNetwork, Message: "réponse illisible", Err: err}
	}

	var env envelope
	_ = json.Unmarshal(raw, &env) // tolerate empty or non-JSON bodies

	if resp.StatusCode == http.StatusUnauthorized {
		if !isAuthPath(path) {
			c.dispatchAuthLost(failureMessage(env, resp))
		}
		return nil, &domain.RequestError{
			Kind:    domain.KindAuth,
			Status:  resp.StatusCode,
			Message: failureMessage(env, resp),
			Err:     domain.ErrNotAuthenticated,
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.RequestError{
			Kind:    domain.KindBusiness,
			Status:  resp.StatusCode,
			Message: failureMessage(env, resp),
		}
	}
	if !env.Success {
		return nil, &domain.RequestError{
			Kind:    domain.KindBusiness,
			Status:  resp.StatusCode,
			Message: failureMessage(env, resp),
		}
	}
	return &env, nil
}

func failureMessage(env envelope, resp *http.Response) string {
	if env.Message != "" {
		return env.Message
	}
	return http.StatusText(resp.StatusCode)
}

// get performs a GET and unmarshals the envelope's data into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	env, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return decodeData(env, out)
}

// post performs a POST with a JSON body, discarding any returned data.
func (c *Client) post(ctx context.Context, path string, body any) error {
	_, err := c.do(ctx, http.MethodPost, path, nil, body)
	return err
}

// put performs a PUT with a JSON body, discarding any returned data.
func (c *Client) put(ctx context.Context, path string, body any) error {
	_, err := c.do(ctx, http.MethodPut, path, nil, body)
	return err
}

// delete performs a DELETE.
func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

func decodeData(env *envelope, out any) error {
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
