// Package api wraps the GIVY REST surface. Every response shares the
// envelope {isSuccess, code, message, result}; an unsuccessful envelope
// becomes an *APIError carrying the server message.
//
// Two channels wrap the same transport: the unauthenticated channel
// (login, signup, refresh) never carries a bearer token, and the
// authenticated channel injects one and reacts to 401 with a single
// bounded refresh-and-retry.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Team-GIVY/givy-cli/internal/applog"
)

// Refresher exchanges the stored refresh token for a new access token.
// Implemented by the auth manager; the pipeline calls it at most once
// per logical request.
type Refresher interface {
	Refresh(ctx context.Context) (accessToken string, err error)
}

// envelope is the shared response wrapper.
type envelope struct {
	IsSuccess bool            `json:"isSuccess"`
	Code      string          `json:"code"`
	Message   string          `json:"message"`
	Result    json.RawMessage `json:"result"`
}

// Client issues requests against the GIVY backend.
type Client struct {
	BaseURL string
	HTTP    *http.Client

	// Token returns the current access token, or "" when logged out.
	// An absent token does not block authenticated requests: they go
	// out bare and the server answers 401.
	Token func() string

	// Refresher handles 401 recovery. Nil disables refresh entirely.
	Refresher Refresher

	// OnForcedLogout runs when refresh is impossible: session cleared,
	// screen marked login, application restarted. The pipeline calls it
	// and then propagates ErrSessionExpired.
	OnForcedLogout func()
}

// New returns a Client with the default transport timeout.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// authExempt reports whether path belongs to the auth surface itself.
// A 401 from these endpoints must never trigger a refresh: refreshing
// through the endpoint that just failed is a feedback loop.
func authExempt(path string) bool {
	return strings.HasPrefix(path, "/auth") || strings.HasPrefix(path, "/oauth")
}

// Public issues a request on the unauthenticated channel. The
// Authorization header is stripped unconditionally so a stale token can
// never leak into a public endpoint.
func (c *Client) Public(ctx context.Context, method, path string, body, out any) error {
	return c.send(ctx, method, path, body, out, false, 0)
}

// Authed issues a request on the authenticated channel with a retry
// budget of one refresh-and-retry.
func (c *Client) Authed(ctx context.Context, method, path string, body, out any) error {
	return c.send(ctx, method, path, body, out, true, 1)
}

// send is the single transport path. retriesLeft is threaded as a value
// so the one-retry bound is visible in the call chain rather than
// hidden in request state.
func (c *Client) send(ctx context.Context, method, path string, body, out any, authed bool, retriesLeft int) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	if authed {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	} else {
		req.Header.Del("Authorization")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		applog.Error("api.request", err, "method", method, "path", path)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	applog.Debug("api.request", "method", method, "path", path,
		"status", resp.StatusCode, "request_id", req.Header.Get("X-Request-ID"))

	if resp.StatusCode == http.StatusUnauthorized && authed {
		io.Copy(io.Discard, resp.Body)
		return c.recover(ctx, method, path, body, out, retriesLeft)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}

	if !env.IsSuccess {
		applog.Info("api.envelope.fail", "path", path, "code", env.Code)
		return &APIError{Status: resp.StatusCode, Code: env.Code, Message: env.Message}
	}

	if out != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("%s %s: decode result: %w", method, path, err)
		}
	}
	return nil
}

// recover handles a 401 on the authenticated channel: one refresh, one
// retry, or a forced logout when recovery is impossible.
func (c *Client) recover(ctx context.Context, method, path string, body, out any, retriesLeft int) error {
	if retriesLeft <= 0 || authExempt(path) || c.Refresher == nil {
		applog.Info("api.unauthorized", "path", path, "retried", retriesLeft <= 0)
		return &APIError{Status: http.StatusUnauthorized, Message: "unauthorized"}
	}

	if _, err := c.Refresher.Refresh(ctx); err != nil {
		applog.Error("api.refresh", err, "path", path)
		c.forceLogout()
		return fmt.Errorf("%s %s: %w: %v", method, path, ErrSessionExpired, err)
	}

	applog.Info("api.retry", "path", path)
	return c.send(ctx, method, path, body, out, true, retriesLeft-1)
}

func (c *Client) token() string {
	if c.Token == nil {
		return ""
	}
	return c.Token()
}

func (c *Client) forceLogout() {
	if c.OnForcedLogout != nil {
		c.OnForcedLogout()
	}
}
