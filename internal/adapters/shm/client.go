// Package shm is the typed client for the SHM billing backend. The Client
// wraps transport concerns (session cookie, timeout, error normalization);
// the per-area files (auth, user, services, payments) expose the typed
// operations the application layer consumes.
package shm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bkeenke/bkcloud-cli/internal/domain"
	"github.com/bkeenke/bkcloud-cli/internal/ports"
	"go.uber.org/zap"
)

// SessionCookieName is the fixed cookie the backend reads the session from.
const SessionCookieName = "session_id"

const maxResponseBytes = 1 << 20

// APIError is a non-2xx backend response, carrying the backend-supplied
// message when one was present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap maps authentication failures onto domain.ErrSessionExpired so the
// bootstrap can errors.Is its way to "stored session is stale".
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
		return domain.ErrSessionExpired
	}
	return nil
}

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger

	mu      sync.RWMutex
	session domain.SessionID
}

var (
	_ ports.AuthAPI        = (*Client)(nil)
	_ ports.UserAPI        = (*Client)(nil)
	_ ports.ServicesAPI    = (*Client)(nil)
	_ ports.PaymentsAPI    = (*Client)(nil)
	_ ports.SessionCarrier = (*Client)(nil)
)

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *Client) SetSession(id domain.SessionID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = id
}

func (c *Client) ClearSession() {
	c.SetSession("")
}

func (c *Client) Session() domain.SessionID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	if session := c.Session(); session != "" {
		request.Header.Set("Cookie", SessionCookieName+"="+string(session))
	}

	response, err := c.http.Do(request)
	if err != nil {
		return normalizeTransportError(method, path, err)
	}
	defer response.Body.Close()

	data, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		apiErr := &APIError{
			Status:  response.StatusCode,
			Message: backendMessage(data, response.StatusCode),
		}
		c.log.Debug("backend error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", response.StatusCode),
			zap.String("message", apiErr.Message))
		return apiErr
	}

	// An empty body is a valid empty result.
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func normalizeTransportError(method, path string, err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return fmt.Errorf("%w: %s %s", domain.ErrTimeout, method, path)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s %s", domain.ErrTimeout, method, path)
	}
	return fmt.Errorf("perform request: %w", err)
}

func backendMessage(data []byte, status int) string {
	var payload struct {
		Error string `json:"error"`
		Msg   string `json:"msg"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Msg != "" {
			return payload.Msg
		}
	}
	return fmt.Sprintf("HTTP error %d", status)
}
