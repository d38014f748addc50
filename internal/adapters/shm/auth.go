package shm

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/bkeenke/bkcloud-cli/internal/domain"
)

// authResponse covers both auth endpoints: the Telegram exchange answers
// with session_id, the login endpoint with a bare id.
type authResponse struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
}

func (r authResponse) session() domain.SessionID {
	if r.SessionID != "" {
		return domain.SessionID(r.SessionID)
	}
	return domain.SessionID(r.ID)
}

func (c *Client) TelegramAuth(ctx context.Context, initData string) (domain.SessionID, error) {
	var response authResponse
	path := "/telegram/webapp/auth?initData=" + url.QueryEscape(initData)
	if err := c.get(ctx, path, &response); err != nil {
		return "", fmt.Errorf("telegram auth: %w", err)
	}

	session := response.session()
	if session == "" {
		return "", errors.New("telegram auth: empty session id")
	}
	return session, nil
}

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.SessionID, error) {
	body := map[string]string{
		"login":    creds.Login,
		"password": creds.Password,
	}

	var response authResponse
	if err := c.post(ctx, "/user/auth", body, &response); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	session := response.session()
	if session == "" {
		return "", errors.New("login: empty session id")
	}
	return session, nil
}

// RegistrationOpen infers registration availability from an unauthenticated
// profile read. The backend exposes no capability endpoint for this; any
// failure, including transport ones, reads as "closed".
func (c *Client) RegistrationOpen(ctx context.Context) bool {
	return c.get(ctx, "/user", nil) == nil
}
