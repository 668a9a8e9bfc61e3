package polaris

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// sessionRequest is the credential exchange body.
type sessionRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// sessionResponse is the session endpoint's answer.
type sessionResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges a username and password for a session token at
// {accountURL}/api/session. The caller holds the token and passes it to
// NewClient; this package never refreshes or invalidates it.
func Login(ctx context.Context, accountURL, username, password string, opts ...Option) (string, error) {
	if accountURL == "" {
		return "", errors.New("account URL is required")
	}
	if username == "" || password == "" {
		return "", errors.New("username and password are required")
	}

	o := resolveOptions(opts)
	url := strings.TrimRight(accountURL, "/") + sessionPath

	req, err := newJSONRequest(ctx, http.MethodPost, url, sessionRequest{
		Username: username,
		Password: password,
	}, "")
	if err != nil {
		return "", err
	}

	resp, err := o.doer.Do(req)
	if err != nil {
		return "", fmt.Errorf("session request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read session response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &AuthError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var session sessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return "", &AuthError{Message: fmt.Sprintf("decode session response: %v", err)}
	}
	if session.AccessToken == "" {
		return "", &AuthError{Message: "session response contained no access token"}
	}

	return session.AccessToken, nil
}
