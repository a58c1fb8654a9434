// Package apiclient is a thin wrapper around the REST api the front end
// talks to. It does not retry, time out or classify failures.
package apiclient

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

	"github.com/ghaggin/portal/internal/config"
	"github.com/ghaggin/portal/internal/model"
)

// ErrRequestFailed is the only failure callers see.
var ErrRequestFailed = errors.New("request failed")

const (
	pathUsers  = "/users/"
	pathLogin  = "/auth/login"
	pathSignup = "/auth/signup"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(c *config.Config) *Client {
	return NewWithHTTPClient(c.Web.APIBaseURL, &http.Client{})
}

func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: hc}
}

func (c *Client) GetUser(ctx context.Context, username string) (*model.User, error) {
	u := &model.User{}
	err := c.do(ctx, http.MethodGet, pathUsers+url.PathEscape(username), nil, u)
	if err != nil {
		return nil, err
	}
	return u, nil
}

type tokenResponse struct {
	Token string `json:"token"`
}

// token rejects a 2xx response that carries no token.
func (r tokenResponse) token(path string) (string, error) {
	if r.Token == "" {
		return "", fmt.Errorf("%w: POST %s: empty token", ErrRequestFailed, path)
	}
	return r.Token, nil
}

func (c *Client) Login(ctx context.Context, creds model.Credentials) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, pathLogin, creds, &resp); err != nil {
		return "", err
	}
	return resp.token(pathLogin)
}

func (c *Client) Signup(ctx context.Context, s model.Signup) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, pathSignup, s, &resp); err != nil {
		return "", err
	}
	return resp.token(pathSignup)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: %s %s: %v", ErrRequestFailed, method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrRequestFailed, method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrRequestFailed, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s %s returned %d: %s", ErrRequestFailed, method, path, resp.StatusCode, bytes.TrimSpace(msg))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: decode: %v", ErrRequestFailed, method, path, err)
	}
	return nil
}
