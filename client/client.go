// Package client talks to the notebook REST backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rpupo63/notebook/errs"
	"github.com/rpupo63/notebook/models"
)

const maxErrorBodyLog = 4 << 10

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New returns a client for the API rooted at baseURL, e.g.
// "http://localhost:8080/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListPosts fetches one page of the token owner's posts. req.Page is 0-indexed.
func (c *Client) ListPosts(ctx context.Context, token string, req models.PageRequest) (models.Page[models.Post], error) {
	var page models.Page[models.Post]
	err := c.do(ctx, "load posts", http.MethodGet, "/posts?"+req.Query().Encode(), token, nil, &page)
	return page, err
}

func (c *Client) CreatePost(ctx context.Context, token string, in models.PostInput) (models.Post, error) {
	var post models.Post
	err := c.do(ctx, "create post", http.MethodPost, "/posts", token, in, &post)
	return post, err
}

func (c *Client) UpdatePost(ctx context.Context, token string, id int64, in models.PostInput) (models.Post, error) {
	var post models.Post
	err := c.do(ctx, "update post", http.MethodPut, fmt.Sprintf("/posts/%d", id), token, in, &post)
	return post, err
}

func (c *Client) DeletePost(ctx context.Context, token string, id int64) error {
	return c.do(ctx, "delete post", http.MethodDelete, fmt.Sprintf("/posts/%d", id), token, nil, nil)
}

func (c *Client) Login(ctx context.Context, in models.Credentials) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, "log in", http.MethodPost, "/auth/login", "", in, &resp)
	return resp, err
}

func (c *Client) Signup(ctx context.Context, in models.Credentials) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, "sign up", http.MethodPost, "/auth/signup", "", in, &resp)
	return resp, err
}

// Refresh trades a refresh token for a new token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, "refresh session", http.MethodPost, "/auth/refresh", "", models.RefreshRequest{RefreshToken: refreshToken}, &resp)
	return resp, err
}

// Me returns the profile of the token owner.
func (c *Client) Me(ctx context.Context, token string) (models.Profile, error) {
	var profile models.Profile
	err := c.do(ctx, "load profile", http.MethodGet, "/auth/me", token, nil, &profile)
	return profile, err
}

// do sends one request. Non-2xx responses become *errs.BackendError with a
// generic message; the response body is only logged. A cancelled ctx is
// returned as the context error.
func (c *Client) do(ctx context.Context, op, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.logger.Debug().Err(err).Str("op", op).Msg("request failed")
		return errs.NewNetworkError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLog))
		c.logger.Debug().
			Str("op", op).
			Int("status", resp.StatusCode).
			Bytes("body", raw).
			Msg("backend returned an error")
		return errs.NewBackendError(op, resp.StatusCode)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		backendErr := errs.NewBackendError(op, resp.StatusCode)
		backendErr.Cause = err
		return backendErr
	}
	return nil
}
