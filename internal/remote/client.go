// Package remote talks to the task storage service over HTTP.
//
// Every call is attempted exactly once. Any network failure or non-2xx
// response is reported as a *model.TransportError.
package remote

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
	"time"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/tasksync/internal/model"
)

const tasksPath = "/tasks"

type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("remote: parse base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("remote: base url must be an absolute http(s) url: %q", baseURL)
	}
	c := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{},
		userAgent:  "tasksync",
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	endpoint := c.baseURL + tasksPath
	body, err := c.do(ctx, "fetch tasks", http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	tasks := make([]model.Task, 0)
	if len(bytes.TrimSpace(body)) == 0 {
		return tasks, nil
	}
	if err := json.Unmarshal(body, &tasks); err != nil {
		return nil, &model.TransportError{
			Op:     "fetch tasks",
			Method: http.MethodGet,
			URL:    endpoint,
			Err:    fmt.Errorf("decode response: %w", err),
		}
	}
	if tasks == nil {
		tasks = make([]model.Task, 0)
	}
	return tasks, nil
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (c *Client) CreateTask(ctx context.Context, title, description string) error {
	payload, err := json.Marshal(createTaskRequest{Title: title, Description: description})
	if err != nil {
		return fmt.Errorf("remote: encode task: %w", err)
	}
	_, err = c.do(ctx, "add task", http.MethodPost, c.baseURL+tasksPath, payload)
	return err
}

func (c *Client) ToggleTask(ctx context.Context, id string) error {
	_, err := c.do(ctx, "update task", http.MethodPatch, c.taskURL(id), nil)
	return err
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	_, err := c.do(ctx, "delete task", http.MethodDelete, c.taskURL(id), nil)
	return err
}

func (c *Client) taskURL(id string) string {
	return c.baseURL + tasksPath + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, op, method, endpoint string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, &model.TransportError{Op: op, Method: method, URL: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("method", method).
			Str("url", endpoint).
			Dur("took", time.Since(start)).
			Msg("request failed")
		return nil, &model.TransportError{Op: op, Method: method, URL: endpoint, Err: unwrapURLError(err)}
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	c.logger.Debug().
		Str("method", method).
		Str("url", endpoint).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &model.TransportError{Op: op, Method: method, URL: endpoint, StatusCode: resp.StatusCode}
	}
	if readErr != nil {
		return nil, &model.TransportError{Op: op, Method: method, URL: endpoint, Err: fmt.Errorf("read response: %w", readErr)}
	}
	return body, nil
}

// unwrapURLError drops the *url.Error envelope, which repeats method and url.
func unwrapURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		return uerr.Err
	}
	return err
}
