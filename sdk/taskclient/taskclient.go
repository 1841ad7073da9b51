// Package taskclient provides a typed HTTP client for the task list API.
package taskclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Task is the wire representation served by the API.
type Task struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Cost      float64 `json:"cost"`
	LimitDate string  `json:"limit_date"`
	Position  int64   `json:"position"`
}

// TaskInput is the request body for create and update.
type TaskInput struct {
	Name      string  `json:"name"`
	Cost      float64 `json:"cost"`
	LimitDate string  `json:"limit_date"`
}

// Reposition pairs a task id with its new rank.
type Reposition struct {
	ID       string `json:"id"`
	Position int64  `json:"position"`
}

// APIError is a non-2xx response decoded from the {"error": "..."} body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// Client talks to the task list API.
type Client struct {
	baseURL string
	hc      *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.hc = hc
	}
}

// New creates a client against the given base URL, e.g. http://localhost:3333.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns all tasks ordered by position.
func (c *Client) List(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Create appends a new task and returns it with the assigned id and position.
func (c *Client) Create(ctx context.Context, input TaskInput) (Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPost, "/tasks", input, &task); err != nil {
		return Task{}, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// Update changes the name, cost and limit date of a task.
func (c *Client) Update(ctx context.Context, taskID string, input TaskInput) (Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+taskID, input, &task); err != nil {
		return Task{}, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// Delete removes a task.
func (c *Client) Delete(ctx context.Context, taskID string) error {
	if err := c.do(ctx, http.MethodDelete, "/tasks/"+taskID, nil, nil); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// Reorder submits a bulk reposition.
func (c *Client) Reorder(ctx context.Context, pairs []Reposition) error {
	body := struct {
		Tasks []Reposition `json:"tasks"`
	}{Tasks: pairs}

	if err := c.do(ctx, http.MethodPut, "/tasks/reorder", body, nil); err != nil {
		return fmt.Errorf("reorder tasks: %w", err)
	}
	return nil
}

// do performs a request and decodes the response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(data, &apiErr); err != nil || apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
