// Package browseruse is a thin client for the Browser Use cloud API. The
// dashboard only forwards commands and reshapes responses; execution
// semantics belong to the remote service.
package browseruse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var ErrTaskNotFound = errors.New("browser-use task not found")

type TaskResponse struct {
	ID         string `json:"id"`
	Task       string `json:"task"`
	Status     string `json:"status"`
	Output     string `json:"output,omitempty"`
	LiveURL    string `json:"live_url,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
	FinishedAt string `json:"finished_at,omitempty"`
	// Some error payloads arrive with a 200.
	Detail string `json:"detail,omitempty"`
}

type runTaskRequest struct {
	Task string `json:"task"`
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// RunTask submits a natural-language task for execution and returns the
// created remote task.
func (c *Client) RunTask(ctx context.Context, prompt string) (*TaskResponse, error) {
	body, err := json.Marshal(runTaskRequest{Task: prompt})
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, "/api/v1/run-task", nil, bytes.NewReader(body))
}

func (c *Client) GetTask(ctx context.Context, taskID string) (*TaskResponse, error) {
	return c.do(ctx, http.MethodGet, "/api/v1/task/"+url.PathEscape(taskID), nil, nil)
}

func (c *Client) StopTask(ctx context.Context, taskID string) error {
	_, err := c.do(ctx, http.MethodPut, "/api/v1/stop-task", url.Values{"task_id": {taskID}}, nil)
	return err
}

func (c *Client) PauseTask(ctx context.Context, taskID string) error {
	_, err := c.do(ctx, http.MethodPut, "/api/v1/pause-task", url.Values{"task_id": {taskID}}, nil)
	return err
}

func (c *Client) ResumeTask(ctx context.Context, taskID string) error {
	_, err := c.do(ctx, http.MethodPut, "/api/v1/resume-task", url.Values{"task_id": {taskID}}, nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader) (*TaskResponse, error) {
	if c.apiKey == "" {
		return nil, errors.New("missing browser-use api key")
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrTaskNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e TaskResponse
		if json.Unmarshal(respBody, &e) == nil && e.Detail != "" {
			return nil, fmt.Errorf("browser-use error (%d): %s", resp.StatusCode, e.Detail)
		}
		return nil, fmt.Errorf("browser-use http error (%d): %s", resp.StatusCode, string(respBody))
	}

	var out TaskResponse
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &out); err != nil {
			return nil, err
		}
	}
	if out.Detail != "" {
		return &out, errors.New(out.Detail)
	}
	return &out, nil
}
