// Package client asks questions of a running cyphergen server.
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

	"github.com/genegraph/cyphergen/pkg/generator"
	"github.com/genegraph/cyphergen/pkg/models"
	"github.com/genegraph/cyphergen/pkg/version"
)

const (
	queryPath      = "/generate-cypher/"
	defaultTimeout = 5 * time.Minute
)

type Client struct {
	endpoint string
	client   *http.Client
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func New(endpoint string, options ...Option) *Client {
	c := &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: defaultTimeout},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Error is a pipeline failure reported by the server.
type Error struct {
	Status  int
	Kind    generator.Kind
	Query   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Ask posts question to the server. Pipeline failures reported by the server
// come back as *Error.
func (c *Client) Ask(ctx context.Context, question string) (*models.QueryResponse, error) {
	content, err := json.Marshal(&models.QueryRequest{Question: question})
	if err != nil {
		return nil, fmt.Errorf("unable to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+queryPath, bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("unable to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("cyphergen/%s", version.Version()))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var e models.ErrorResponse
		if err := json.Unmarshal(body, &e); err != nil || e.Error == "" {
			return nil, fmt.Errorf("server returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
		}
		if e.Kind == "" {
			return nil, fmt.Errorf("server returned %s: %s", resp.Status, e.Error)
		}
		return nil, &Error{Status: resp.StatusCode, Kind: generator.Kind(e.Kind), Query: e.Query, Message: e.Error}
	}

	var r models.QueryResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("unable to unmarshal response: %w", err)
	}
	return &r, nil
}
