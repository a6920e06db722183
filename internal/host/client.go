package host

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Source is the host collaborator the viewer talks to: the runner daemon
// that executes modeling runs. Implemented by *Client; test doubles satisfy
// it too.
type Source interface {
	FetchStatus(ctx context.Context) (*StatusResponse, error)
	FetchRunLog(ctx context.Context, query RunLogQuery) (RunLogResponse, error)
	FetchOutput(ctx context.Context, query OutputQuery) (OutputBatch, error)
}

var _ Source = (*Client)(nil)

// Client talks to the runner's HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBind   = "127.0.0.1:56789"
	defaultUserAgent = "investlog/0.1"
	requestTimeout   = 5 * time.Second
)

// NewClient builds a Client from the host:port the runner listens on.
func NewClient(apiBind string) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchStatus retrieves the runner's state: whether a run is active and,
// if so, its identifier, logfile path, and module-name pattern.
func (c *Client) FetchStatus(ctx context.Context) (*StatusResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload StatusResponse
	if err := c.do(ctx, http.MethodGet, "/api/status", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// RunLogQuery identifies the historical log content of one past run.
type RunLogQuery struct {
	Path  string
	RunID string
}

// FetchRunLog asks the runner for the full log content of a run that is
// not currently active. One-shot; the caller does not retry.
func (c *Client) FetchRunLog(ctx context.Context, query RunLogQuery) (RunLogResponse, error) {
	if c == nil {
		return RunLogResponse{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(query.RunID) == "" {
		return RunLogResponse{}, fmt.Errorf("run id required")
	}
	values := url.Values{}
	values.Set("run", query.RunID)
	if path := strings.TrimSpace(query.Path); path != "" {
		values.Set("path", path)
	}
	rel := &url.URL{Path: "/api/runlog", RawQuery: values.Encode()}
	var payload RunLogResponse
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return RunLogResponse{}, err
	}
	return payload, nil
}

// OutputQuery configures an incremental read of a live run's output.
type OutputQuery struct {
	RunID string
	Since uint64
	Limit int
}

// FetchOutput retrieves output lines produced by the active run after the
// Since cursor. The returned Next cursor feeds the following request.
func (c *Client) FetchOutput(ctx context.Context, query OutputQuery) (OutputBatch, error) {
	if c == nil {
		return OutputBatch{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(query.RunID) == "" {
		return OutputBatch{}, fmt.Errorf("run id required")
	}
	values := url.Values{}
	values.Set("run", query.RunID)
	if query.Since > 0 {
		values.Set("since", strconv.FormatUint(query.Since, 10))
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	rel := &url.URL{Path: "/api/output", RawQuery: values.Encode()}
	var payload OutputBatch
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return OutputBatch{}, err
	}
	return payload, nil
}

func (c *Client) do(ctx context.Context, method, path string, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.String(), resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_bind %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
