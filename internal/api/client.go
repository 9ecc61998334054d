package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	ghAPI "github.com/cli/go-gh/v2/pkg/api"

	"github.com/altinukshini/schedviz/internal/model"
)

type Options struct {
	// BaseURL is the solver's root, e.g. http://localhost:5000.
	BaseURL string
	// Token is sent in the Authorization header when set.
	Token string
	// Timeout bounds each request when positive. Zero waits for the solver
	// however long a search takes.
	Timeout time.Duration
	// HTTPLog receives request/response traces when Verbose is set.
	HTTPLog io.Writer
	Verbose bool
	Logger  *slog.Logger
}

type Client struct {
	rest    *ghAPI.RESTClient
	baseURL string
	logger  *slog.Logger
}

func NewClient(opts Options) (*Client, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse solver url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("solver url %q must be an absolute http(s) url", opts.BaseURL)
	}

	clientOpts := restOptions(opts, u.Hostname())
	rest, err := ghAPI.NewRESTClient(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create solver client: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{rest: rest, baseURL: base, logger: logger}, nil
}

func restOptions(opts Options, host string) ghAPI.ClientOptions {
	token := opts.Token
	if token == "" {
		// go-gh falls back to gh's stored credentials when the token is empty.
		token = "none"
	}
	clientOpts := ghAPI.ClientOptions{
		Host:         host,
		AuthToken:    token,
		Transport:    http.DefaultTransport,
		Timeout:      max(0, opts.Timeout),
		LogIgnoreEnv: true,
		Headers: map[string]string{
			"Accept": "application/json",
		},
	}
	if opts.Verbose && opts.HTTPLog != nil {
		clientOpts.Log = opts.HTTPLog
		clientOpts.LogVerboseHTTP = true
	}
	return clientOpts
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + "/" + strings.TrimPrefix(path, "/")
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	start := time.Now()
	err := c.rest.DoWithContext(ctx, method, c.endpoint(path), reader, result)
	if err != nil {
		err = classify(err, c.baseURL)
		c.logger.Warn("solver request failed", "method", method, "path", path, "error", err)
		return err
	}
	c.logger.Debug("solver request", "method", method, "path", path, "duration", time.Since(start))
	return nil
}

// Schedule submits a request and returns the response body untouched so the
// caller can keep the exact payload.
func (c *Client) Schedule(ctx context.Context, req model.ScheduleRequest) ([]byte, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "schedule", req, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) Algorithms(ctx context.Context) ([]model.Algorithm, error) {
	var list model.AlgorithmList
	if err := c.do(ctx, http.MethodGet, "algorithms", nil, &list); err != nil {
		return nil, err
	}
	return list.Algorithms, nil
}
