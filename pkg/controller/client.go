package controller

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/newtron-network/wancost/pkg/util"
	"github.com/newtron-network/wancost/pkg/version"
)

// DefaultBaseURL is the public controller endpoint.
const DefaultBaseURL = "https://api.elcapitan.cloudgenix.com"

// DefaultTimeout bounds a single API call.
const DefaultTimeout = 60 * time.Second

// Config holds the connection parameters for a Client.
type Config struct {
	BaseURL            string
	Timeout            time.Duration
	InsecureSkipVerify bool
	UserAgent          string
}

// Client talks to the controller on behalf of one session. It is not safe
// for concurrent use.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client

	token    string
	tenantID string
	email    string
}

// NewClient creates an unauthenticated client.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("controller URL %q must start with http:// or https://", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = timeout
	hc.Jar = jar
	if cfg.InsecureSkipVerify {
		if tr, ok := hc.Transport.(*http.Transport); ok {
			tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // operator opt-in
		}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "wancost/" + version.Version
	}

	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		http:      hc,
	}, nil
}

// BaseURL returns the controller endpoint this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do issues one API call. body, when non-nil, is sent as JSON; out, when
// non-nil, receives the decoded 2xx response.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("X-Auth-Token", c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s %s response: %w", method, path, err)
	}

	util.WithCall(method, path).
		WithField("status", resp.StatusCode).
		WithField("elapsed", time.Since(start).Round(time.Millisecond)).
		Debug("controller call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}
