package contentful

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

const (
	defaultManagementURL = "https://api.contentful.com"
	defaultPreviewURL    = "https://preview.contentful.com"

	userAgent = "curator/0.1.0"
)

// Config carries the space coordinates and credentials shared by both API
// clients.
type Config struct {
	SpaceID       string
	EnvironmentID string
	CMAToken      string
	CPAToken      string
	ManagementURL string
	PreviewURL    string
	HTTPClient    HTTPDoer
}

func (c Config) httpClient() HTTPDoer {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

// apiClient is the request plumbing shared by the management and preview
// surfaces; they differ only in host and token.
type apiClient struct {
	baseURL string
	token   string
	space   string
	env     string
	client  HTTPDoer
}

// environmentPath prefixes a resource path with the space/environment scope.
func (c *apiClient) environmentPath(resource string) string {
	return fmt.Sprintf("/spaces/%s/environments/%s%s", c.space, c.env, resource)
}

// doJSON performs one API request. A version > 0 is sent as the optimistic
// concurrency header. Responses >= 400 become errors carrying the body text.
func (c *apiClient) doJSON(ctx context.Context, method, path string, query url.Values, version int, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/vnd.contentful.management.v1+json")
	}
	if version > 0 {
		req.Header.Set("X-Contentful-Version", strconv.Itoa(version))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("contentful request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("contentful %s %s returned %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
