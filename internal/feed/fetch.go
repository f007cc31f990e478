// Package feed fetches the published risk document over HTTP.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"riskboard/internal/risk"
)

const (
	defaultTimeout = 15 * time.Second
	previewLen     = 120
)

// Client fetches one snapshot per call. It never retries; the poller treats a
// failure as "no data this cycle".
type Client struct {
	url  string
	http *http.Client
	now  func() time.Time
}

func NewClient(dataURL string) *Client {
	return &Client{
		url:  dataURL,
		http: &http.Client{Timeout: defaultTimeout},
		now:  time.Now,
	}
}

// Fetch GETs the document with a cache-busting query parameter.
func (c *Client) Fetch(ctx context.Context) (*risk.Snapshot, error) {
	u, err := c.bustedURL()
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	body, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return nil, fmt.Errorf("failed to read data response: %w", readErr)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("data source returned %d: %s", resp.StatusCode, preview(body))
	}
	if strings.HasPrefix(strings.TrimSpace(string(body)), "<") {
		return nil, fmt.Errorf("data source returned non-json body: %s", preview(body))
	}
	s, err := risk.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("%w; body: %s", err, preview(body))
	}
	return s, nil
}

func (c *Client) bustedURL() (string, error) {
	u, err := url.Parse(c.url)
	if err != nil {
		return "", fmt.Errorf("bad data url %q: %w", c.url, err)
	}
	q := u.Query()
	q.Set("_", strconv.FormatInt(c.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func preview(body []byte) string {
	s := string(body)
	if len(s) > previewLen {
		s = s[:previewLen]
	}
	return s
}
