package generic

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/CrazyPigHead/t-reader/internal/util"

	"golang.org/x/net/html/charset"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.StatusCode)
}

// HTTPFetcher retrieves documents as UTF-8 text.
type HTTPFetcher struct {
	client   *http.Client
	attempts int
	backoff  time.Duration
}

func NewFetcher(c *http.Client) *HTTPFetcher {
	return &HTTPFetcher{
		client:   c,
		attempts: 3,
		backoff:  500 * time.Millisecond,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}

	resp, err := util.DoWithRetry(f.client, req, f.attempts, f.backoff)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", target, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{URL: target, StatusCode: resp.StatusCode}
	}

	r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", target, err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", target, err)
	}

	return string(data), nil
}
