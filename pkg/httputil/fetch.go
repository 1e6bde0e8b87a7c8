package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultClient is the HTTP client used when a Fetcher is constructed
// without one. The generous timeout accommodates large hero images over
// slow links; callers that need tighter bounds supply their own client.
var DefaultClient = &http.Client{Timeout: 30 * time.Second}

// maxAssetBytes bounds the size of a fetched asset (20 MiB).
const maxAssetBytes = 20 << 20

// Fetch performs a GET with retry and returns the response body.
//
// Transport errors and 5xx responses are retried with backoff; any other
// non-200 status fails immediately. The body is limited to 20 MiB to keep
// a misbehaving asset host from exhausting memory.
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = DefaultClient
	}

	var body []byte
	err := RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		resp, err := client.Do(req)
		if err != nil {
			return &RetryableError{Err: err}
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return &RetryableError{Err: fmt.Errorf("GET %s: status %d", url, resp.StatusCode)}
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes))
		if err != nil {
			return &RetryableError{Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}
