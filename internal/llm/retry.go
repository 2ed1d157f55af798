package llm

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	maxRetries       = 3
	retryBaseBackoff = 500 * time.Millisecond
)

// httpStatusError is returned when retries are exhausted on a retryable
// status. Adapters fold it into their ProviderError.
type httpStatusError struct {
	Status int
	Body   string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("retries exhausted, last status %d: %s", e.Status, e.Body)
}

// doWithRetry issues the request, retrying on 429 and 5xx responses with
// linear backoff. The request builder is re-invoked per attempt because
// a consumed body cannot be resent. Context cancellation aborts between
// attempts and inside the backoff sleep.
func doWithRetry(ctx context.Context, client *http.Client, build func() (*http.Request, error)) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryBaseBackoff * time.Duration(attempt)):
			}
		}

		req, err := build()
		if err != nil {
			return nil, err
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			lastErr = &httpStatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
			continue
		}

		return resp, nil
	}

	return nil, lastErr
}
