package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
)

const defaultHTTPTimeout = 10 * time.Second

// throttle spaces requests to a single upstream so burst traffic from
// concurrent searches does not trip provider rate limits.
type throttle struct {
	mu          sync.Mutex
	lastRequest time.Time
	minInterval time.Duration
}

func (t *throttle) wait() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.minInterval <= 0 {
		return
	}
	if elapsed := time.Since(t.lastRequest); elapsed < t.minInterval {
		time.Sleep(t.minInterval - elapsed)
	}
	t.lastRequest = time.Now()
}

// getJSON fetches url and decodes the body into out, retrying transient
// failures (network errors, 429, 5xx) with exponential backoff. Other
// HTTP errors abort immediately.
func getJSON(ctx context.Context, httpc *http.Client, url string, out interface{}) error {
	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := httpc.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				io.Copy(io.Discard, resp.Body)
				return fmt.Errorf("metadata: status %d from %s", resp.StatusCode, req.URL.Host)
			}
			if resp.StatusCode != http.StatusOK {
				io.Copy(io.Discard, resp.Body)
				return retry.Unrecoverable(fmt.Errorf("metadata: status %d from %s", resp.StatusCode, req.URL.Host))
			}
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return retry.Unrecoverable(fmt.Errorf("metadata: decode response: %w", err))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(300*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}
