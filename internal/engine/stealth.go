package engine

import (
	"context"

	stealth "github.com/anatolykoptev/go-stealth"
)

// BrowserClient is the stealth HTTP client used by the job-board scrapers.
// Requests carry a Chrome TLS fingerprint, which the boards require.
type BrowserClient = stealth.BrowserClient

// DefaultRetryConfig is the scraper-side retry policy.
var DefaultRetryConfig = stealth.DefaultRetryConfig

// ChromeHeaders returns browser-like request headers for scraper fetches.
func ChromeHeaders() map[string]string { return stealth.ChromeHeaders() }

// RetryDo retries fn with the stealth backoff policy, honouring ctx.
func RetryDo[T any](ctx context.Context, rc stealth.RetryConfig, fn func() (T, error)) (T, error) {
	return stealth.RetryDo(ctx, rc, fn)
}
