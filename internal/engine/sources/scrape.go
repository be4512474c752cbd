package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"golang.org/x/time/rate"

	"github.com/anatolykoptev/go_jobagent/internal/engine"
)

const scrapeBodyLimit = 1 << 20 // 1 MiB per page

// Per-host rate limiters keep scraping polite: one request per second per
// board unless SCRAPE_RPS says otherwise.
var (
	limiterMu sync.Mutex
	limiters  = map[string]*rate.Limiter{}
)

func hostLimiter(host string) *rate.Limiter {
	limiterMu.Lock()
	defer limiterMu.Unlock()
	if l, ok := limiters[host]; ok {
		return l
	}
	rps := engine.Cfg.ScrapeRPS
	if rps <= 0 {
		rps = 1
	}
	l := rate.NewLimiter(rate.Limit(rps), 1)
	limiters[host] = l
	return l
}

// fetchPage fetches one board page, waiting on the host's rate limiter
// first. The stealth browser client is preferred; without one, a plain HTTP
// request with browser headers is attempted.
func fetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("scrape: parse url: %w", err)
	}
	if err := hostLimiter(u.Host).Wait(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, engine.Cfg.FetchTimeout)
	defer cancel()

	headers := engine.ChromeHeaders()
	headers["accept"] = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	headers["accept-language"] = "en-US,en;q=0.5"

	if engine.Cfg.BrowserClient != nil {
		return engine.RetryDo(ctx, engine.DefaultRetryConfig, func() ([]byte, error) {
			data, _, status, err := engine.Cfg.BrowserClient.Do(http.MethodGet, pageURL, headers, nil)
			if err != nil {
				return nil, err
			}
			if status != http.StatusOK {
				return nil, fmt.Errorf("scrape: status %d for %s", status, pageURL)
			}
			return data, nil
		})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := engine.Cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scrape: status %d for %s", resp.StatusCode, pageURL)
	}
	return io.ReadAll(io.LimitReader(resp.Body, scrapeBodyLimit))
}

// resolveURL joins a possibly relative href against the board's base URL.
func resolveURL(baseURL, href string) string {
	if href == "" {
		return ""
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
