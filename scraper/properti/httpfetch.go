package properti

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tanah-scraper/utils"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// HTTPFetcher fetches pages over plain HTTP. It serves both the JSON API
// channel and server-rendered HTML pages.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher with the given request timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves one page. 5xx and 429 responses come back as transient
// errors for the retry loop; other non-2xx statuses are permanent.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*PageResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, utils.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/json;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "id-ID,id;q=0.9,en;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, utils.Permanent(fmt.Errorf("fetch %s: status %d", url, resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body %s: %w", url, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if !usableContentType(contentType) {
		return nil, utils.Permanent(fmt.Errorf("fetch %s: unusable content type %q", url, contentType))
	}

	return &PageResult{
		Status:      resp.StatusCode,
		ContentType: contentType,
		Body:        string(body),
	}, nil
}

// usableContentType accepts anything the resolver can work with: JSON or
// HTML/text. An empty header is tolerated and left to payload sniffing.
func usableContentType(ct string) bool {
	if ct == "" {
		return true
	}
	ct = strings.ToLower(ct)
	return strings.Contains(ct, "json") ||
		strings.Contains(ct, "html") ||
		strings.Contains(ct, "text/plain")
}
