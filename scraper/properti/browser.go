package properti

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"tanah-scraper/utils"
)

// BrowserFetcher renders pages through headless Chrome. Needed for
// deployments where the site only populates listings client-side; the
// resolver then reads the embedded JSON out of the rendered document.
type BrowserFetcher struct {
	chromeBin string
	timeout   time.Duration
	logger    *utils.Logger
}

// NewBrowserFetcher creates a BrowserFetcher. chromeBin may be empty, in
// which case the binary is located on PATH.
func NewBrowserFetcher(chromeBin string, timeout time.Duration, logger *utils.Logger) *BrowserFetcher {
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	return &BrowserFetcher{chromeBin: chromeBin, timeout: timeout, logger: logger}
}

// Fetch navigates to the URL and returns the rendered document.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (*PageResult, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent(userAgent),
	)
	if f.chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(f.chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, f.timeout)
	defer cancelTimeout()

	f.logger.Debug("[browser] Rendering %s", url)

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(4*time.Second), // give the page time to hydrate
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, fmt.Errorf("browser fetch %s: %w", url, err)
	}

	return &PageResult{
		Status:      http.StatusOK,
		ContentType: "text/html",
		Body:        html,
	}, nil
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary() string {
	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
