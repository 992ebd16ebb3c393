package properti

import (
	"context"
	"fmt"
	"os"
	"time"

	"tanah-scraper/config"
	"tanah-scraper/models"
	"tanah-scraper/services"
	"tanah-scraper/utils"
)

// Scraper is the run controller: it drives the pipeline across a bounded
// page sequence, one page at a time. The site penalizes bursty access, so
// sequential fetching with a mandatory inter-page delay is a functional
// requirement, not an optimization. RunStats and the SeenSet are owned
// here; nothing else writes to them.
type Scraper struct {
	cfg      *config.Config
	logger   *utils.Logger
	source   PageSource
	pipeline *services.Pipeline
	retry    *utils.RetryConfig
	sleep    func(time.Duration)

	stats models.RunStats
	seen  *services.SeenSet
}

// New creates a ready-to-use Scraper.
func New(cfg *config.Config, logger *utils.Logger, source PageSource, pipeline *services.Pipeline) *Scraper {
	return &Scraper{
		cfg:      cfg,
		logger:   logger,
		source:   source,
		pipeline: pipeline,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			Delay:       time.Duration(cfg.RetryDelayMs) * time.Millisecond,
			Logger:      logger,
		},
		sleep: time.Sleep,
		seen:  services.NewSeenSet(),
	}
}

// Run processes pages 1..PagesToScrape and returns the accepted listings
// in source order. A page that keeps failing is skipped, never fatal; the
// run stops early when a page resolves zero raw items, which usually
// signals end-of-results or blocking. Cancellation is honored at page
// boundaries only.
func (s *Scraper) Run(ctx context.Context) ([]*models.Listing, *models.RunStats, error) {
	s.logger.Info("[scraper] Starting run — %d pages, surface band %d–%d sqm",
		s.cfg.PagesToScrape, s.cfg.MinSurfaceSqm, s.cfg.MaxSurfaceSqm)

	var accepted []*models.Listing
	for page := 1; page <= s.cfg.PagesToScrape; page++ {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("[scraper] Run cancelled at page %d", page)
			return accepted, &s.stats, err
		}

		if page > 1 {
			s.sleep(time.Duration(s.cfg.PageDelayMs) * time.Millisecond)
		}

		url := fmt.Sprintf(s.cfg.SearchURLTemplate, page)
		s.logger.Info("[scraper] Page %d — %s", page, url)

		result, err := s.fetchPage(ctx, page, url)
		if err != nil {
			s.logger.Error("[scraper] Page %d skipped: %v", page, err)
			continue
		}

		seenBefore := s.stats.TotalSeen
		pageListings := s.pipeline.Process([]byte(result.Body), &s.stats, s.seen)
		accepted = append(accepted, pageListings...)

		if s.stats.TotalSeen == seenBefore {
			s.dumpDebugPayload(result.Body)
			s.logger.Warn("[scraper] Page %d resolved zero items — stopping early", page)
			break
		}

		s.logger.Info("[scraper] Page %d done — %d accepted so far", page, len(accepted))
	}

	s.logger.Info("[scraper] Run complete — %d items seen, %d accepted",
		s.stats.TotalSeen, s.stats.ValidCount)
	return accepted, &s.stats, nil
}

// fetchPage fetches one page within the retry budget. Permanent failures
// abandon the page immediately.
func (s *Scraper) fetchPage(ctx context.Context, page int, url string) (*PageResult, error) {
	var result *PageResult
	err := s.retry.Do(fmt.Sprintf("fetch-page-%d", page), func() error {
		res, err := s.source.Fetch(ctx, url)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	return result, err
}

// dumpDebugPayload saves the last payload body so a structural miss can be
// inspected offline. Best effort.
func (s *Scraper) dumpDebugPayload(body string) {
	if s.cfg.DebugHTMLPath == "" || body == "" {
		return
	}
	if err := os.WriteFile(s.cfg.DebugHTMLPath, []byte(body), 0644); err != nil {
		s.logger.Warn("[scraper] Could not write debug payload: %v", err)
		return
	}
	s.logger.Info("[scraper] Unresolved payload saved to %s", s.cfg.DebugHTMLPath)
}
