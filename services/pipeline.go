package services

import (
	"tanah-scraper/models"
	"tanah-scraper/utils"
)

// Pipeline runs the per-payload extraction chain: resolve the listing
// collection, normalize each item, validate it, deduplicate it, collect
// the survivors. It never raises; every per-item failure degrades into a
// rejection counter.
type Pipeline struct {
	resolver   *Resolver
	normalizer *Normalizer
	accept     models.AcceptanceConfig
	logger     *utils.Logger
}

// NewPipeline wires the extraction stages together.
func NewPipeline(resolver *Resolver, normalizer *Normalizer, accept models.AcceptanceConfig, logger *utils.Logger) *Pipeline {
	return &Pipeline{
		resolver:   resolver,
		normalizer: normalizer,
		accept:     accept,
		logger:     logger,
	}
}

// Process handles one page payload and returns the accepted listings in
// source order. stats and seen are owned by the caller and updated in
// place.
func (p *Pipeline) Process(payload []byte, stats *models.RunStats, seen *SeenSet) []*models.Listing {
	items := p.resolver.Resolve(payload)
	if len(items) == 0 {
		return nil
	}

	rejectedBefore := stats.Rejected()
	duplicatesBefore := stats.Duplicates

	var accepted []*models.Listing
	for _, item := range items {
		stats.TotalSeen++

		listing := p.normalizer.Normalize(item)

		ok, reason := Validate(listing, p.accept)
		if !ok {
			stats.CountRejection(reason)
			p.logger.Debug("[pipeline] Rejected (%s): %s", reason, listing.Title)
			continue
		}

		if !seen.Admit(listing.IdentityKey) {
			stats.Duplicates++
			p.logger.Debug("[pipeline] Duplicate link skipped: %s", listing.Link)
			continue
		}

		stats.ValidCount++
		accepted = append(accepted, listing)
	}

	p.logger.Info("[pipeline] %d items → %d accepted (%d rejected, %d duplicates)",
		len(items), len(accepted), stats.Rejected()-rejectedBefore, stats.Duplicates-duplicatesBefore)
	return accepted
}
