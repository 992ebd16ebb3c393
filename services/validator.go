package services

import "tanah-scraper/models"

// Validate applies the acceptance rules in a fixed order so every rejection
// is attributed to exactly one reason: a listing failing several checks is
// always reported under the first one. Surface bounds are inclusive.
func Validate(l *models.Listing, cfg models.AcceptanceConfig) (bool, models.RejectionReason) {
	switch {
	case l.Link == models.LinkMissing:
		return false, models.ReasonMissingLink
	case l.SurfaceSqm == 0:
		return false, models.ReasonMissingSurface
	case l.SurfaceSqm < cfg.MinSurfaceSqm:
		return false, models.ReasonSurfaceTooSmall
	case l.SurfaceSqm > cfg.MaxSurfaceSqm:
		return false, models.ReasonSurfaceTooBig
	case l.PriceIdr == 0:
		return false, models.ReasonMissingPrice
	default:
		return true, ""
	}
}
