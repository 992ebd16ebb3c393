package models

// RawItem is one listing exactly as the site delivered it. The shape is
// source-dependent and may be missing any field; all access goes through
// the capability-checked accessors in the services package.
type RawItem = map[string]interface{}

// LinkMissing is the sentinel link value for items whose canonical URL
// could not be constructed from any source field.
const LinkMissing = "URL_MISSING"

// Listing is the normalized output record. A zero SurfaceSqm or PriceIdr
// means "unknown", distinct from a legitimate value.
type Listing struct {
	Title       string `json:"title"`
	SurfaceSqm  int    `json:"surface_sqm"`
	PriceIdr    int64  `json:"price_idr"`
	PricePerSqm int64  `json:"price_per_sqm"`
	Link        string `json:"link"`
	IdentityKey string `json:"identity_key"`
}

// AcceptanceConfig holds the surface acceptance band, inclusive on both
// ends. Supplied once per run and never mutated.
type AcceptanceConfig struct {
	MinSurfaceSqm int
	MaxSurfaceSqm int
}

// RejectionReason classifies why the validator dropped a listing.
type RejectionReason string

const (
	ReasonMissingLink     RejectionReason = "missing_link"
	ReasonMissingSurface  RejectionReason = "missing_surface"
	ReasonSurfaceTooSmall RejectionReason = "surface_too_small"
	ReasonSurfaceTooBig   RejectionReason = "surface_too_big"
	ReasonMissingPrice    RejectionReason = "missing_price"
)

// RunStats accumulates counters across one run. It is owned exclusively
// by the run controller and never reset mid-run.
type RunStats struct {
	TotalSeen       int
	MissingLink     int
	MissingSurface  int
	SurfaceTooSmall int
	SurfaceTooBig   int
	MissingPrice    int
	Duplicates      int
	ValidCount      int
}

// CountRejection attributes one dropped listing to its rejection reason.
func (s *RunStats) CountRejection(r RejectionReason) {
	switch r {
	case ReasonMissingLink:
		s.MissingLink++
	case ReasonMissingSurface:
		s.MissingSurface++
	case ReasonSurfaceTooSmall:
		s.SurfaceTooSmall++
	case ReasonSurfaceTooBig:
		s.SurfaceTooBig++
	case ReasonMissingPrice:
		s.MissingPrice++
	}
}

// Rejected returns the total number of listings dropped by validation.
func (s *RunStats) Rejected() int {
	return s.MissingLink + s.MissingSurface + s.SurfaceTooSmall +
		s.SurfaceTooBig + s.MissingPrice
}
