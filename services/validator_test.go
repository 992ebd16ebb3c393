package services

import (
	"testing"

	"tanah-scraper/models"
)

var testBand = models.AcceptanceConfig{MinSurfaceSqm: 1000, MaxSurfaceSqm: 30000}

func TestValidateReasonOrder(t *testing.T) {
	tests := []struct {
		name    string
		listing models.Listing
		wantOK  bool
		reason  models.RejectionReason
	}{
		{"accepted", models.Listing{Link: "https://x/a", SurfaceSqm: 2000, PriceIdr: 5e9}, true, ""},
		{"missing link", models.Listing{Link: models.LinkMissing, SurfaceSqm: 2000, PriceIdr: 5e9}, false, models.ReasonMissingLink},
		{"missing surface", models.Listing{Link: "https://x/a", SurfaceSqm: 0, PriceIdr: 5e9}, false, models.ReasonMissingSurface},
		{"surface too small", models.Listing{Link: "https://x/a", SurfaceSqm: 999, PriceIdr: 5e9}, false, models.ReasonSurfaceTooSmall},
		{"surface too big", models.Listing{Link: "https://x/a", SurfaceSqm: 30001, PriceIdr: 5e9}, false, models.ReasonSurfaceTooBig},
		{"missing price", models.Listing{Link: "https://x/a", SurfaceSqm: 2000, PriceIdr: 0}, false, models.ReasonMissingPrice},

		// A listing failing several checks is always classified under the
		// first violated one.
		{"missing link wins over missing surface", models.Listing{Link: models.LinkMissing, SurfaceSqm: 0, PriceIdr: 0}, false, models.ReasonMissingLink},
		{"missing surface wins over missing price", models.Listing{Link: "https://x/a", SurfaceSqm: 0, PriceIdr: 0}, false, models.ReasonMissingSurface},
	}

	for _, tt := range tests {
		ok, reason := Validate(&tt.listing, testBand)
		if ok != tt.wantOK || reason != tt.reason {
			t.Errorf("%s: got (%v, %q), want (%v, %q)", tt.name, ok, reason, tt.wantOK, tt.reason)
		}
	}
}

func TestValidateBoundsInclusive(t *testing.T) {
	tests := []struct {
		surface int
		wantOK  bool
	}{
		{999, false},
		{1000, true},
		{30000, true},
		{30001, false},
	}

	for _, tt := range tests {
		l := models.Listing{Link: "https://x/a", SurfaceSqm: tt.surface, PriceIdr: 1}
		ok, _ := Validate(&l, testBand)
		if ok != tt.wantOK {
			t.Errorf("surface %d: accepted=%v, want %v", tt.surface, ok, tt.wantOK)
		}
	}
}

func TestSeenSetAdmit(t *testing.T) {
	s := NewSeenSet()

	if !s.Admit("k1") {
		t.Error("first occurrence must be admitted")
	}
	if s.Admit("k1") {
		t.Error("repeat must be rejected")
	}
	if !s.Admit("k2") {
		t.Error("distinct key must be admitted")
	}
	if s.Size() != 2 {
		t.Errorf("size: got %d, want 2", s.Size())
	}
}
