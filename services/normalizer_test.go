package services

import (
	"reflect"
	"testing"

	"tanah-scraper/models"
)

func newTestNormalizer() *Normalizer {
	return NewNormalizer("https://example.co.id", "bali")
}

func TestNormalizeSurfaceTiers(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name string
		item models.RawItem
		want int
	}{
		{"structured attribute", models.RawItem{
			"attributes": map[string]interface{}{"land_size": float64(2000)},
			"title":      "Tanah 99m2", // lower tier must not win
		}, 2000},
		{"structured attribute as string", models.RawItem{
			"attributes": map[string]interface{}{"land_size": "1500"},
		}, 1500},
		{"top-level alternate", models.RawItem{
			"land_size": float64(1200),
		}, 1200},
		{"title regex m2", models.RawItem{
			"title": "Tanah Indah 2000m2 di Ubud",
		}, 2000},
		{"title regex m²", models.RawItem{
			"title": "Kavling 350 m² strategis",
		}, 350},
		{"title regex sqm", models.RawItem{
			"title": "Land plot 12000 SQM ocean view",
		}, 12000},
		{"single digit not captured", models.RawItem{
			"title": "Tanah 5m2",
		}, 0},
		{"malformed attribute falls through to title", models.RawItem{
			"attributes": map[string]interface{}{"land_size": "dua ribu"},
			"title":      "Tanah 2000m2",
		}, 2000},
		{"nothing available", models.RawItem{
			"title": "Tanah murah di Canggu",
		}, 0},
	}

	for _, tt := range tests {
		got := n.Normalize(tt.item).SurfaceSqm
		if got != tt.want {
			t.Errorf("%s: SurfaceSqm = %d; want %d", tt.name, got, tt.want)
		}
	}
}

func TestNormalizePriceTiers(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name string
		item models.RawItem
		want int64
	}{
		{"structured attribute string", models.RawItem{
			"attributes": map[string]interface{}{"price": "5000000000"},
		}, 5_000_000_000},
		{"structured attribute number", models.RawItem{
			"attributes": map[string]interface{}{"price": float64(750000000)},
		}, 750_000_000},
		{"top-level alternate", models.RawItem{
			"price": float64(1250000000),
		}, 1_250_000_000},
		{"serialized price field", models.RawItem{
			"meta": map[string]interface{}{
				"pricing": map[string]interface{}{"price": "2500000000"},
			},
		}, 2_500_000_000},
		{"magnitude juta with thousands separator", models.RawItem{
			"title": "Dijual tanah 1.500 Juta nego",
		}, 1_500_000_000},
		{"magnitude miliar with decimal comma", models.RawItem{
			"title": "Tanah luas 2,5 miliar",
		}, 2_500_000_000},
		{"magnitude jt", models.RawItem{
			"title": "Harga 500 jt saja",
		}, 500_000_000},
		{"magnitude below noise floor rejected", models.RawItem{
			"title": "Cicilan 0,9 juta per bulan",
		}, 0},
		{"short digit run not a price field", models.RawItem{
			"meta": map[string]interface{}{"price": "1234567"},
		}, 0},
		{"nothing available", models.RawItem{
			"title": "Tanah tanpa harga",
		}, 0},
	}

	for _, tt := range tests {
		got := n.Normalize(tt.item).PriceIdr
		if got != tt.want {
			t.Errorf("%s: PriceIdr = %d; want %d", tt.name, got, tt.want)
		}
	}
}

func TestNormalizeLinkConstruction(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name string
		item models.RawItem
		want string
	}{
		{"slug wins", models.RawItem{
			"slug": "tanah-indah",
			"url":  "/other/path",
		}, "https://example.co.id/bali/properti/tanah-indah"},
		{"bare relative url", models.RawItem{
			"url": "tanah-murah-ubud",
		}, "https://example.co.id/bali/properti/tanah-murah-ubud"},
		{"url missing region prefix", models.RawItem{
			"url": "/properti/tanah-murah",
		}, "https://example.co.id/bali/properti/tanah-murah"},
		{"url missing properti segment", models.RawItem{
			"url": "/bali/tanah-murah",
		}, "https://example.co.id/bali/properti/tanah-murah"},
		{"fully qualified path untouched", models.RawItem{
			"url": "/bali/properti/tanah-murah",
		}, "https://example.co.id/bali/properti/tanah-murah"},
		{"absolute url passes through", models.RawItem{
			"url": "https://example.co.id/bali/properti/tanah-lain",
		}, "https://example.co.id/bali/properti/tanah-lain"},
		{"neither slug nor url", models.RawItem{
			"title": "Tanah 2000m2",
		}, models.LinkMissing},
	}

	for _, tt := range tests {
		got := n.Normalize(tt.item).Link
		if got != tt.want {
			t.Errorf("%s: Link = %q; want %q", tt.name, got, tt.want)
		}
	}
}

func TestNormalizeIdentityKey(t *testing.T) {
	n := newTestNormalizer()

	a := n.Normalize(models.RawItem{"slug": "tanah-indah", "title": "A"})
	b := n.Normalize(models.RawItem{"slug": "tanah-indah", "title": "B", "price": float64(9e9)})
	c := n.Normalize(models.RawItem{"slug": "tanah-lain"})

	if a.IdentityKey == "" {
		t.Fatal("identity key must not be empty")
	}
	if a.IdentityKey != b.IdentityKey {
		t.Error("same link must produce the same identity key regardless of other fields")
	}
	if a.IdentityKey == c.IdentityKey {
		t.Error("different links must produce different identity keys")
	}
	if len(a.IdentityKey) != 64 {
		t.Errorf("identity key should be hex sha256 (64 chars), got %d", len(a.IdentityKey))
	}
}

func TestNormalizePricePerSqmDerivation(t *testing.T) {
	n := newTestNormalizer()

	l := n.Normalize(models.RawItem{
		"title":      "Tanah 2500m2",
		"attributes": map[string]interface{}{"price": "2500000000"},
		"slug":       "tanah-luas",
	})
	if l.PricePerSqm != 1_000_000 {
		t.Errorf("PricePerSqm = %d; want 1000000", l.PricePerSqm)
	}

	noSurface := n.Normalize(models.RawItem{
		"attributes": map[string]interface{}{"price": "2500000000"},
	})
	if noSurface.PricePerSqm != 0 {
		t.Errorf("PricePerSqm without surface = %d; want 0", noSurface.PricePerSqm)
	}
}

func TestNormalizeDefaultsAndPurity(t *testing.T) {
	n := newTestNormalizer()

	item := models.RawItem{
		"attributes": map[string]interface{}{"price": "5000000000"},
		"slug":       "tanah-indah",
	}

	first := n.Normalize(item)
	second := n.Normalize(item)

	if first.Title != "UNTITLED" {
		t.Errorf("missing title should default, got %q", first.Title)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Normalize must be pure: identical input must yield identical output")
	}
}
