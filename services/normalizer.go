package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"tanah-scraper/models"
)

var (
	// surfaceRegexp captures a 2–6 digit quantity followed by a
	// square-meter unit token in free text.
	surfaceRegexp = regexp.MustCompile(`(?i)(\d{2,6})\s*(?:m2|m²|sqm)`)
	// priceFieldRegexp finds a quoted price field with 8–15 digits inside
	// the item's serialized form.
	priceFieldRegexp = regexp.MustCompile(`"price"\s*:\s*"(\d{8,15})"`)
	// magnitudeRegexp captures a decimal number followed by an Indonesian
	// magnitude word ("1.500 Juta", "2,5 miliar").
	magnitudeRegexp = regexp.MustCompile(`(?i)(\d[\d.,]*)\s*(jt|juta|miliar|billion)\b`)
)

const defaultTitle = "UNTITLED"

// Normalizer turns a RawItem of unknown shape into a typed Listing. Each
// field is resolved through an ordered list of extraction strategies; the
// first strategy that yields a value wins and malformed sources fall
// through to the next tier. Normalize is pure and total: it never fails,
// it degrades to sentinel/zero values.
type Normalizer struct {
	baseURL string
	region  string

	surfaceStrategies []func(models.RawItem) (int, bool)
	priceStrategies   []func(models.RawItem) (int64, bool)
	linkStrategies    []func(models.RawItem) (string, bool)
}

// NewNormalizer creates a Normalizer that resolves links against the given
// site base URL and region prefix.
func NewNormalizer(baseURL, region string) *Normalizer {
	n := &Normalizer{
		baseURL: strings.TrimRight(baseURL, "/"),
		region:  strings.Trim(region, "/"),
	}
	n.surfaceStrategies = []func(models.RawItem) (int, bool){
		surfaceFromAttributes,
		surfaceFromTopLevel,
		surfaceFromTitle,
	}
	n.priceStrategies = []func(models.RawItem) (int64, bool){
		priceFromAttributes,
		priceFromTopLevel,
		priceFromSerializedField,
		priceFromMagnitudeWords,
	}
	n.linkStrategies = []func(models.RawItem) (string, bool){
		n.linkFromSlug,
		n.linkFromRawURL,
	}
	return n
}

// Normalize maps one raw item to a Listing.
func (n *Normalizer) Normalize(item models.RawItem) *models.Listing {
	l := &models.Listing{
		Title: defaultTitle,
		Link:  models.LinkMissing,
	}

	if title, ok := itemString(item, "title"); ok {
		l.Title = strings.TrimSpace(title)
	}

	for _, extract := range n.surfaceStrategies {
		if v, ok := extract(item); ok {
			l.SurfaceSqm = v
			break
		}
	}

	for _, extract := range n.priceStrategies {
		if v, ok := extract(item); ok {
			l.PriceIdr = v
			break
		}
	}

	for _, extract := range n.linkStrategies {
		if v, ok := extract(item); ok {
			l.Link = v
			break
		}
	}

	if l.PriceIdr > 0 && l.SurfaceSqm > 0 {
		l.PricePerSqm = int64(math.Round(float64(l.PriceIdr) / float64(l.SurfaceSqm)))
	}

	l.IdentityKey = identityKey(l.Link)
	return l
}

// identityKey derives the stable dedup key from the resolved link. Items
// sharing a link always share a key, whatever their other fields say.
func identityKey(link string) string {
	sum := sha256.Sum256([]byte(link))
	return hex.EncodeToString(sum[:])
}

func surfaceFromAttributes(item models.RawItem) (int, bool) {
	v, ok := dig(item, "attributes", "land_size")
	if !ok {
		return 0, false
	}
	n, ok := asInt64(v)
	if !ok || n <= 0 {
		return 0, false
	}
	return int(n), true
}

func surfaceFromTopLevel(item models.RawItem) (int, bool) {
	n, ok := itemInt64(item, "land_size")
	if !ok || n <= 0 {
		return 0, false
	}
	return int(n), true
}

func surfaceFromTitle(item models.RawItem) (int, bool) {
	title, ok := itemString(item, "title")
	if !ok {
		return 0, false
	}
	m := surfaceRegexp.FindStringSubmatch(title)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func priceFromAttributes(item models.RawItem) (int64, bool) {
	v, ok := dig(item, "attributes", "price")
	if !ok {
		return 0, false
	}
	n, ok := asInt64(v)
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}

func priceFromTopLevel(item models.RawItem) (int64, bool) {
	n, ok := itemInt64(item, "price")
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}

// priceFromSerializedField scans the item's serialized form for a quoted
// price field buried at any depth.
func priceFromSerializedField(item models.RawItem) (int64, bool) {
	m := priceFieldRegexp.FindStringSubmatch(serialize(item))
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// priceFromMagnitudeWords parses free-text prices like "1.500 Juta" or
// "2,5 miliar". The source locale uses "." as thousands separator and ","
// as decimal mark. Values at or below one million are treated as noise.
func priceFromMagnitudeWords(item models.RawItem) (int64, bool) {
	m := magnitudeRegexp.FindStringSubmatch(serialize(item))
	if m == nil {
		return 0, false
	}

	num := strings.ReplaceAll(m[1], ".", "")
	num = strings.ReplaceAll(num, ",", ".")
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || f <= 0 {
		return 0, false
	}

	var multiplier float64
	switch strings.ToLower(m[2]) {
	case "jt", "juta":
		multiplier = 1_000_000
	case "miliar", "billion":
		multiplier = 1_000_000_000
	default:
		return 0, false
	}

	price := int64(math.Round(f * multiplier))
	if price <= 1_000_000 {
		return 0, false
	}
	return price, true
}

func (n *Normalizer) linkFromSlug(item models.RawItem) (string, bool) {
	slug, ok := itemString(item, "slug")
	if !ok {
		return "", false
	}
	return n.baseURL + "/" + n.region + "/properti/" + strings.Trim(slug, "/"), true
}

// linkFromRawURL normalizes a raw url field: ensure it is rooted, carries
// the region prefix, and contains the properti segment, then resolve it
// against the base URL. Already-absolute URLs pass through untouched.
func (n *Normalizer) linkFromRawURL(item models.RawItem) (string, bool) {
	u, ok := itemString(item, "url")
	if !ok {
		return "", false
	}
	u = strings.TrimSpace(u)
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u, true
	}

	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	regionPrefix := "/" + n.region
	if u != regionPrefix && !strings.HasPrefix(u, regionPrefix+"/") {
		u = regionPrefix + u
	}
	rest := strings.TrimPrefix(u, regionPrefix)
	if rest != "/properti" && !strings.HasPrefix(rest, "/properti/") {
		u = regionPrefix + "/properti" + rest
	}
	return n.baseURL + u, true
}

// serialize renders the item for the regex-based fallback tiers. Map keys
// marshal sorted, so the output is deterministic for a given item.
func serialize(item models.RawItem) string {
	raw, err := json.Marshal(item)
	if err != nil {
		return ""
	}
	return string(raw)
}
