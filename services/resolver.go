package services

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"tanah-scraper/config"
	"tanah-scraper/models"
	"tanah-scraper/utils"
)

// embeddedJSONSelector matches the single script block Next.js pages use
// to carry their initial data state.
const embeddedJSONSelector = `script#__NEXT_DATA__`

// Resolver locates the listing collection inside a raw page payload. It
// never fails: unrecognized shapes yield an empty item list and a
// diagnostic log line.
type Resolver struct {
	paths    [][]string
	groupKey string
	logger   *utils.Logger
}

// NewResolver builds a Resolver from the schema config. Candidate paths
// are tried in order and the first one resolving to a non-empty list wins;
// candidates are never merged.
func NewResolver(schema *config.SchemaConfig, logger *utils.Logger) *Resolver {
	paths := make([][]string, 0, len(schema.CandidatePaths))
	for _, p := range schema.CandidatePaths {
		paths = append(paths, strings.Split(p, "."))
	}
	return &Resolver{paths: paths, groupKey: schema.GroupKey, logger: logger}
}

// Resolve extracts the raw listing items from a page payload, which may be
// a JSON document or an HTML page with embedded JSON. Source order is
// preserved; the resolver never sorts.
func (r *Resolver) Resolve(payload []byte) []models.RawItem {
	body := strings.TrimSpace(string(payload))
	if body == "" {
		return nil
	}

	if !strings.HasPrefix(body, "{") && !strings.HasPrefix(body, "[") {
		extracted, ok := r.extractEmbeddedJSON(body)
		if !ok {
			return nil
		}
		body = extracted
	}

	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		r.logger.Warn("[resolver] Payload is not a JSON object: %v", err)
		return nil
	}

	for _, path := range r.paths {
		v, ok := dig(doc, path...)
		if !ok {
			continue
		}
		list, ok := asList(v)
		if !ok || len(list) == 0 {
			continue
		}
		r.logger.Debug("[resolver] Matched candidate path %s (%d elements)",
			strings.Join(path, "."), len(list))
		return r.collect(list)
	}

	r.logger.Warn("[resolver] No candidate path matched — unrecognized payload shape")
	return nil
}

// collect converts the resolved list into RawItems, flattening one level
// of group wrappers when every element carries a nested sub-collection
// under the group key.
func (r *Resolver) collect(list []interface{}) []models.RawItem {
	if groups, ok := r.groupData(list); ok {
		var items []models.RawItem
		for _, g := range groups {
			items = append(items, r.items(g)...)
		}
		return items
	}
	return r.items(list)
}

// groupData detects the grouped shape: all elements are objects holding a
// list under the group key. Group order is preserved.
func (r *Resolver) groupData(list []interface{}) ([][]interface{}, bool) {
	groups := make([][]interface{}, 0, len(list))
	for _, el := range list {
		m, ok := asMap(el)
		if !ok {
			return nil, false
		}
		sub, ok := asList(m[r.groupKey])
		if !ok {
			return nil, false
		}
		groups = append(groups, sub)
	}
	return groups, true
}

func (r *Resolver) items(list []interface{}) []models.RawItem {
	items := make([]models.RawItem, 0, len(list))
	for _, el := range list {
		if m, ok := asMap(el); ok {
			items = append(items, m)
		}
	}
	return items
}

// extractEmbeddedJSON pulls the serialized document out of the well-known
// script block. Exactly one occurrence is expected; anything else is a
// structural miss, not an error.
func (r *Resolver) extractEmbeddedJSON(html string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		r.logger.Warn("[resolver] HTML parse failed: %v", err)
		return "", false
	}

	sel := doc.Find(embeddedJSONSelector)
	if n := sel.Length(); n != 1 {
		r.logger.Warn("[resolver] Expected 1 embedded JSON block, found %d", n)
		return "", false
	}

	text := strings.TrimSpace(sel.First().Text())
	if text == "" {
		r.logger.Warn("[resolver] Embedded JSON block is empty")
		return "", false
	}
	return text, true
}
