package services

import (
	"strconv"
	"strings"

	"tanah-scraper/models"
)

// Capability-checked accessors over the untyped trees json.Unmarshal
// produces. Every lookup returns an explicit ok flag; the resolver and
// normalizer never index raw maps directly.

func asMap(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok
}

func asList(v interface{}) ([]interface{}, bool) {
	l, ok := v.([]interface{})
	return l, ok
}

func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// asInt64 interprets a JSON value as a non-negative integer. Numbers come
// out of encoding/json as float64; numeric strings are accepted when they
// are digits only.
func asInt64(v interface{}) (int64, bool) {
	switch t := v.(type) {
	case float64:
		if t < 0 {
			return 0, false
		}
		return int64(t), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 0 {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// dig walks nested maps along path and returns the value at the leaf.
func dig(m map[string]interface{}, path ...string) (interface{}, bool) {
	var cur interface{} = m
	for _, key := range path {
		node, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = node[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func itemString(item models.RawItem, key string) (string, bool) {
	v, ok := item[key]
	if !ok {
		return "", false
	}
	return asString(v)
}

func itemInt64(item models.RawItem, key string) (int64, bool) {
	v, ok := item[key]
	if !ok {
		return 0, false
	}
	return asInt64(v)
}
