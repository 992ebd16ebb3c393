package properti

import "context"

// PageResult is one successfully fetched page payload.
type PageResult struct {
	Status      int
	ContentType string
	Body        string
}

// PageSource supplies raw page payloads. Implementations return a
// utils.PermanentError for conditions retrying cannot fix (4xx status,
// unusable payload type) and a plain error for transient ones (timeout,
// network failure, 5xx).
type PageSource interface {
	Fetch(ctx context.Context, url string) (*PageResult, error)
}
