package storage

import "tanah-scraper/models"

// ListingWriter is the sink interface any storage backend must satisfy.
// Implementations must tolerate an empty listing set.
type ListingWriter interface {
	WriteListings(listings []*models.Listing) error
	Close() error
}
