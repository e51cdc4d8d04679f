package contracts

import (
	"context"

	"github.com/light-bringer/pricecomp-service/internal/app/catalog/domain"
)

// FeedSource opens the raw product feed.
type FeedSource interface {
	// Open starts reading the feed. The returned reader must be closed.
	Open(ctx context.Context) (FeedReader, error)

	// Location describes where the feed is read from, for logs.
	Location() string
}

// FeedReader iterates raw feed records in feed order.
type FeedReader interface {
	// Next returns the next record, or iterator.Done after the last one.
	// Any other error means the feed is unreadable or malformed.
	Next() (*domain.RawProduct, error)

	// Close releases the underlying stream.
	Close() error
}
