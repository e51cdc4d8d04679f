package contracts

import (
	"context"
	"time"

	"github.com/light-bringer/pricecomp-service/internal/app/catalog/domain"
)

// TableStats describes the derived table for readiness reporting.
type TableStats struct {
	State    string
	Rows     int
	Skipped  int
	BuildID  string
	LoadedAt time.Time
}

// Table holds the derived products for the lifetime of the process.
// Queries read from it; nothing writes to it after the one-time build.
type Table interface {
	// Products returns all derived products in feed order, building the
	// table on first use. The returned slice must not be modified.
	Products(ctx context.Context) ([]*domain.Product, error)

	// Stats returns a snapshot of the table state.
	Stats() TableStats
}
