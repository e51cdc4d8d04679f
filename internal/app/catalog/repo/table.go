package repo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/pricecomp-service/internal/app/catalog/contracts"
	"github.com/light-bringer/pricecomp-service/internal/app/catalog/domain"
	"github.com/light-bringer/pricecomp-service/internal/metrics"
	"github.com/light-bringer/pricecomp-service/internal/observability"
	"github.com/light-bringer/pricecomp-service/internal/pkg/clock"
)

// TableState is the lifecycle state of a ProductTable.
type TableState int

const (
	StateUnloaded TableState = iota
	StateLoaded
)

func (s TableState) String() string {
	if s == StateLoaded {
		return "loaded"
	}
	return "unloaded"
}

// TableOptions controls how the table is built.
type TableOptions struct {
	// Strict fails the whole build on the first record that cannot be
	// derived. Otherwise such records are skipped and counted.
	Strict bool
	// BuildTimeout bounds a single build. Zero means no bound.
	BuildTimeout time.Duration
}

// ProductTable is the in-memory derived table. It is built from the feed
// exactly once, on first use, and is read-only afterwards.
type ProductTable struct {
	source  contracts.FeedSource
	clock   clock.Clock
	logger  *observability.Logger
	metrics *metrics.Registry
	opts    TableOptions

	mu       sync.Mutex
	loaded   atomic.Bool
	products []*domain.Product

	// stats is swapped after a successful build. Stats never takes mu.
	stats atomic.Pointer[contracts.TableStats]
}

// NewProductTable creates an unloaded table over the given feed source.
func NewProductTable(
	source contracts.FeedSource,
	clk clock.Clock,
	logger *observability.Logger,
	reg *metrics.Registry,
	opts TableOptions,
) *ProductTable {
	t := &ProductTable{
		source:  source,
		clock:   clk,
		logger:  logger,
		metrics: reg,
		opts:    opts,
	}
	t.stats.Store(&contracts.TableStats{State: StateUnloaded.String()})
	return t
}

// Products returns the derived rows, building the table if needed.
// Concurrent callers during the first build wait for that single build.
func (t *ProductTable) Products(ctx context.Context) ([]*domain.Product, error) {
	if t.loaded.Load() {
		return t.products, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.loaded.Load() {
		return t.products, nil
	}
	if err := t.build(ctx); err != nil {
		return nil, err
	}
	return t.products, nil
}

// Load builds the table now if it has not been built yet.
func (t *ProductTable) Load(ctx context.Context) error {
	_, err := t.Products(ctx)
	return err
}

// Stats returns a snapshot of the table state. It does not block on a
// build in progress.
func (t *ProductTable) Stats() contracts.TableStats {
	return *t.stats.Load()
}

// build reads the whole feed and swaps the rows in only on success.
// Must be called with t.mu held.
func (t *ProductTable) build(ctx context.Context) error {
	// The build serves every waiting caller, so it is not cancelled when the
	// request that triggered it goes away.
	ctx = context.WithoutCancel(ctx)
	if t.opts.BuildTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.opts.BuildTimeout)
		defer cancel()
	}

	buildID := uuid.NewString()
	logger := t.logger.With().
		Str("build_id", buildID).
		Str("feed", t.source.Location()).
		Logger()
	start := t.clock.Now()

	logger.Info().Bool("strict", t.opts.Strict).Msg("Building product table")

	products, skipped, err := t.readAll(ctx, logger)
	if err != nil {
		t.metrics.BuildFailures.Inc()
		logger.Error().Err(err).Msg("Product table build failed")
		return fmt.Errorf("%w: %w", domain.ErrSourceFeed, err)
	}

	loadedAt := t.clock.Now()
	t.products = products
	t.stats.Store(&contracts.TableStats{
		State:    StateLoaded.String(),
		Rows:     len(products),
		Skipped:  skipped,
		BuildID:  buildID,
		LoadedAt: loadedAt,
	})
	t.loaded.Store(true)

	elapsed := loadedAt.Sub(start)
	t.metrics.TableRows.Set(float64(len(products)))
	t.metrics.RecordsSkipped.Add(float64(skipped))
	t.metrics.BuildDurationSec.Set(elapsed.Seconds())

	logger.Info().
		Int("rows", len(products)).
		Int("skipped", skipped).
		Dur("duration", elapsed).
		Msg("Product table loaded")

	return nil
}

func (t *ProductTable) readAll(ctx context.Context, logger *observability.Logger) ([]*domain.Product, int, error) {
	reader, err := t.source.Open(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer reader.Close()

	var products []*domain.Product
	skipped := 0

	for record := 1; ; record++ {
		raw, err := reader.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, 0, err
		}

		product, err := domain.Derive(raw)
		if err != nil {
			if t.opts.Strict {
				return nil, 0, fmt.Errorf("record %d: %w", record, err)
			}
			skipped++
			logger.Warn().Err(err).Int("record", record).Msg("Skipping record")
			continue
		}
		products = append(products, product)
	}

	if products == nil {
		products = []*domain.Product{}
	}
	return products, skipped, nil
}
