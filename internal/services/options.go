package services

import (
	"context"
	"fmt"
	nethttp "net/http"

	"github.com/light-bringer/pricecomp-service/internal/app/catalog/engine"
	"github.com/light-bringer/pricecomp-service/internal/app/catalog/repo"
	"github.com/light-bringer/pricecomp-service/internal/config"
	"github.com/light-bringer/pricecomp-service/internal/metrics"
	"github.com/light-bringer/pricecomp-service/internal/observability"
	"github.com/light-bringer/pricecomp-service/internal/pkg/clock"
	"github.com/light-bringer/pricecomp-service/internal/transport/grpc/query"
	"github.com/light-bringer/pricecomp-service/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	Engine       *engine.Engine
	Table        *repo.ProductTable
	Metrics      *metrics.Registry
	QueryHandler *query.Handler
	HTTPHandler  nethttp.Handler
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*ServiceOptions, error) {
	// 1. Create infrastructure components
	clk := clock.NewRealClock()
	reg := metrics.NewRegistry()

	// 2. Create the feed source and the lazily built table
	source := repo.NewFeedSource(cfg.Feed.Location, cfg.Feed.Timeout)
	table := repo.NewProductTable(source, clk, logger.WithOperation("table_build"), reg, repo.TableOptions{
		Strict:       cfg.Feed.Strict,
		BuildTimeout: cfg.Feed.Timeout,
	})

	// 3. Create the query engine
	eng := engine.New(table, clk, logger, reg)

	if cfg.Feed.EagerLoad {
		if err := eng.Load(ctx); err != nil {
			return nil, fmt.Errorf("failed to load product feed: %w", err)
		}
	}

	// 4. Create transport handlers
	queryHandler := query.NewHandler(eng, logger.WithOperation("grpc"))
	httpHandler := http.NewRouter(
		http.NewQueryHandler(eng, logger.WithOperation("http")),
		reg.Handler(),
		logger,
		http.RouterConfig{
			AllowedOrigins: cfg.Server.CORSAllowedOrigins,
			RequestTimeout: cfg.Server.WriteTimeout,
		},
	)

	return &ServiceOptions{
		Engine:       eng,
		Table:        table,
		Metrics:      reg,
		QueryHandler: queryHandler,
		HTTPHandler:  httpHandler,
	}, nil
}
