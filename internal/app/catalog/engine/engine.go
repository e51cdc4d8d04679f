package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/light-bringer/pricecomp-service/internal/app/catalog/contracts"
	"github.com/light-bringer/pricecomp-service/internal/app/catalog/domain"
	"github.com/light-bringer/pricecomp-service/internal/app/catalog/queries/competition_discount_diff"
	"github.com/light-bringer/pricecomp-service/internal/app/catalog/queries/discount_summary"
	"github.com/light-bringer/pricecomp-service/internal/app/catalog/queries/expensive_list"
	"github.com/light-bringer/pricecomp-service/internal/app/catalog/queries/list_discounted"
	"github.com/light-bringer/pricecomp-service/internal/metrics"
	"github.com/light-bringer/pricecomp-service/internal/observability"
	"github.com/light-bringer/pricecomp-service/internal/pkg/clock"
)

type handler func(ctx context.Context, predicates []domain.Predicate) (any, error)

// Engine dispatches requests to the query for their query type.
// It is safe for concurrent use.
type Engine struct {
	table    contracts.Table
	handlers map[string]handler
	clock    clock.Clock
	logger   *observability.Logger
	metrics  *metrics.Registry
}

// New creates an Engine over the table.
func New(table contracts.Table, clk clock.Clock, logger *observability.Logger, reg *metrics.Registry) *Engine {
	listDiscounted := list_discounted.NewQuery(table)
	discountSummary := discount_summary.NewQuery(table)
	expensiveList := expensive_list.NewQuery(table)
	competitionDiff := competition_discount_diff.NewQuery(table)

	return &Engine{
		table: table,
		handlers: map[string]handler{
			QueryDiscountedProductsList: func(ctx context.Context, p []domain.Predicate) (any, error) {
				return listDiscounted.Execute(ctx, &list_discounted.Request{Predicates: p})
			},
			QueryDiscountedCountAvgDiscount: func(ctx context.Context, p []domain.Predicate) (any, error) {
				return discountSummary.Execute(ctx, &discount_summary.Request{Predicates: p})
			},
			QueryExpensiveList: func(ctx context.Context, p []domain.Predicate) (any, error) {
				return expensiveList.Execute(ctx, &expensive_list.Request{Predicates: p})
			},
			QueryCompetitionDiscountDiff: func(ctx context.Context, p []domain.Predicate) (any, error) {
				return competitionDiff.Execute(ctx, &competition_discount_diff.Request{Predicates: p})
			},
		},
		clock:   clk,
		logger:  logger.WithOperation("query"),
		metrics: reg,
	}
}

// Execute runs the request and returns the query-specific reply, which
// marshals to the JSON response body.
func (e *Engine) Execute(ctx context.Context, req *Request) (any, error) {
	queryType := strings.TrimSpace(req.QueryType)
	start := e.clock.Now()

	result, err := e.execute(ctx, queryType, req.Filters)

	label := queryType
	if _, ok := e.handlers[queryType]; !ok {
		label = "unknown"
	}
	outcome := Outcome(err)
	e.metrics.Queries.WithLabelValues(label, outcome).Inc()
	e.metrics.QueryLatencySec.WithLabelValues(label).Observe(e.clock.Since(start).Seconds())

	if err != nil {
		var evt *zerolog.Event
		if outcome == metrics.OutcomeBadRequest {
			evt = e.logger.Warn()
		} else {
			evt = e.logger.Error()
		}
		evt.Err(err).Str("query_type", queryType).Int("filters", len(req.Filters)).Msg("Query failed")
		return nil, err
	}

	e.logger.Debug().
		Str("query_type", queryType).
		Int("filters", len(req.Filters)).
		Dur("duration", e.clock.Since(start)).
		Msg("Query executed")

	return result, nil
}

func (e *Engine) execute(ctx context.Context, queryType string, filters []domain.FilterPredicate) (any, error) {
	h, ok := e.handlers[queryType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownQueryType, queryType)
	}

	predicates, err := domain.ParsePredicates(filters)
	if err != nil {
		return nil, err
	}

	return h(ctx, predicates)
}

// Load builds the table now instead of on the first query.
func (e *Engine) Load(ctx context.Context) error {
	_, err := e.table.Products(ctx)
	return err
}

// Stats reports the table state.
func (e *Engine) Stats() contracts.TableStats {
	return e.table.Stats()
}

// QueryTypes lists the supported query type keys, sorted.
func (e *Engine) QueryTypes() []string {
	types := make([]string, 0, len(e.handlers))
	for k := range e.handlers {
		types = append(types, k)
	}
	sort.Strings(types)
	return types
}

// Outcome classifies a query error for metrics and status mapping.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, domain.ErrMalformedRequest),
		errors.Is(err, domain.ErrMalformedPredicate),
		errors.Is(err, domain.ErrInvalidOperand),
		errors.Is(err, domain.ErrUnknownQueryType):
		return metrics.OutcomeBadRequest
	case errors.Is(err, domain.ErrSourceFeed):
		return metrics.OutcomeUnavailable
	default:
		return metrics.OutcomeError
	}
}
