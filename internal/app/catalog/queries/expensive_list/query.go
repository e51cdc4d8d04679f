package expensive_list

import (
	"context"

	"github.com/light-bringer/pricecomp-service/internal/app/catalog/contracts"
	"github.com/light-bringer/pricecomp-service/internal/app/catalog/domain"
	"github.com/light-bringer/pricecomp-service/internal/pkg/query"
)

// Request contains the parsed filter predicates.
type Request struct {
	Predicates []domain.Predicate
}

// Reply lists the ids of products priced above their competitor.
type Reply struct {
	IDs []string `json:"expensive_list"`
}

// Query handles the expensive list query.
type Query struct {
	table contracts.Table
}

// NewQuery creates a new expensive list query.
func NewQuery(table contracts.Table) *Query {
	return &Query{
		table: table,
	}
}

var moreExpensive = query.Func("nap_price > competitor_price", (*domain.Product).IsMoreExpensive)

// Execute returns the filtered products whose NAP basket price exceeds the
// competitor price. Without predicates the whole table is considered.
func (q *Query) Execute(ctx context.Context, req *Request) (*Reply, error) {
	rows, err := q.table.Products(ctx)
	if err != nil {
		return nil, err
	}

	matched := query.From(domain.ApplyFilters(req.Predicates, rows)).
		Where(moreExpensive).
		Rows()

	return &Reply{IDs: domain.ProductIDs(matched)}, nil
}
