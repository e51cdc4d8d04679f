package competition_discount_diff

import (
	"context"

	"github.com/light-bringer/pricecomp-service/internal/app/catalog/contracts"
	"github.com/light-bringer/pricecomp-service/internal/app/catalog/domain"
)

// Request contains the parsed filter predicates.
type Request struct {
	Predicates []domain.Predicate
}

// Reply lists the ids of the matching products.
type Reply struct {
	IDs []string `json:"competition_discount_diff_list"`
}

// Query handles the competition discount diff list query.
type Query struct {
	table contracts.Table
}

// NewQuery creates a new competition discount diff list query.
func NewQuery(table contracts.Table) *Query {
	return &Query{
		table: table,
	}
}

// Execute returns the ids of products matching every predicate, typically a
// competition and a discount_diff bound. Without predicates every id is listed.
func (q *Query) Execute(ctx context.Context, req *Request) (*Reply, error) {
	rows, err := q.table.Products(ctx)
	if err != nil {
		return nil, err
	}

	return &Reply{IDs: domain.ProductIDs(domain.ApplyFilters(req.Predicates, rows))}, nil
}
