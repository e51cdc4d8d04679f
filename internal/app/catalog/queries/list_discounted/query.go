package list_discounted

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
	IDs []string `json:"discounted_products_list"`
}

// Query handles the discounted products list query.
type Query struct {
	table contracts.Table
}

// NewQuery creates a new discounted products list query.
func NewQuery(table contracts.Table) *Query {
	return &Query{
		table: table,
	}
}

// Execute returns the ids of products matching every predicate.
// Without predicates nothing is listed.
func (q *Query) Execute(ctx context.Context, req *Request) (*Reply, error) {
	rows, err := q.table.Products(ctx)
	if err != nil {
		return nil, err
	}

	if len(req.Predicates) == 0 {
		return &Reply{IDs: []string{}}, nil
	}

	return &Reply{IDs: domain.ProductIDs(domain.ApplyFilters(req.Predicates, rows))}, nil
}
