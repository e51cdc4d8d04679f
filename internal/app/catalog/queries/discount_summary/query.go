// Package discount_summary counts the filtered products and averages their
// discount. The average is rounded half away from zero on its shortest decimal
// form, so 2.675 rounds to 2.68 rather than to the 2.67 binary rounding gives.
package discount_summary

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/pricecomp-service/internal/app/catalog/contracts"
	"github.com/light-bringer/pricecomp-service/internal/app/catalog/domain"
)

// Request contains the parsed filter predicates.
type Request struct {
	Predicates []domain.Predicate
}

// Reply carries the match count and their mean discount.
type Reply struct {
	Count       int     `json:"discounted_products_count"`
	AvgDiscount float64 `json:"avg_discount"`
}

// Query handles the discounted products count and average discount query.
type Query struct {
	table contracts.Table
}

// NewQuery creates a new discount summary query.
func NewQuery(table contracts.Table) *Query {
	return &Query{
		table: table,
	}
}

// Execute counts the products matching every predicate and averages their
// discount percent, rounded to two decimals. Without predicates both are zero.
func (q *Query) Execute(ctx context.Context, req *Request) (*Reply, error) {
	rows, err := q.table.Products(ctx)
	if err != nil {
		return nil, err
	}

	if len(req.Predicates) == 0 {
		return &Reply{}, nil
	}

	matched := domain.ApplyFilters(req.Predicates, rows)
	return &Reply{
		Count:       len(matched),
		AvgDiscount: averageDiscount(matched),
	}, nil
}

func averageDiscount(rows []*domain.Product) float64 {
	if len(rows) == 0 {
		return 0
	}

	sum := decimal.Zero
	for _, p := range rows {
		sum = sum.Add(decimal.NewFromFloat(p.DiscountPercent()))
	}

	return sum.Div(decimal.NewFromInt(int64(len(rows)))).Round(2).InexactFloat64()
}
