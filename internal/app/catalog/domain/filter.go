package domain

import "github.com/light-bringer/pricecomp-service/internal/pkg/query"

// ApplyFilters narrows rows by each predicate in order (logical AND).
// The input slice is never modified and row order is preserved.
func ApplyFilters(predicates []Predicate, rows []*Product) []*Product {
	b := query.From(rows)
	for _, p := range predicates {
		b = b.Where(p.Condition())
	}
	return b.Rows()
}

// ProductIDs returns the ids of rows in order.
func ProductIDs(rows []*Product) []string {
	ids := make([]string, 0, len(rows))
	for _, p := range rows {
		ids = append(ids, p.ID())
	}
	return ids
}
