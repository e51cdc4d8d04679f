package query

import (
	"fmt"
	"strings"
)

// Builder narrows an in-memory row set with an ordered list of conditions.
// It provides a fluent API with WHERE and COUNT semantics. Every method
// returns a new Builder, so a base builder can be shared and extended safely.
type Builder[T any] struct {
	rows         []T
	whereClauses []Condition[T]
}

// From creates a new Builder over the given rows.
// The rows slice is never modified.
func From[T any](rows []T) *Builder[T] {
	return &Builder[T]{
		rows:         rows,
		whereClauses: []Condition[T]{},
	}
}

// Where adds a WHERE condition.
// Multiple calls are combined with AND logic and evaluated in call order.
func (b *Builder[T]) Where(condition Condition[T]) *Builder[T] {
	newBuilder := b.clone()
	newBuilder.whereClauses = append(newBuilder.whereClauses, condition)
	return newBuilder
}

// Rows evaluates the conditions and returns the matching rows in input order.
// Each condition narrows the output of the previous one, so adding a condition
// never grows the result.
func (b *Builder[T]) Rows() []T {
	current := b.rows
	for _, condition := range b.whereClauses {
		next := make([]T, 0, len(current))
		for _, row := range current {
			if condition.Match(row) {
				next = append(next, row)
			}
		}
		current = next
	}

	// Always hand back a slice the caller owns.
	if len(b.whereClauses) == 0 {
		out := make([]T, len(current))
		copy(out, current)
		return out
	}
	return current
}

// Count returns the number of matching rows.
func (b *Builder[T]) Count() int {
	return len(b.Rows())
}

// clone creates a shallow copy of the builder for immutability.
func (b *Builder[T]) clone() *Builder[T] {
	newBuilder := &Builder[T]{
		rows:         b.rows,
		whereClauses: make([]Condition[T], len(b.whereClauses)),
	}
	copy(newBuilder.whereClauses, b.whereClauses)
	return newBuilder
}

// String returns a human-readable representation for debugging.
func (b *Builder[T]) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("FROM %d rows", len(b.rows)))

	if len(b.whereClauses) > 0 {
		parts := make([]string, 0, len(b.whereClauses))
		for _, condition := range b.whereClauses {
			parts = append(parts, condition.String())
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(parts, " AND "))
	}
	return sb.String()
}
