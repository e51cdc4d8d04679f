package query

import "fmt"

// Condition represents a WHERE clause condition evaluated against a single row.
// Implementations must be pure: the same row always yields the same answer.
type Condition[T any] interface {
	// Match reports whether the row satisfies the condition.
	Match(row T) bool

	// String returns a human-readable form used in logs and debugging.
	String() string
}

// eqCondition implements string equality (field == value).
type eqCondition[T any] struct {
	field string
	get   func(T) string
	value string
}

// Eq creates a condition for string equality comparison.
// Example: Eq("brand.name", brandName, "Gucci") renders as "brand.name == Gucci"
func Eq[T any](field string, get func(T) string, value string) Condition[T] {
	return &eqCondition[T]{
		field: field,
		get:   get,
		value: value,
	}
}

// Match compares the extracted field with the value.
func (c *eqCondition[T]) Match(row T) bool {
	return c.get(row) == c.value
}

// String renders the condition.
func (c *eqCondition[T]) String() string {
	return fmt.Sprintf("%s == %s", c.field, c.value)
}

// cmpCondition implements strict numeric ordering (field < value, field > value).
type cmpCondition[T any] struct {
	field string
	get   func(T) float64
	value float64
	less  bool
}

// Lt creates a condition for strict less-than comparison.
func Lt[T any](field string, get func(T) float64, value float64) Condition[T] {
	return &cmpCondition[T]{field: field, get: get, value: value, less: true}
}

// Gt creates a condition for strict greater-than comparison.
func Gt[T any](field string, get func(T) float64, value float64) Condition[T] {
	return &cmpCondition[T]{field: field, get: get, value: value}
}

// Match compares the extracted field with the value.
func (c *cmpCondition[T]) Match(row T) bool {
	if c.less {
		return c.get(row) < c.value
	}
	return c.get(row) > c.value
}

// String renders the condition.
func (c *cmpCondition[T]) String() string {
	op := ">"
	if c.less {
		op = "<"
	}
	return fmt.Sprintf("%s %s %g", c.field, op, c.value)
}

// funcCondition wraps an arbitrary row predicate under a display name.
type funcCondition[T any] struct {
	name string
	fn   func(T) bool
}

// Func creates a condition from an arbitrary predicate.
// Example: Func("competition == farfetch", hasFarfetch)
func Func[T any](name string, fn func(T) bool) Condition[T] {
	return &funcCondition[T]{name: name, fn: fn}
}

// Match delegates to the wrapped predicate.
func (c *funcCondition[T]) Match(row T) bool {
	return c.fn(row)
}

// String returns the display name.
func (c *funcCondition[T]) String() string {
	return c.name
}

// All creates a condition that matches every row.
// It keeps a slot in the WHERE list for predicates that intentionally do not narrow.
func All[T any]() Condition[T] {
	return &allCondition[T]{}
}

// allCondition implements the always-true condition.
type allCondition[T any] struct{}

// Match always returns true.
func (c *allCondition[T]) Match(T) bool {
	return true
}

// String renders the condition.
func (c *allCondition[T]) String() string {
	return "TRUE"
}
