package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/light-bringer/pricecomp-service/internal/pkg/query"
)

// Operand names the product field a filter applies to.
type Operand string

const (
	OperandDiscount     Operand = "discount"
	OperandBrandName    Operand = "brand.name"
	OperandCompetition  Operand = "competition"
	OperandDiscountDiff Operand = "discount_diff"
)

// Operator is the comparison a filter applies.
type Operator string

const (
	OperatorEqual   Operator = "=="
	OperatorLess    Operator = "<"
	OperatorGreater Operator = ">"
)

// PredicateKind is the closed set of supported (operand, operator) pairs.
type PredicateKind int

const (
	// PassThrough is any unsupported combination. It matches every row.
	PassThrough PredicateKind = iota
	BrandEquals
	CompetitionEquals
	DiscountLess
	DiscountGreater
	DiscountDiffLess
	DiscountDiffGreater
)

// String returns the kind name.
func (k PredicateKind) String() string {
	switch k {
	case BrandEquals:
		return "brand_equals"
	case CompetitionEquals:
		return "competition_equals"
	case DiscountLess:
		return "discount_less"
	case DiscountGreater:
		return "discount_greater"
	case DiscountDiffLess:
		return "discount_diff_less"
	case DiscountDiffGreater:
		return "discount_diff_greater"
	default:
		return "pass_through"
	}
}

// numeric reports whether the kind compares against a parsed number.
func (k PredicateKind) numeric() bool {
	switch k {
	case DiscountLess, DiscountGreater, DiscountDiffLess, DiscountDiffGreater:
		return true
	default:
		return false
	}
}

type predicateKey struct {
	operand  Operand
	operator Operator
}

// predicateKinds is the dispatch table. Pairs not listed parse as PassThrough.
var predicateKinds = map[predicateKey]PredicateKind{
	{OperandBrandName, OperatorEqual}:      BrandEquals,
	{OperandCompetition, OperatorEqual}:    CompetitionEquals,
	{OperandDiscount, OperatorLess}:        DiscountLess,
	{OperandDiscount, OperatorGreater}:     DiscountGreater,
	{OperandDiscountDiff, OperatorLess}:    DiscountDiffLess,
	{OperandDiscountDiff, OperatorGreater}: DiscountDiffGreater,
}

// Predicate is a parsed, typed filter condition.
type Predicate struct {
	Kind     PredicateKind
	Operand1 Operand
	Operator Operator
	// Value is the trimmed operand2 text.
	Value string
	// Number is Value parsed as a float for numeric kinds.
	Number float64
}

// ParsePredicate resolves a filter entry against the dispatch table.
// Operand2 is parsed as a float only for numeric kinds; a value that is not a
// number returns ErrInvalidOperand.
func ParsePredicate(f FilterPredicate) (Predicate, error) {
	key := predicateKey{
		operand:  Operand(strings.TrimSpace(f.Operand1)),
		operator: Operator(strings.TrimSpace(f.Operator)),
	}

	p := Predicate{
		Kind:     predicateKinds[key],
		Operand1: key.operand,
		Operator: key.operator,
		Value:    strings.TrimSpace(f.Operand2),
	}

	if p.Kind.numeric() {
		n, err := strconv.ParseFloat(p.Value, 64)
		if err != nil {
			return Predicate{}, fmt.Errorf("%w: %s %s %q", ErrInvalidOperand, p.Operand1, p.Operator, p.Value)
		}
		p.Number = n
	}

	return p, nil
}

// ParsePredicates parses filter entries in order, failing on the first bad one.
func ParsePredicates(filters []FilterPredicate) ([]Predicate, error) {
	predicates := make([]Predicate, 0, len(filters))
	for i, f := range filters {
		p, err := ParsePredicate(f)
		if err != nil {
			return nil, fmt.Errorf("filters[%d]: %w", i, err)
		}
		predicates = append(predicates, p)
	}
	return predicates, nil
}

// Condition returns the row condition implementing the predicate.
func (p Predicate) Condition() query.Condition[*Product] {
	switch p.Kind {
	case BrandEquals:
		return query.Eq(string(OperandBrandName), (*Product).BrandName, p.Value)
	case CompetitionEquals:
		site := p.Value
		return query.Func(p.String(), func(row *Product) bool {
			return row.HasCompetitor(site)
		})
	case DiscountLess:
		return query.Lt("discount_percent", (*Product).DiscountPercent, p.Number)
	case DiscountGreater:
		return query.Gt("discount_percent", (*Product).DiscountPercent, p.Number)
	case DiscountDiffLess:
		return query.Lt("discount_diff", (*Product).DiscountDiff, p.Number)
	case DiscountDiffGreater:
		return query.Gt("discount_diff", (*Product).DiscountDiff, p.Number)
	default:
		return query.All[*Product]()
	}
}

// String renders the predicate as "operand1 operator operand2".
func (p Predicate) String() string {
	return fmt.Sprintf("%s %s %s", p.Operand1, p.Operator, p.Value)
}
