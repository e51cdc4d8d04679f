package engine

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/light-bringer/pricecomp-service/internal/app/catalog/domain"
)

// Query type keys accepted in Request.QueryType.
const (
	QueryDiscountedProductsList     = "discounted_products_list"
	QueryDiscountedCountAvgDiscount = "discounted_products_count|avg_discount"
	QueryExpensiveList              = "expensive_list"
	QueryCompetitionDiscountDiff    = "competition_discount_diff_list"
)

// Request is a single query against the product table.
type Request struct {
	QueryType string                   `json:"query_type"`
	Filters   []domain.FilterPredicate `json:"filters"`
}

// DecodeRequest parses a JSON request body. Bad filter entries report
// ErrMalformedPredicate; any other decoding failure reports ErrMalformedRequest.
func DecodeRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		if errors.Is(err, domain.ErrMalformedPredicate) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedRequest, err)
	}
	return &req, nil
}
