package domain

import "math"

// PricingCalculator is a domain service for the comparison metrics derived
// from each feed record.
//
// It centralizes the pricing formulas so Derive stays a thin extraction step
// and the formulas can be tested in isolation:
//
//	discount_percent = 100 * |regular - offer| / regular
//	discount_diff    = 100 * (nap - competitor) / competitor, floored at 0
type PricingCalculator struct{}

// NewPricingCalculator creates a new PricingCalculator instance.
func NewPricingCalculator() *PricingCalculator {
	return &PricingCalculator{}
}

// Package-level calculator instance for Derive
var defaultPricingCalculator = NewPricingCalculator()

// DiscountPercent calculates the markdown from regular to offer price.
// A zero regular price has no defined percentage and returns ErrZeroRegularPrice.
func (pc *PricingCalculator) DiscountPercent(regular, offer float64) (float64, error) {
	if regular == 0 {
		return 0, ErrZeroRegularPrice
	}
	return 100 * math.Abs(regular-offer) / regular, nil
}

// CompetitorPrice returns the basket price of the first match of the first
// competitor, in feed order, whose match list is nonempty. It is deliberately
// first-found rather than cheapest. Returns 0 when no competitor matched.
func (pc *PricingCalculator) CompetitorPrice(results []CompetitorResult) float64 {
	for _, r := range results {
		if len(r.KnnItems) == 0 {
			continue
		}
		price := r.KnnItems[0].Source.Price.BasketPrice.Amount(0)
		if price < 0 || math.IsNaN(price) {
			return 0
		}
		return price
	}
	return 0
}

// DiscountDiff calculates the percentage by which the NAP price exceeds the
// competitor price. A zero competitor price means "no match" and yields 0, as
// does any result that is not strictly positive.
func (pc *PricingCalculator) DiscountDiff(napPrice, competitorPrice float64) float64 {
	if competitorPrice == 0 {
		return 0
	}
	diff := 100 * (napPrice - competitorPrice) / competitorPrice
	if !(diff > 0) {
		return 0
	}
	return diff
}
