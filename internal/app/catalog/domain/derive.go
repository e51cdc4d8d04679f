package domain

import (
	"fmt"
	"strings"
)

// Derive turns one raw feed record into a Product with its comparison metrics.
// It is pure and deterministic. Records without an id, without regular or offer
// price, or with a zero regular price cannot be derived and return an error
// wrapping the matching sentinel.
func Derive(raw *RawProduct) (*Product, error) {
	if raw == nil || strings.TrimSpace(raw.ID.OID) == "" {
		return nil, ErrMissingProductID
	}
	id := raw.ID.OID

	if !raw.Price.RegularPrice.Present() {
		return nil, fmt.Errorf("product %s: regular_price: %w", id, ErrMissingPrice)
	}
	if !raw.Price.OfferPrice.Present() {
		return nil, fmt.Errorf("product %s: offer_price: %w", id, ErrMissingPrice)
	}

	regular := raw.Price.RegularPrice.Amount(0)
	offer := raw.Price.OfferPrice.Amount(0)

	discountPercent, err := defaultPricingCalculator.DiscountPercent(regular, offer)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, err)
	}

	napPrice := raw.Price.BasketPrice.Amount(0)
	competitorPrice := defaultPricingCalculator.CompetitorPrice(raw.SimilarProducts.WebsiteResults)

	return &Product{
		id:              id,
		brand:           raw.Brand,
		competitors:     raw.SimilarProducts.WebsiteResults,
		regularPrice:    regular,
		offerPrice:      offer,
		napPrice:        napPrice,
		discountPercent: discountPercent,
		competitorPrice: competitorPrice,
		discountDiff:    defaultPricingCalculator.DiscountDiff(napPrice, competitorPrice),
	}, nil
}
