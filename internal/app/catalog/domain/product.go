package domain

import "strings"

// Product is a feed record with its comparison metrics derived.
// It is immutable after Derive returns it.
type Product struct {
	id          string
	brand       Brand
	competitors []CompetitorResult

	regularPrice float64
	offerPrice   float64
	napPrice     float64

	discountPercent float64
	competitorPrice float64
	discountDiff    float64
}

// ID returns the product identifier.
func (p *Product) ID() string {
	return p.id
}

// Brand returns the product brand.
func (p *Product) Brand() Brand {
	return p.brand
}

// BrandName returns the brand name as it appears in the feed.
func (p *Product) BrandName() string {
	return p.brand.Name
}

// Competitors returns the competitor match bundles in feed order.
// The returned slice must not be modified.
func (p *Product) Competitors() []CompetitorResult {
	return p.competitors
}

// HasCompetitor reports whether the competitor site has at least one match.
// Site keys are compared after trimming surrounding whitespace.
func (p *Product) HasCompetitor(site string) bool {
	site = strings.TrimSpace(site)
	for _, c := range p.competitors {
		if strings.TrimSpace(c.Site) == site && len(c.KnnItems) > 0 {
			return true
		}
	}
	return false
}

// RegularPrice returns the undiscounted catalog price.
func (p *Product) RegularPrice() float64 {
	return p.regularPrice
}

// OfferPrice returns the current offer price.
func (p *Product) OfferPrice() float64 {
	return p.offerPrice
}

// NapPrice returns the product's own basket price.
func (p *Product) NapPrice() float64 {
	return p.napPrice
}

// DiscountPercent returns the markdown from regular to offer price, in percent.
func (p *Product) DiscountPercent() float64 {
	return p.discountPercent
}

// CompetitorPrice returns the matched competitor basket price, or 0 when unmatched.
func (p *Product) CompetitorPrice() float64 {
	return p.competitorPrice
}

// DiscountDiff returns how far the NAP price sits above the competitor price,
// in percent of the competitor price. Never negative.
func (p *Product) DiscountDiff() float64 {
	return p.discountDiff
}

// IsMoreExpensive reports whether the NAP price exceeds the competitor price.
func (p *Product) IsMoreExpensive() bool {
	return p.napPrice > p.competitorPrice
}
