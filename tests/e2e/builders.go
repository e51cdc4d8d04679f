package e2e

import (
	"fmt"

	"github.com/light-bringer/pricecomp-service/tests/testutil"
)

// CatalogBuilder generates a deterministic feed of many products.
type CatalogBuilder struct {
	size        int
	brands      []string
	competitors []string
}

// NewCatalogBuilder creates a builder with default brands and competitors.
func NewCatalogBuilder(size int) *CatalogBuilder {
	return &CatalogBuilder{
		size:        size,
		brands:      []string{"Gucci", "Prada", "Saint Laurent", "Valentino"},
		competitors: []string{"farfetch", "ssense", "mytheresa"},
	}
}

// WithBrands sets the brands assigned round-robin.
func (b *CatalogBuilder) WithBrands(brands ...string) *CatalogBuilder {
	b.brands = brands
	return b
}

// Lines builds the product lines. Product i gets an offer price of
// regular minus i%50 percent and one competitor match on every other item.
func (b *CatalogBuilder) Lines() []*testutil.ProductLineBuilder {
	lines := make([]*testutil.ProductLineBuilder, 0, b.size)
	for i := 0; i < b.size; i++ {
		regular := float64(100 + i%7*50)
		offer := regular * float64(100-i%50) / 100
		line := testutil.NewProductLine(fmt.Sprintf("prod-%04d", i)).
			WithBrand(b.brands[i%len(b.brands)]).
			WithPrices(regular, offer, offer)

		site := b.competitors[i%len(b.competitors)]
		if i%2 == 0 {
			line = line.WithCompetitor(site, offer*0.9)
		} else {
			line = line.WithCompetitor(site)
		}
		lines = append(lines, line)
	}
	return lines
}

// Feed builds the line-delimited feed.
func (b *CatalogBuilder) Feed() []byte {
	return testutil.Feed(b.Lines()...)
}
