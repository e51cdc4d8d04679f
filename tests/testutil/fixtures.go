package testutil

import (
	"encoding/json"
	"strconv"
	"strings"
)

// competitor is one website_results entry of a feed line.
type competitor struct {
	site   string
	prices []float64
}

// ProductLineBuilder builds one raw feed line with a fluent interface.
// Competitors are emitted in the order they are added.
type ProductLineBuilder struct {
	id          string
	brand       string
	regular     *float64
	offer       *float64
	basket      *float64
	competitors []competitor
}

// NewProductLine creates a builder with default prices:
// regular 100, offer 80, basket 90, no competitors.
func NewProductLine(id string) *ProductLineBuilder {
	return &ProductLineBuilder{
		id:      id,
		brand:   "Test Brand",
		regular: Float(100),
		offer:   Float(80),
		basket:  Float(90),
	}
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// WithBrand sets the brand name
func (b *ProductLineBuilder) WithBrand(brand string) *ProductLineBuilder {
	b.brand = brand
	return b
}

// WithPrices sets regular, offer and basket prices
func (b *ProductLineBuilder) WithPrices(regular, offer, basket float64) *ProductLineBuilder {
	b.regular = Float(regular)
	b.offer = Float(offer)
	b.basket = Float(basket)
	return b
}

// WithoutBasketPrice drops the basket price value
func (b *ProductLineBuilder) WithoutBasketPrice() *ProductLineBuilder {
	b.basket = nil
	return b
}

// WithoutRegularPrice drops the regular price value
func (b *ProductLineBuilder) WithoutRegularPrice() *ProductLineBuilder {
	b.regular = nil
	return b
}

// WithCompetitor adds a competitor site. Each price becomes one knn item;
// no prices yields an empty knn_items list.
func (b *ProductLineBuilder) WithCompetitor(site string, prices ...float64) *ProductLineBuilder {
	b.competitors = append(b.competitors, competitor{site: site, prices: prices})
	return b
}

// Build renders the feed line as JSON.
func (b *ProductLineBuilder) Build() string {
	var sb strings.Builder

	sb.WriteString(`{"_id":{"$oid":`)
	sb.WriteString(quote(b.id))
	sb.WriteString(`},"price":{`)
	sb.WriteString(priceMembers(b.regular, b.offer, b.basket))
	sb.WriteString(`},"brand":{"name":`)
	sb.WriteString(quote(b.brand))
	sb.WriteString(`},"similar_products":{"website_results":{`)
	for i, c := range b.competitors {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(quote(c.site))
		sb.WriteString(`:{"knn_items":[`)
		for j, p := range c.prices {
			if j > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(`{"_source":{"price":{`)
			sb.WriteString(priceMembers(nil, nil, Float(p)))
			sb.WriteString(`}}}`)
		}
		sb.WriteString(`],"meta":{"total_results":`)
		sb.WriteString(strconv.Itoa(len(c.prices)))
		sb.WriteString(`}}`)
	}
	sb.WriteString(`}}}`)

	return sb.String()
}

// Feed joins built lines into a line-delimited feed.
func Feed(lines ...*ProductLineBuilder) []byte {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, l.Build())
	}
	return []byte(strings.Join(parts, "\n") + "\n")
}

func priceMembers(regular, offer, basket *float64) string {
	var members []string
	add := func(name string, v *float64) {
		if v == nil {
			members = append(members, quote(name)+`:{}`)
			return
		}
		members = append(members, quote(name)+`:{"value":`+strconv.FormatFloat(*v, 'f', -1, 64)+`}`)
	}
	if regular != nil || offer != nil {
		add("regular_price", regular)
		add("offer_price", offer)
	}
	add("basket_price", basket)
	return strings.Join(members, ",")
}

func quote(s string) string {
	out, _ := json.Marshal(s)
	return string(out)
}
