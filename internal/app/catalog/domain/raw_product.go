package domain

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// RawProduct is one line of the source feed, decoded into explicit types.
// Absent prices stay nil so derivation can tell "missing" from "zero".
type RawProduct struct {
	ID              ObjectID        `json:"_id"`
	Price           RawPrice        `json:"price"`
	Brand           Brand           `json:"brand"`
	SimilarProducts SimilarProducts `json:"similar_products"`
}

// ObjectID is the feed's wrapped identifier: {"$oid": "..."}.
// A bare JSON string is accepted as well.
type ObjectID struct {
	OID string `json:"$oid"`
}

// UnmarshalJSON accepts both the wrapped and the bare string form.
func (o *ObjectID) UnmarshalJSON(data []byte) error {
	res := gjson.ParseBytes(data)
	switch {
	case res.Type == gjson.Null:
		o.OID = ""
	case res.Type == gjson.String:
		o.OID = res.String()
	case res.IsObject():
		o.OID = res.Get(`\$oid`).String()
	default:
		return fmt.Errorf("_id: unexpected %s value", res.Type)
	}
	return nil
}

// PriceValue is a single optional amount: {"value": 12.5}.
type PriceValue struct {
	Value *float64 `json:"value"`
}

// Amount returns the value, or fallback when the value is absent.
func (p *PriceValue) Amount(fallback float64) float64 {
	if p == nil || p.Value == nil {
		return fallback
	}
	return *p.Value
}

// Present reports whether a value was supplied.
func (p *PriceValue) Present() bool {
	return p != nil && p.Value != nil
}

// RawPrice groups the catalog prices of a product.
type RawPrice struct {
	RegularPrice *PriceValue `json:"regular_price"`
	OfferPrice   *PriceValue `json:"offer_price"`
	BasketPrice  *PriceValue `json:"basket_price"`
}

// Brand is passed through to the derived product and queried by name.
type Brand struct {
	Name string `json:"name"`
}

// KnnItem is one matched product at a competitor.
type KnnItem struct {
	Source KnnSource `json:"_source"`
}

// KnnSource carries the matched product's own prices.
type KnnSource struct {
	Price RawPrice `json:"price"`
}

// CompetitorResult is the match bundle for one competitor site.
type CompetitorResult struct {
	Site     string
	KnnItems []KnnItem
}

// SimilarProducts holds the per-competitor match bundles in feed order.
type SimilarProducts struct {
	WebsiteResults []CompetitorResult
}

// UnmarshalJSON walks website_results in document order. A plain map would
// lose that order, and competitor price selection depends on it.
func (s *SimilarProducts) UnmarshalJSON(data []byte) error {
	root := gjson.ParseBytes(data)
	if root.Type == gjson.Null {
		*s = SimilarProducts{}
		return nil
	}
	if !root.IsObject() {
		return fmt.Errorf("similar_products: expected object, got %s", root.Type)
	}

	results := root.Get("website_results")
	if !results.Exists() || results.Type == gjson.Null {
		*s = SimilarProducts{}
		return nil
	}
	if !results.IsObject() {
		return fmt.Errorf("similar_products.website_results: expected object, got %s", results.Type)
	}

	var (
		out       []CompetitorResult
		decodeErr error
	)
	results.ForEach(func(key, value gjson.Result) bool {
		var bundle struct {
			KnnItems []KnnItem `json:"knn_items"`
		}
		if err := json.Unmarshal([]byte(value.Raw), &bundle); err != nil {
			decodeErr = fmt.Errorf("similar_products.website_results.%s: %w", key.String(), err)
			return false
		}
		out = append(out, CompetitorResult{Site: key.String(), KnnItems: bundle.KnnItems})
		return true
	})
	if decodeErr != nil {
		return decodeErr
	}

	s.WebsiteResults = out
	return nil
}

// DecodeRawProduct decodes one feed line.
func DecodeRawProduct(line []byte) (*RawProduct, error) {
	var raw RawProduct
	if err := json.Unmarshal(line, &raw); err != nil {
		return nil, err
	}
	return &raw, nil
}
