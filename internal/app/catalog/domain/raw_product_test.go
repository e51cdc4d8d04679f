package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRawProduct_PreservesCompetitorOrder(t *testing.T) {
	line := `{"_id":{"$oid":"5d0cc7b68a66a100014acdb0"},
		"price":{"regular_price":{"value":100,"currency":"GBP"},"offer_price":{"value":80},"basket_price":{"value":90}},
		"brand":{"name":"Gucci","sub_brand":""},
		"similar_products":{"meta":{"total_results":3},"website_results":{
			"zeta":{"knn_items":[],"meta":{}},
			"alpha":{"knn_items":[{"_score":0.9,"_source":{"price":{"basket_price":{"value":85}}}}]},
			"mu":{"knn_items":[{"_source":{"price":{"basket_price":{"value":70}}}}]}
		}}}`

	raw, err := DecodeRawProduct([]byte(line))
	require.NoError(t, err)

	assert.Equal(t, "5d0cc7b68a66a100014acdb0", raw.ID.OID)
	assert.Equal(t, "Gucci", raw.Brand.Name)
	require.Len(t, raw.SimilarProducts.WebsiteResults, 3)
	assert.Equal(t, "zeta", raw.SimilarProducts.WebsiteResults[0].Site)
	assert.Equal(t, "alpha", raw.SimilarProducts.WebsiteResults[1].Site)
	assert.Equal(t, "mu", raw.SimilarProducts.WebsiteResults[2].Site)
	assert.Empty(t, raw.SimilarProducts.WebsiteResults[0].KnnItems)
	assert.Equal(t, 85.0, raw.SimilarProducts.WebsiteResults[1].KnnItems[0].Source.Price.BasketPrice.Amount(0))
}

func TestDecodeRawProduct_OptionalParts(t *testing.T) {
	t.Run("bare string id", func(t *testing.T) {
		raw, err := DecodeRawProduct([]byte(`{"_id":"abc","price":{}}`))
		require.NoError(t, err)
		assert.Equal(t, "abc", raw.ID.OID)
	})

	t.Run("absent prices stay nil", func(t *testing.T) {
		raw, err := DecodeRawProduct([]byte(`{"_id":{"$oid":"a"},"price":{"regular_price":{}}}`))
		require.NoError(t, err)
		assert.False(t, raw.Price.RegularPrice.Present())
		assert.False(t, raw.Price.OfferPrice.Present())
		assert.Equal(t, 7.0, raw.Price.BasketPrice.Amount(7))
	})

	t.Run("null similar products", func(t *testing.T) {
		raw, err := DecodeRawProduct([]byte(`{"_id":{"$oid":"a"},"similar_products":null}`))
		require.NoError(t, err)
		assert.Empty(t, raw.SimilarProducts.WebsiteResults)
	})

	t.Run("missing website results", func(t *testing.T) {
		raw, err := DecodeRawProduct([]byte(`{"_id":{"$oid":"a"},"similar_products":{"meta":{}}}`))
		require.NoError(t, err)
		assert.Empty(t, raw.SimilarProducts.WebsiteResults)
	})

	t.Run("null knn items", func(t *testing.T) {
		raw, err := DecodeRawProduct([]byte(`{"_id":{"$oid":"a"},"similar_products":{"website_results":{"x":{"knn_items":null}}}}`))
		require.NoError(t, err)
		require.Len(t, raw.SimilarProducts.WebsiteResults, 1)
		assert.Empty(t, raw.SimilarProducts.WebsiteResults[0].KnnItems)
	})
}

func TestDecodeRawProduct_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "not json", line: `{"_id":`},
		{name: "id is a number", line: `{"_id":42}`},
		{name: "website results is a list", line: `{"_id":"a","similar_products":{"website_results":[]}}`},
		{name: "knn items is a string", line: `{"_id":"a","similar_products":{"website_results":{"x":{"knn_items":"none"}}}}`},
		{name: "price value is text", line: `{"_id":"a","price":{"regular_price":{"value":"12"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRawProduct([]byte(tt.line))
			assert.Error(t, err)
		})
	}
}
