package e2e

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricecomp-service/internal/app/catalog/domain"
	"github.com/light-bringer/pricecomp-service/internal/app/catalog/engine"
	"github.com/light-bringer/pricecomp-service/internal/config"
	"github.com/light-bringer/pricecomp-service/tests/testutil"
)

func netAPorterFeed() []byte {
	return testutil.Feed(
		// 20% off, NAP 90 vs farfetch 85: discount_diff ~5.88
		testutil.NewProductLine("5d0cc7b68a66a100014acdb0").WithBrand("Gucci").WithPrices(100, 80, 90).WithCompetitor("farfetch", 85),
		// No competitor data at all
		testutil.NewProductLine("5d0cc7b68a66a100014acdb1").WithBrand("Gucci").WithPrices(400, 400, 400),
		// Cheaper than ssense; mytheresa listed but empty
		testutil.NewProductLine("5d0cc7b68a66a100014acdb2").WithBrand("Prada").WithPrices(200, 100, 100).WithCompetitor("mytheresa").WithCompetitor("ssense", 150),
		// Zero regular price cannot be derived and is skipped
		testutil.NewProductLine("5d0cc7b68a66a100014acdb3").WithBrand("Prada").WithPrices(0, 10, 10),
	)
}

func TestQueryFlow_AllQueryTypes(t *testing.T) {
	s := setupTest(t, netAPorterFeed())

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "discounted list by brand",
			body: `{"query_type":"discounted_products_list","filters":[{"operand1":"brand.name","operator":"==","operand2":"Gucci"}]}`,
			want: `{"discounted_products_list":["5d0cc7b68a66a100014acdb0","5d0cc7b68a66a100014acdb1"]}`,
		},
		{
			name: "count and average over discounted",
			body: `{"query_type":"discounted_products_count|avg_discount","filters":[{"operand1":"discount","operator":">","operand2":"0"}]}`,
			want: `{"discounted_products_count":2,"avg_discount":35}`,
		},
		{
			name: "expensive list",
			body: `{"query_type":"expensive_list","filters":[]}`,
			want: `{"expensive_list":["5d0cc7b68a66a100014acdb0","5d0cc7b68a66a100014acdb1"]}`,
		},
		{
			name: "competition discount diff",
			body: `{"query_type":"competition_discount_diff_list","filters":[{"operand1":"competition","operator":"==","operand2":"farfetch"},{"operand1":"discount_diff","operator":">","operand2":"5"}]}`,
			want: `{"competition_discount_diff_list":["5d0cc7b68a66a100014acdb0"]}`,
		},
		{
			name: "empty competitor list does not count",
			body: `{"query_type":"competition_discount_diff_list","filters":[{"operand1":"competition","operator":"==","operand2":"mytheresa"}]}`,
			want: `{"competition_discount_diff_list":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := postQuery(t, s, tt.body)
			require.Equal(t, http.StatusOK, status, body)
			assert.JSONEq(t, tt.want, body)
		})
	}

	stats := s.Options.Engine.Stats()
	assert.Equal(t, 3, stats.Rows)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, int64(1), s.FeedHits.Load())
}

func TestQueryFlow_HTTPAndGRPCAgree(t *testing.T) {
	s := setupTest(t, NewCatalogBuilder(200).Feed())

	req := &engine.Request{
		QueryType: engine.QueryDiscountedCountAvgDiscount,
		Filters: []domain.FilterPredicate{
			domain.NewFilterPredicate("brand.name", "==", "Prada"),
			domain.NewFilterPredicate("discount", ">", "10"),
		},
	}

	grpcReply, err := s.GRPC.Query(ctx(), req)
	require.NoError(t, err)

	status, httpReply := postQuery(t, s, `{"query_type":"discounted_products_count|avg_discount","filters":[{"operand1":"brand.name","operator":"==","operand2":"Prada"},{"operand1":"discount","operator":">","operand2":"10"}]}`)
	require.Equal(t, http.StatusOK, status)

	assert.JSONEq(t, httpReply, string(grpcReply))
}

func TestQueryFlow_ClientErrors(t *testing.T) {
	s := setupTest(t, netAPorterFeed())

	status, body := postQuery(t, s, `{"query_type":"cheapest_list","filters":[]}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "unknown query type")

	status, _ = postQuery(t, s, `{"query_type":"expensive_list","filters":[{"operand1":"discount","operator":">","operand2":"ten"}]}`)
	assert.Equal(t, http.StatusBadRequest, status)

	assert.Equal(t, "unloaded", s.Options.Engine.Stats().State, "rejected requests never load the feed")
	assert.Zero(t, s.FeedHits.Load())
}

func TestQueryFlow_StrictFeedIsUnavailable(t *testing.T) {
	s := setupTest(t, netAPorterFeed(), func(cfg *config.Config) {
		cfg.Feed.Strict = true
	})

	status, _ := postQuery(t, s, `{"query_type":"expensive_list","filters":[]}`)
	assert.Equal(t, http.StatusServiceUnavailable, status)

	// The build is retried on the next query and fails the same way.
	status, _ = postQuery(t, s, `{"query_type":"expensive_list","filters":[]}`)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, int64(2), s.FeedHits.Load())
}
