package competition_discount_diff

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricecomp-service/internal/app/catalog/contracts"
	"github.com/light-bringer/pricecomp-service/internal/app/catalog/domain"
	"github.com/light-bringer/pricecomp-service/internal/app/catalog/repo"
	"github.com/light-bringer/pricecomp-service/internal/metrics"
	"github.com/light-bringer/pricecomp-service/internal/observability"
	"github.com/light-bringer/pricecomp-service/internal/pkg/clock"
	"github.com/light-bringer/pricecomp-service/tests/testutil"
)

func sampleTable(t *testing.T) contracts.Table {
	t.Helper()

	path := testutil.WriteFeedFile(t, testutil.Feed(
		testutil.NewProductLine("a").WithBrand("X").WithPrices(100, 80, 90).WithCompetitor("farfetch", 85),
		testutil.NewProductLine("b").WithBrand("Y").WithPrices(200, 100, 100).WithCompetitor("ssense", 150),
		testutil.NewProductLine("c").WithBrand("X").WithPrices(100, 90, 100).WithCompetitor("farfetch").WithCompetitor("ssense", 80),
		testutil.NewProductLine("d").WithBrand("X").WithPrices(50, 50, 50),
	))
	return repo.NewProductTable(repo.NewFileFeedSource(path), clock.NewRealClock(), observability.NopLogger(), metrics.NewRegistry(), repo.TableOptions{})
}

func predicates(t *testing.T, filters ...domain.FilterPredicate) []domain.Predicate {
	t.Helper()

	parsed, err := domain.ParsePredicates(filters)
	require.NoError(t, err)
	return parsed
}

func brokenTable(t *testing.T) contracts.Table {
	t.Helper()

	return repo.NewProductTable(repo.NewFileFeedSource(filepath.Join(t.TempDir(), "missing.json")), clock.NewRealClock(), observability.NopLogger(), metrics.NewRegistry(), repo.TableOptions{})
}

func TestExecute_CompetitionAndDiffBound(t *testing.T) {
	q := NewQuery(sampleTable(t))

	tests := []struct {
		name    string
		filters []domain.FilterPredicate
		want    []string
	}{
		{
			name: "ssense diff above 10",
			filters: []domain.FilterPredicate{
				domain.NewFilterPredicate("competition", "==", "ssense"),
				domain.NewFilterPredicate("discount_diff", ">", "10"),
			},
			want: []string{"c"},
		},
		{
			name: "farfetch diff below 10",
			filters: []domain.FilterPredicate{
				domain.NewFilterPredicate("competition", "==", "farfetch"),
				domain.NewFilterPredicate("discount_diff", "<", "10"),
			},
			want: []string{"a"},
		},
		{
			name: "unknown competitor",
			filters: []domain.FilterPredicate{
				domain.NewFilterPredicate("competition", "==", "mytheresa"),
			},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := q.Execute(context.Background(), &Request{Predicates: predicates(t, tt.filters...)})
			require.NoError(t, err)
			assert.Equal(t, tt.want, reply.IDs)
		})
	}
}

func TestExecute_NoPredicatesListsEverything(t *testing.T) {
	q := NewQuery(sampleTable(t))

	reply, err := q.Execute(context.Background(), &Request{})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, reply.IDs)
}

func TestExecute_TableError(t *testing.T) {
	q := NewQuery(brokenTable(t))

	_, err := q.Execute(context.Background(), &Request{})

	assert.ErrorIs(t, err, domain.ErrSourceFeed)
}
