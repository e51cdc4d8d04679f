package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricecomp-service/internal/app/catalog/domain"
)

func TestBuildRequest(t *testing.T) {
	req, err := buildRequest("competition_discount_diff_list", []string{
		"competition,==,farfetch",
		"discount_diff,>,5",
		"brand.name,==,Dolce,Gabbana",
	})
	require.NoError(t, err)

	assert.Equal(t, "competition_discount_diff_list", req.QueryType)
	assert.Equal(t, []domain.FilterPredicate{
		domain.NewFilterPredicate("competition", "==", "farfetch"),
		domain.NewFilterPredicate("discount_diff", ">", "5"),
		domain.NewFilterPredicate("brand.name", "==", "Dolce,Gabbana"),
	}, req.Filters)
}

func TestBuildRequest_Malformed(t *testing.T) {
	_, err := buildRequest("expensive_list", []string{"discount>5"})
	assert.ErrorIs(t, err, domain.ErrMalformedPredicate)
}
