package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestGroupByNameKeepsOrderAndNulls(t *testing.T) {
	listings := []ProductListing{
		{Name: "Phone X", CompetitorPrice: ptr(100)},
		{Name: "Phone Y", CompetitorPrice: ptr(300)},
		{Name: "Phone X", CompetitorPrice: nil},
		{Name: "Phone X", CompetitorPrice: ptr(120)},
	}

	obs := GroupByName(listings)
	require.Len(t, obs, 2)
	require.Len(t, obs["Phone X"], 3)
	assert.Equal(t, 100.0, *obs["Phone X"][0])
	assert.Nil(t, obs["Phone X"][1])
	assert.Equal(t, 120.0, *obs["Phone X"][2])
	assert.Len(t, obs["Phone Y"], 1)
}

func TestGroupByNameIsExactMatch(t *testing.T) {
	listings := []ProductListing{
		{Name: "Phone X", CompetitorPrice: ptr(100)},
		{Name: "phone x", CompetitorPrice: ptr(110)},
		{Name: "Phone X ", CompetitorPrice: ptr(120)},
	}

	obs := GroupByName(listings)
	assert.Len(t, obs, 3)
}
