package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, NormalizeIDs([]string{"a", " b ", "a", ""}))
	assert.NotNil(t, NormalizeIDs(nil))
}

func TestReferencedInfluencerIDs(t *testing.T) {
	campaigns := []Campaign{
		{InfluencerIDs: []string{"a", "b"}},
		{InfluencerIDs: []string{"b", "c"}},
		{},
	}

	assert.Equal(t, []string{"a", "b", "c"}, ReferencedInfluencerIDs(campaigns...))
}

func TestHydrateCampaigns(t *testing.T) {
	influencers := []Influencer{
		{ID: "a", Name: "Asha", Category: CategoryFashion, Instagram: "@asha", Followers: 10, Location: "Pune"},
		{ID: "b", Name: "Ben", Category: CategoryTech, Instagram: "@ben", Followers: 20, Location: "Delhi"},
	}
	campaigns := []Campaign{
		{ID: "c1", Brand: "Acme", InfluencerIDs: []string{"b", "a"}},
		{ID: "c2", Brand: "Nimbus", InfluencerIDs: []string{"a", "deleted"}},
		{ID: "c3", Brand: "Empty"},
	}

	hydrated := HydrateCampaigns(campaigns, influencers)
	require.Len(t, hydrated, 3)

	assert.Equal(t, []InfluencerSummary{
		{ID: "b", Name: "Ben", Category: CategoryTech, Instagram: "@ben", Followers: 20, Location: "Delhi"},
		{ID: "a", Name: "Asha", Category: CategoryFashion, Instagram: "@asha", Followers: 10, Location: "Pune"},
	}, hydrated[0].Influencers)

	// unresolved references are dropped without error
	require.Len(t, hydrated[1].Influencers, 1)
	assert.Equal(t, "a", hydrated[1].Influencers[0].ID)

	assert.NotNil(t, hydrated[2].Influencers)
	assert.Empty(t, hydrated[2].Influencers)
}

func TestInfluencerFilter(t *testing.T) {
	influencers := []Influencer{
		{ID: "1", Name: "Asha Rao", Instagram: "@asha", Location: "Mumbai", Category: CategoryFashion},
		{ID: "2", Name: "Ben", Instagram: "@bentech", Location: "Delhi", Category: CategoryTech},
		{ID: "3", Name: "Chitra", Instagram: "@chi", Location: "Mumbai", Category: CategoryFood},
	}

	assert.Len(t, InfluencerFilter{}.Apply(influencers), 3)

	byLocation := InfluencerFilter{Search: "mumbai"}.Apply(influencers)
	assert.Len(t, byLocation, 2)

	byHandle := InfluencerFilter{Search: "TECH"}.Apply(influencers)
	assert.Len(t, byHandle, 1)
	assert.Equal(t, "2", byHandle[0].ID)

	combined := InfluencerFilter{Search: "mumbai", Category: CategoryFood}.Apply(influencers)
	assert.Len(t, combined, 1)
	assert.Equal(t, "3", combined[0].ID)
}

func TestCategory_IsValid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.IsValid())
	}
	assert.False(t, Category("fashion").IsValid())
	assert.Len(t, Categories, 10)
}
