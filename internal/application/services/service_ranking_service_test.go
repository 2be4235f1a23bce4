package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localserve/backend/internal/domain/entities"
)

func TestRank_Weighting(t *testing.T) {
	svc := NewServiceRankingService()

	listings := []entities.ServiceListing{
		{ID: "s2", Name: "Busy Bee", Rating: 4, Status: entities.StatusBusy},
		{ID: "s1", Name: "Top Tap", Rating: 5, Status: entities.StatusAvailable},
	}

	results := svc.Rank(listings, entities.RankOptions{})

	require.Len(t, results, 2)
	assert.Equal(t, "s1", results[0].ID)
	// 0.55*1 + 0.25*1 + 0.20*0.55
	assert.InDelta(t, 91.0, results[0].RankMeta.Score, 0.001)
	// 0.55*0.8 + 0.25*0.55 + 0.20*0.55
	assert.InDelta(t, 68.75, results[1].RankMeta.Score, 0.051)
	assert.Nil(t, results[0].RankMeta.TargetLocation)
}

func TestRank_WeightingAvailableOverOffline(t *testing.T) {
	svc := NewServiceRankingService()

	results := svc.Rank([]entities.ServiceListing{
		{ID: "off", Name: "Night Owl Repairs", Rating: 3, Status: entities.StatusOffline},
		{ID: "on", Name: "Top Tap", Rating: 5, Status: entities.StatusAvailable},
	}, entities.RankOptions{})

	require.Len(t, results, 2)
	assert.Equal(t, "on", results[0].ID)
	// 0.55*1 + 0.25*1 + 0.20*0.55
	assert.InDelta(t, 91.0, results[0].RankMeta.Score, 0.001)
	// 0.55*0.6 + 0.25*0.15 + 0.20*0.55
	assert.InDelta(t, 47.75, results[1].RankMeta.Score, 0.051)
}

func TestRank_LocationInference(t *testing.T) {
	svc := NewServiceRankingService()

	listings := []entities.ServiceListing{
		{ID: "bandra", Name: "Bandra Pipes", Rating: 4, Status: entities.StatusAvailable, Location: "Bandra"},
		{ID: "west", Name: "West Side Plumbing", Rating: 4, Status: entities.StatusAvailable, Location: "Andheri West"},
		{ID: "exact", Name: "Andheri Plumbers", Rating: 4, Status: entities.StatusAvailable, Location: "andheri"},
		{ID: "nowhere", Name: "Roaming Fixers", Rating: 4, Status: entities.StatusAvailable},
	}
	opts := entities.RankOptions{
		Search:         "plumber near Andheri",
		KnownLocations: []string{"Bandra", "Andheri"},
	}

	target, ok := ResolveTargetLocation(opts)
	require.True(t, ok)
	assert.Equal(t, "Andheri", target)

	results := svc.Rank(listings, opts)
	require.Len(t, results, 4)

	byID := map[string]entities.RankedService{}
	for _, r := range results {
		byID[r.ID] = r
	}
	// rating 0.44 + availability 0.25 + location tier * 0.20
	assert.InDelta(t, 89.0, byID["exact"].RankMeta.Score, 0.051)
	assert.InDelta(t, 84.0, byID["west"].RankMeta.Score, 0.051)
	assert.InDelta(t, 74.0, byID["bandra"].RankMeta.Score, 0.051)
	assert.InDelta(t, 73.0, byID["nowhere"].RankMeta.Score, 0.051)

	assert.Equal(t, []string{"exact", "west", "bandra", "nowhere"},
		[]string{results[0].ID, results[1].ID, results[2].ID, results[3].ID})

	assert.Contains(t, byID["west"].RankMeta.Reasons, "Near Andheri (Andheri West)")
	assert.Contains(t, byID["exact"].RankMeta.Reasons, "Located in andheri")
	assert.Contains(t, byID["bandra"].RankMeta.Reasons, "Location: Bandra")
	require.NotNil(t, byID["west"].RankMeta.TargetLocation)
	assert.Equal(t, "Andheri", *byID["west"].RankMeta.TargetLocation)
}

func TestResolveTargetLocation(t *testing.T) {
	tests := []struct {
		name   string
		opts   entities.RankOptions
		want   string
		wantOK bool
	}{
		{"explicit filter wins", entities.RankOptions{FilterLocation: "Powai", Search: "in Bandra", KnownLocations: []string{"Bandra"}}, "Powai", true},
		{"all sentinel ignored", entities.RankOptions{FilterLocation: "ALL", Search: "in bandra", KnownLocations: []string{"Bandra"}}, "Bandra", true},
		{"first known location wins", entities.RankOptions{Search: "andheri or bandra", KnownLocations: []string{"Bandra", "Andheri"}}, "Bandra", true},
		{"no mention", entities.RankOptions{Search: "electrician", KnownLocations: []string{"Bandra"}}, "", false},
		{"empty search", entities.RankOptions{KnownLocations: []string{"Bandra"}}, "", false},
		{"blank known location skipped", entities.RankOptions{Search: "cleaner", KnownLocations: []string{"  "}}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveTargetLocation(tt.opts)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRank_TieBreaks(t *testing.T) {
	svc := NewServiceRankingService()

	t.Run("name ascending", func(t *testing.T) {
		listings := []entities.ServiceListing{
			{ID: "z", Name: "Zeta Cleaners", Rating: 4, Status: entities.StatusAvailable},
			{ID: "a", Name: "Alpha Cleaners", Rating: 4, Status: entities.StatusAvailable},
		}
		results := svc.Rank(listings, entities.RankOptions{})
		assert.Equal(t, "a", results[0].ID)
		assert.Equal(t, results[0].RankMeta.Score, results[1].RankMeta.Score)
	})

	t.Run("availability before raw rating", func(t *testing.T) {
		listings := []entities.ServiceListing{
			// 0.55*0.91 + 0.25*0.55 + 0.20*0.55 = 74.8
			{ID: "busy", Name: "Alpha", Rating: 4.55, Status: entities.StatusBusy},
			// 0.55*0.706 + 0.25*1 + 0.20*0.55 = 74.83
			{ID: "free", Name: "Zed", Rating: 3.53, Status: entities.StatusAvailable},
		}
		results := svc.Rank(listings, entities.RankOptions{})
		require.Len(t, results, 2)
		assert.Equal(t, 74.8, results[0].RankMeta.Score)
		assert.Equal(t, results[0].RankMeta.Score, results[1].RankMeta.Score)
		assert.Equal(t, "free", results[0].ID)
	})

	t.Run("raw rating before name", func(t *testing.T) {
		listings := []entities.ServiceListing{
			{ID: "a", Name: "Alpha", Rating: 4.0, Status: entities.StatusAvailable},
			{ID: "z", Name: "Zed", Rating: 4.001, Status: entities.StatusAvailable},
		}
		results := svc.Rank(listings, entities.RankOptions{})
		assert.Equal(t, results[0].RankMeta.Score, results[1].RankMeta.Score)
		assert.Equal(t, "z", results[0].ID)
	})
}

func TestRank_Reasons(t *testing.T) {
	svc := NewServiceRankingService()

	results := svc.Rank([]entities.ServiceListing{
		{ID: "1", Name: "A", Rating: 4.8, Status: "available", Location: "Powai"},
		{ID: "2", Name: "B", Rating: 4.2, Status: entities.StatusBusy},
		{ID: "3", Name: "C", Rating: 3.5, Status: entities.StatusOffline},
		{ID: "4", Name: "D", Status: "on leave"},
	}, entities.RankOptions{})

	byID := map[string]entities.RankMeta{}
	for _, r := range results {
		byID[r.ID] = r.RankMeta
	}

	assert.Equal(t, []string{"Highly rated (4.8★)", "Available now", "Location: Powai"}, byID["1"].Reasons)
	assert.Equal(t, "Highly rated (4.8★) · Available now · Location: Powai", byID["1"].Why)
	assert.Equal(t, []string{"Well rated (4.2★)", "Currently busy"}, byID["2"].Reasons)
	assert.Equal(t, []string{"Rated 3.5★", "Offline right now"}, byID["3"].Reasons)
	assert.Empty(t, byID["4"].Reasons)
	assert.Equal(t, "", byID["4"].Why)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	svc := NewServiceRankingService()

	listings := []entities.ServiceListing{
		{ID: "1", Name: " Over Rated ", Rating: 7, Status: " Available ", Location: "Powai"},
		{ID: "2", Name: "Normal", Rating: 3, Status: entities.StatusBusy, Location: "Powai"},
	}
	snapshot := append([]entities.ServiceListing(nil), listings...)

	results := svc.Rank(listings, entities.RankOptions{FilterLocation: "Powai"})

	assert.Equal(t, snapshot, listings)
	require.Equal(t, "1", results[0].ID)
	assert.Equal(t, 7.0, results[0].Rating)
	assert.Equal(t, " Over Rated ", results[0].Name)
	assert.Equal(t, "Highly rated (5.0★)", results[0].RankMeta.Reasons[0])
	assert.InDelta(t, 100.0, results[0].RankMeta.Score, 0.001)
}

func TestRank_EmptyAndIdempotent(t *testing.T) {
	svc := NewServiceRankingService()

	empty := svc.Rank(nil, entities.RankOptions{Search: "anything"})
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	listings := []entities.ServiceListing{
		{ID: "1", Name: "A", Rating: 3.9, Status: entities.StatusBusy, Location: "Bandra"},
		{ID: "2", Name: "B", Rating: 4.4, Status: entities.StatusOffline, Location: "Andheri"},
		{ID: "3", Name: "C", Rating: 2.1, Status: entities.StatusAvailable},
	}
	opts := entities.RankOptions{Search: "andheri", KnownLocations: []string{"Andheri", "Bandra"}}
	assert.Equal(t, svc.Rank(listings, opts), svc.Rank(listings, opts))
}

func TestRank_CustomPolicy(t *testing.T) {
	policy := DefaultRankingPolicy()
	policy.RatingWeight = 0
	policy.AvailabilityWeight = 1
	policy.LocationWeight = 0
	svc := NewServiceRankingServiceWithPolicy(policy)

	results := svc.Rank([]entities.ServiceListing{
		{ID: "star", Name: "Star", Rating: 5, Status: entities.StatusOffline},
		{ID: "free", Name: "Free", Rating: 1, Status: entities.StatusAvailable},
	}, entities.RankOptions{})

	assert.Equal(t, "free", results[0].ID)
	assert.InDelta(t, 100.0, results[0].RankMeta.Score, 0.001)
	assert.Equal(t, policy, svc.Policy())
}
