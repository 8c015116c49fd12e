package snapshot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/recblend/core"
)

func TestRecommendationTable_Lookup(t *testing.T) {
	table := NewRecommendationTable(map[int64][]int64{
		1: {10, 20, 30},
	}, []int64{7, 8})

	items, ok := table.Lookup(1)
	assert.True(t, ok)
	assert.Equal(t, []int64{10, 20, 30}, items)

	items, ok = table.Lookup(2)
	assert.False(t, ok)
	assert.Nil(t, items)

	assert.Equal(t, []int64{7, 8}, table.Default())

	empty := NewRecommendationTable(nil, nil)
	_, ok = empty.Lookup(1)
	assert.False(t, ok)
	assert.Empty(t, empty.Default())
}

func TestSimilarityIndex_Similar(t *testing.T) {
	idx := NewSimilarityIndex(map[int64][]core.SimilarityEntry{
		7: {{ItemID: 1, Score: 0.9}, {ItemID: 2, Score: 0.5}, {ItemID: 3, Score: 0.4}},
	})

	got, err := idx.Similar(context.Background(), 7, 2)
	require.NoError(t, err)
	assert.Equal(t, []core.SimilarityEntry{{ItemID: 1, Score: 0.9}, {ItemID: 2, Score: 0.5}}, got)

	got[0].Score = 0
	again, _ := idx.Similar(context.Background(), 7, 1)
	assert.Equal(t, 0.9, again[0].Score, "results must be copies")

	got, err = idx.Similar(context.Background(), 99, 10)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = idx.Similar(context.Background(), 7, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
