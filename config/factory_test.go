package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/recblend/core"
	"github.com/rushteam/recblend/service"
	"github.com/rushteam/recblend/snapshot"
)

func TestSupportedStores(t *testing.T) {
	assert.Equal(t, []string{BackendMemory, BackendRedis}, SupportedStores())
	assert.True(t, HasStore(BackendMemory))
	assert.False(t, HasStore(BackendRemote))
}

func TestNewListStore_Unsupported(t *testing.T) {
	_, err := NewListStore(EventsConfig{Backend: "kafka"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "memory")
}

func TestNewEventSource_Memory(t *testing.T) {
	cfg := Default()
	src, closer, err := NewEventSource(cfg)
	require.NoError(t, err)
	defer closer.Close()

	log, ok := src.(interface {
		Append(ctx context.Context, userID, itemID int64) error
	})
	require.True(t, ok)

	ctx := context.Background()
	require.NoError(t, log.Append(ctx, 1, 10))
	require.NoError(t, log.Append(ctx, 1, 11))

	events, err := src.RecentEvents(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{11, 10}, events)
}

func TestNewEventSource_Remote(t *testing.T) {
	cfg := Default()
	cfg.Events = EventsConfig{Backend: BackendRemote, RemoteURL: "http://127.0.0.1:8020"}

	src, closer, err := NewEventSource(cfg)
	require.NoError(t, err)
	assert.IsType(t, &service.EventsClient{}, src)
	assert.NoError(t, closer.Close())
}

func TestNewSimilarityIndex(t *testing.T) {
	local := snapshot.NewSimilarityIndex(map[int64][]core.SimilarityEntry{
		1: {{ItemID: 2, Score: 0.5}},
	})

	cfg := Default()
	idx, err := NewSimilarityIndex(cfg, local)
	require.NoError(t, err)
	assert.Same(t, local, idx)

	_, err = NewSimilarityIndex(cfg, nil)
	require.Error(t, err)

	cfg.Similarity = SimilarityConfig{Backend: BackendRemote, RemoteURL: "http://127.0.0.1:8010"}
	idx, err = NewSimilarityIndex(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &service.SimilarityClient{}, idx)
}
