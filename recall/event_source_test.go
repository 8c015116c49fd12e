package recall

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/recblend/core"
	"github.com/rushteam/recblend/store"
)

type brokenStore struct{ *store.MemoryStore }

func (brokenStore) LPush(context.Context, string, ...string) error { return errDown }
func (brokenStore) LRange(context.Context, string, int64, int64) ([]string, error) {
	return nil, errDown
}

func TestStoreEventSource_AppendAndRecent(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	src := NewStoreEventSource(mem, "", 3)

	for _, item := range []int64{43202169, 27077792, 93556487, 109302} {
		require.NoError(t, src.Append(ctx, 1, item))
	}

	got, err := src.RecentEvents(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{109302, 93556487, 27077792}, got, "most recent first, trimmed to MaxEvents")

	got, err = src.RecentEvents(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{109302, 93556487}, got)

	got, err = src.RecentEvents(ctx, 2, 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = src.RecentEvents(ctx, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	raw, err := mem.LRange(ctx, "events:1", 0, -1)
	require.NoError(t, err)
	assert.Len(t, raw, 3)
	assert.Equal(t, "events.memory", src.Name())
}

func TestStoreEventSource_SkipsMalformed(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	require.NoError(t, mem.LPush(ctx, "ev:1", "5", "oops", "6"))

	src := NewStoreEventSource(mem, "ev", 0)
	assert.Equal(t, core.DefaultMaxEvents, src.MaxEvents)

	got, err := src.RecentEvents(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{6, 5}, got)
}

func TestStoreEventSource_StoreFailure(t *testing.T) {
	ctx := context.Background()
	src := NewStoreEventSource(brokenStore{store.NewMemoryStore()}, "", 0)

	_, err := src.RecentEvents(ctx, 1, 5)
	assert.True(t, core.IsUnavailable(err))

	err = src.Append(ctx, 1, 2)
	assert.True(t, core.IsUnavailable(err))
}
