package recall

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/recblend/core"
	"github.com/rushteam/recblend/service"
)

// 一个物品查询失败会取消其余并发查询，被取消的查询不计入熔断失败。
func TestOnlineAggregator_RemoteFailureDoesNotOpenBreakerForOthers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("item_id") == "1" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		select {
		case <-time.After(200 * time.Millisecond):
		case <-r.Context().Done():
			return
		}
		_, _ = w.Write([]byte(`{"item_id_2":[102],"score":[0.5]}`))
	}))
	defer srv.Close()

	agg := &OnlineAggregator{
		Events: &fakeEvents{events: map[int64][]int64{
			1: {1, 2, 3, 4, 5},
			2: {2},
		}},
		Similarity: service.NewSimilarityClient(srv.URL),
		Timeout:    2 * time.Second,
	}

	_, err := agg.Aggregate(context.Background(), 1, 10)
	require.Error(t, err)
	assert.True(t, core.IsUnavailable(err))

	got, err := agg.Aggregate(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{102}, got)
}
