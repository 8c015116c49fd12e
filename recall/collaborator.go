package recall

import (
	"context"
	"time"

	"github.com/rushteam/recblend/core"
	"github.com/rushteam/recblend/pkg/metrics"
)

// withTimeout 在 timeout > 0 时给 ctx 加上超时。
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

// asUnavailable 把协作服务返回的任意错误统一为 UNAVAILABLE，已经是 UNAVAILABLE 的原样返回。
func asUnavailable(module string, err error, format string, args ...any) error {
	if core.IsUnavailable(err) {
		return err
	}
	return core.Unavailable(module, err, format, args...)
}

// recentEvents 在超时内读取最近事件。
func recentEvents(ctx context.Context, src core.EventSource, timeout time.Duration, userID int64, count int) ([]int64, error) {
	callCtx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	events, err := src.RecentEvents(callCtx, userID, count)
	metrics.ObserveCollaborator(core.ModuleEvents, start, err)
	if err != nil {
		return nil, asUnavailable(core.ModuleEvents, err, "events: recent events for user %d", userID)
	}
	return events, nil
}

// similarItems 在超时内查询一个物品的相似物品。
func similarItems(ctx context.Context, idx core.SimilarityIndex, timeout time.Duration, itemID int64, k int) ([]core.SimilarityEntry, error) {
	callCtx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	entries, err := idx.Similar(callCtx, itemID, k)
	metrics.ObserveCollaborator(core.ModuleSimilarity, start, err)
	if err != nil {
		return nil, asUnavailable(core.ModuleSimilarity, err, "similarity: similar items for item %d", itemID)
	}
	return entries, nil
}
