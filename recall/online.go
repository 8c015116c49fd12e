package recall

import (
	"context"
	"time"

	"github.com/rushteam/recblend/core"
	"github.com/rushteam/recblend/pkg/logging"
)

// OnlineAggregator 是基于用户最近行为的实时召回：
// 读取最近 EventCount 条事件，为每个事件物品查询 top-k 相似物品，
// 合并后按分数降序、按物品去重，不做截断。
type OnlineAggregator struct {
	Events     core.EventSource
	Similarity core.SimilarityIndex

	// EventCount 读取的最近事件条数，<= 0 时使用 core.DefaultEventCount
	EventCount int

	// Timeout 是每次协作服务调用的超时时间，超时按 UNAVAILABLE 处理
	Timeout time.Duration

	// MaxConcurrent 相似物品查询的最大并发数（0 表示无限制）
	MaxConcurrent int
}

func (a *OnlineAggregator) Name() string { return "recall.online" }

// Aggregate 返回去重后的在线候选列表。
//   - 用户没有事件时返回空列表
//   - 事件源或相似度索引失败 / 超时返回 UNAVAILABLE 错误，不会退化为空列表
func (a *OnlineAggregator) Aggregate(ctx context.Context, userID int64, k int) ([]int64, error) {
	count := a.EventCount
	if count <= 0 {
		count = core.DefaultEventCount
	}

	events, err := recentEvents(ctx, a.Events, a.Timeout, userID, count)
	if err != nil {
		logging.Ctx(ctx).Warn().Str("source", a.Name()).Err(err).Int64("user_id", userID).Msg("online: event source unavailable")
		return nil, err
	}
	if len(events) == 0 || k <= 0 {
		return []int64{}, nil
	}

	// 重复事件产生的 bucket 完全相同，去重后查询不影响合并结果
	fanout := &SimilarFanout{
		Index:         a.Similarity,
		Timeout:       a.Timeout,
		MaxConcurrent: a.MaxConcurrent,
	}
	buckets, err := fanout.Fetch(ctx, core.DedupIDs(events), k)
	if err != nil {
		logging.Ctx(ctx).Warn().Str("source", a.Name()).Err(err).Int64("user_id", userID).Msg("online: similarity index unavailable")
		return nil, err
	}

	recs := MergeByScore(buckets)
	logging.Ctx(ctx).Debug().Str("source", a.Name()).Int64("user_id", userID).Ints64("events", events).Ints64("recs", recs).Msg("online recommendations")
	return recs, nil
}
