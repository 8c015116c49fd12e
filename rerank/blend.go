package rerank

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/recblend/core"
	"github.com/rushteam/recblend/pkg/logging"
)

// OfflineSource 是离线推荐源，recall.OfflineResolver 实现此接口。
type OfflineSource interface {
	Resolve(userID int64, k int) []int64
}

// OnlineSource 是在线推荐源，recall.OnlineAggregator 实现此接口。
type OnlineSource interface {
	Aggregate(ctx context.Context, userID int64, k int) ([]int64, error)
}

// Blender 把在线和离线推荐交错合并成最终列表：
//
//	online[0], offline[0], online[1], offline[1], ... 较长列表的剩余部分
//
// 然后按物品去重（保留首次出现）并截断到 k。
//
// 在线推荐失败时整个请求失败，不退化为只返回离线结果。
type Blender struct {
	Offline OfflineSource
	Online  OnlineSource
}

func (b *Blender) Name() string { return "rerank.blend" }

// Blend 并发获取离线与在线推荐并合并。k 同时作为离线条数与每个事件的相似物品数。
func (b *Blender) Blend(ctx context.Context, userID int64, k int) ([]int64, error) {
	var offline, online []int64

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		offline = b.Offline.Resolve(userID, k)
		return nil
	})
	eg.Go(func() error {
		var err error
		online, err = b.Online.Aggregate(egCtx, userID, k)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("blend user %d: %w", userID, err)
	}

	recs := core.Head(core.DedupIDs(Interleave(online, offline)), k)
	logging.Ctx(ctx).Debug().
		Str("source", b.Name()).
		Int64("user_id", userID).
		Int("online", len(online)).
		Int("offline", len(offline)).
		Ints64("recs", recs).
		Msg("blended recommendations")
	return recs, nil
}

// Interleave 返回去重之前的交错序列，每一步在线条目在前、离线条目在后。
func Interleave(online, offline []int64) []int64 {
	m := min(len(online), len(offline))
	out := make([]int64, 0, len(online)+len(offline))
	for i := 0; i < m; i++ {
		out = append(out, online[i], offline[i])
	}
	if len(online) > m {
		out = append(out, online[m:]...)
	} else {
		out = append(out, offline[m:]...)
	}
	return out
}
