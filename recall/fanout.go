package recall

import (
	"cmp"
	"context"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/recblend/core"
)

// SimilarFanout 并发查询多个源物品的相似物品，结果按源物品的下标回填，
// 因此合并顺序只取决于输入顺序，与各请求的完成先后无关。
// 任何一个查询失败都会取消其余查询并返回错误（不会返回部分结果）。
type SimilarFanout struct {
	Index         core.SimilarityIndex
	Timeout       time.Duration // 每次查询的超时时间
	MaxConcurrent int           // 最大并发数（0 表示无限制）
}

// Fetch 返回与 itemIDs 一一对应的相似物品列表。
func (f *SimilarFanout) Fetch(ctx context.Context, itemIDs []int64, k int) ([][]core.SimilarityEntry, error) {
	buckets := make([][]core.SimilarityEntry, len(itemIDs))
	if len(itemIDs) == 0 {
		return buckets, nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	if f.MaxConcurrent > 0 {
		eg.SetLimit(f.MaxConcurrent)
	}

	for i, itemID := range itemIDs {
		eg.Go(func() error {
			entries, err := similarItems(egCtx, f.Index, f.Timeout, itemID, k)
			if err != nil {
				return err
			}
			buckets[i] = entries
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return buckets, nil
}

// MergeByScore 按顺序拼接各 bucket，按分数降序稳定排序后按物品去重。
//
// 稳定排序保证同分条目保持拼接顺序；先排序再去重保证同一物品保留的是它分数最高的那一次出现。
func MergeByScore(buckets [][]core.SimilarityEntry) []int64 {
	total := 0
	for _, b := range buckets {
		total += len(b)
	}
	all := make([]core.SimilarityEntry, 0, total)
	for _, b := range buckets {
		all = append(all, b...)
	}

	slices.SortStableFunc(all, func(a, b core.SimilarityEntry) int {
		return cmp.Compare(b.Score, a.Score)
	})

	ids := make([]int64, len(all))
	for i, e := range all {
		ids[i] = e.ItemID
	}
	return core.DedupIDs(ids)
}
