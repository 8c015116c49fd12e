package snapshot

import (
	"context"

	"github.com/rushteam/recblend/core"
)

// RecommendationTable 是离线推荐表：个性化推荐 + 默认（热门）推荐。
// 构建完成后只读。
type RecommendationTable struct {
	personal map[int64][]int64
	fallback []int64
}

// NewRecommendationTable 用已排好序的数据构建推荐表。
// personal 中每个用户的列表按排名顺序存放；fallback 为冷启动列表。
func NewRecommendationTable(personal map[int64][]int64, fallback []int64) *RecommendationTable {
	if personal == nil {
		personal = make(map[int64][]int64)
	}
	return &RecommendationTable{
		personal: personal,
		fallback: fallback,
	}
}

// Lookup 返回用户的个性化推荐列表；用户不存在时 ok 为 false。
// 返回的切片与表共享底层数组，调用方不得修改。
func (t *RecommendationTable) Lookup(userID int64) (items []int64, ok bool) {
	items, ok = t.personal[userID]
	return items, ok
}

// Default 返回冷启动使用的默认推荐列表（只读）。
func (t *RecommendationTable) Default() []int64 {
	return t.fallback
}

// Users 返回个性化推荐覆盖的用户数。
func (t *RecommendationTable) Users() int {
	return len(t.personal)
}

// SimilarityIndex 是物品到相似物品的只读索引，实现 core.SimilarityIndex。
type SimilarityIndex struct {
	entries map[int64][]core.SimilarityEntry
}

// NewSimilarityIndex 构建相似物品索引，每个源物品下的条目保持传入顺序。
func NewSimilarityIndex(entries map[int64][]core.SimilarityEntry) *SimilarityIndex {
	if entries == nil {
		entries = make(map[int64][]core.SimilarityEntry)
	}
	return &SimilarityIndex{entries: entries}
}

// Get 返回 itemID 的前 k 个相似物品；未知物品返回空列表。
func (idx *SimilarityIndex) Get(itemID int64, k int) []core.SimilarityEntry {
	list := idx.entries[itemID]
	if k <= 0 || len(list) == 0 {
		return []core.SimilarityEntry{}
	}
	if k > len(list) {
		k = len(list)
	}
	out := make([]core.SimilarityEntry, k)
	copy(out, list[:k])
	return out
}

// Similar 实现 core.SimilarityIndex，进程内查询不会失败。
func (idx *SimilarityIndex) Similar(_ context.Context, itemID int64, k int) ([]core.SimilarityEntry, error) {
	return idx.Get(itemID, k), nil
}

// Items 返回索引中源物品的数量。
func (idx *SimilarityIndex) Items() int {
	return len(idx.entries)
}

var _ core.SimilarityIndex = (*SimilarityIndex)(nil)
