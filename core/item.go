package core

// SimilarityEntry 是相似物品索引中的一行：目标物品及其相似度分数。
// 同一个源物品下的条目按 Score 降序存放。
type SimilarityEntry struct {
	ItemID int64   `json:"item_id"`
	Score  float64 `json:"score"`
}

// DedupIDs 按出现顺序去重，保留第一次出现的 ID。
func DedupIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Head 返回 ids 的前 k 个元素（k <= 0 时返回空列表）。
// 返回值是新切片，调用方可以放心修改。
func Head(ids []int64, k int) []int64 {
	if k <= 0 || len(ids) == 0 {
		return []int64{}
	}
	if k > len(ids) {
		k = len(ids)
	}
	out := make([]int64, k)
	copy(out, ids[:k])
	return out
}
