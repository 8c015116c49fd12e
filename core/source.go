package core

import "context"

// EventSource 是用户最近交互事件的来源（外部协作服务）。
//
// 约定：
//   - 返回顺序为最近优先
//   - 历史不足时可以少于 count 条；未知用户返回空列表，不是错误
//   - 网络/超时失败返回 IsUnavailable 为 true 的错误
//
// 实现：
//   - recall.StoreEventSource（基于 core.ListStore，内存或 Redis）
//   - service.EventsClient（远程事件服务）
type EventSource interface {
	RecentEvents(ctx context.Context, userID int64, count int) ([]int64, error)
}

// SimilarityIndex 是物品到相似物品的查询接口。
//
// 约定：
//   - 返回 itemID 的前 k 个相似物品，保持存储时的排名顺序
//   - itemID 不在索引中时返回空列表，不是错误
//
// 实现：
//   - snapshot.SimilarityIndex（进程内只读快照）
//   - service.SimilarityClient（远程 features 服务）
type SimilarityIndex interface {
	Similar(ctx context.Context, itemID int64, k int) ([]SimilarityEntry, error)
}
