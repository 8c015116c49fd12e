package core

import "time"

// 默认参数，与线上服务保持一致。
const (
	// DefaultOfflineK 是离线推荐 / 混合推荐的默认返回条数
	DefaultOfflineK = 100

	// DefaultOnlineK 是在线推荐中每个事件扩展的相似物品数
	DefaultOnlineK = 10

	// DefaultEventCount 是在线推荐读取的最近事件条数
	DefaultEventCount = 5

	// DefaultMaxEvents 是事件日志为每个用户保留的最大条数
	DefaultMaxEvents = 10

	// DefaultCallTimeout 是单次协作服务调用的超时时间
	DefaultCallTimeout = 2 * time.Second
)
