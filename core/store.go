package core

import "context"

// ListStore 是存储的领域接口，只暴露事件日志需要的列表操作。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 语义与 Redis list 一致：LPush 写入表头，区间为闭区间，负数下标从尾部计数
//
// 实现：
//   - store.MemoryStore 实现此接口
//   - store.RedisStore 实现此接口
type ListStore interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// LPush 将 values 依次写入列表头部
	LPush(ctx context.Context, key string, values ...string) error

	// LTrim 只保留 [start, stop] 区间内的元素
	LTrim(ctx context.Context, key string, start, stop int64) error

	// LRange 读取 [start, stop] 区间；key 不存在时返回空列表
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// Close 关闭连接/释放资源
	Close() error
}

