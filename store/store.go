package store

// 注意：此包只包含实现，接口定义在 core 包。
// 使用 core.ListStore 接口。
//
// 示例：
//   var s core.ListStore = NewMemoryStore()
//   rs, err := NewRedisStore(RedisOptions{Addr: "localhost:6379"})
