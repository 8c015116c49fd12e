// Package snapshot 提供进程内只读的推荐快照：
//   - RecommendationTable：用户 → 个性化推荐列表，以及冷启动使用的热门列表
//   - SimilarityIndex：物品 → 相似物品列表（带分数）
//
// 快照在服务启动时由 Loader 从 Parquet/CSV 文件一次性加载，之后不再修改，
// 因此并发读取不需要加锁。加载失败（文件缺失、列缺失、空值）一律视为
// core.ErrCorruptSnapshot，由调用方终止启动。
package snapshot
