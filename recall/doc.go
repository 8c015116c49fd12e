// Package recall 提供两路推荐源：
//
//   - OfflineResolver：读取离线推荐表，用户不在表中时回退到默认列表（冷启动）
//   - OnlineAggregator：读取用户最近事件，为每个事件物品查询相似物品后合并
//
// 以及基于 core.ListStore 的事件日志 StoreEventSource。
package recall
