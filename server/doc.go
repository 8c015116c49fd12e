// Package server 提供三个服务角色的 HTTP 接口：
//
//   - recommendations：离线 / 在线 / 融合推荐
//   - features：相似物品查询
//   - events：用户事件读写
//
// 所有接口都是带 query 参数的 POST，响应为 JSON。
// 协作服务不可用返回 503，参数错误返回 400，其余错误返回 500，错误体为 {"error": "..."}。
package server
