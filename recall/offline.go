package recall

import (
	"github.com/rushteam/recblend/core"
	"github.com/rushteam/recblend/pkg/logging"
	"github.com/rushteam/recblend/pkg/metrics"
)

// RecommendationLookup 是离线推荐表的只读视图。
// snapshot.RecommendationTable 实现此接口。
type RecommendationLookup interface {
	// Lookup 返回用户的个性化列表；用户不在表中时 ok 为 false
	Lookup(userID int64) (items []int64, ok bool)

	// Default 返回冷启动列表
	Default() []int64
}

// OfflineResolver 是离线推荐源：优先返回个性化推荐，用户不在表中时回退到默认（热门）列表。
// 表加载完成后不存在失败路径，因此 Resolve 不返回 error。
type OfflineResolver struct {
	Table RecommendationLookup
	Stats *UsageStats
}

// NewOfflineResolver 创建离线推荐源，stats 为 nil 时内部新建。
func NewOfflineResolver(table RecommendationLookup, stats *UsageStats) *OfflineResolver {
	if stats == nil {
		stats = &UsageStats{}
	}
	return &OfflineResolver{Table: table, Stats: stats}
}

func (r *OfflineResolver) Name() string { return "recall.offline" }

// Resolve 返回用户的前 k 条离线推荐（保持排名顺序），k <= 0 时返回空列表。
func (r *OfflineResolver) Resolve(userID int64, k int) []int64 {
	if items, ok := r.Table.Lookup(userID); ok {
		r.Stats.incPersonal()
		metrics.OfflineResolutions.WithLabelValues("personal").Inc()
		return core.Head(items, k)
	}

	// 冷启动：没有个性化推荐是正常情况
	r.Stats.incDefault()
	metrics.OfflineResolutions.WithLabelValues("default").Inc()
	logging.Debug().Str("source", r.Name()).Int64("user_id", userID).Msg("no personal recommendations, using default list")
	return core.Head(r.Table.Default(), k)
}
