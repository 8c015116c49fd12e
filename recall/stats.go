package recall

import "sync/atomic"

// UsageStats 记录离线推荐命中个性化表 / 回退默认表的次数，进程内有效，重启清零。
// 仅用于观测，不影响推荐结果。
type UsageStats struct {
	personal atomic.Int64
	fallback atomic.Int64
}

// UsageSnapshot 是 UsageStats 在某一时刻的读数。
type UsageSnapshot struct {
	PersonalHits int64 `json:"request_personal_count"`
	DefaultHits  int64 `json:"request_default_count"`
}

func (s *UsageStats) incPersonal() { s.personal.Add(1) }
func (s *UsageStats) incDefault()  { s.fallback.Add(1) }

// Snapshot 读取当前计数。
func (s *UsageStats) Snapshot() UsageSnapshot {
	return UsageSnapshot{
		PersonalHits: s.personal.Load(),
		DefaultHits:  s.fallback.Load(),
	}
}
