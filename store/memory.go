package store

import (
	"context"
	"sync"

	"github.com/rushteam/recblend/core"
)

// MemoryStore 是内存实现的 ListStore，用于测试/开发/单机部署。
// 进程重启后数据丢失。
type MemoryStore struct {
	mu    sync.RWMutex
	lists map[string][]string // 下标 0 为表头
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lists: make(map[string][]string),
	}
}

func (m *MemoryStore) Name() string { return "memory" }

func (m *MemoryStore) LPush(ctx context.Context, key string, values ...string) error {
	if len(values) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	old := m.lists[key]
	list := make([]string, 0, len(old)+len(values))
	// 与 Redis 一致：LPUSH a b c 之后表头是 c
	for i := len(values) - 1; i >= 0; i-- {
		list = append(list, values[i])
	}
	m.lists[key] = append(list, old...)
	return nil
}

func (m *MemoryStore) LTrim(ctx context.Context, key string, start, stop int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	list, ok := m.lists[key]
	if !ok {
		return nil
	}
	lo, hi, ok := normalizeRange(int64(len(list)), start, stop)
	if !ok {
		delete(m.lists, key)
		return nil
	}
	trimmed := make([]string, hi-lo+1)
	copy(trimmed, list[lo:hi+1])
	m.lists[key] = trimmed
	return nil
}

func (m *MemoryStore) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := m.lists[key]
	lo, hi, ok := normalizeRange(int64(len(list)), start, stop)
	if !ok {
		return []string{}, nil
	}
	out := make([]string, hi-lo+1)
	copy(out, list[lo:hi+1])
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }

// normalizeRange 把 Redis 风格的闭区间（支持负数下标）转换为合法的切片下标。
func normalizeRange(n, start, stop int64) (int64, int64, bool) {
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if n == 0 || start > stop {
		return 0, 0, false
	}
	return start, stop, true
}

var _ core.ListStore = (*MemoryStore)(nil)
