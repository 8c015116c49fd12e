package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rushteam/recblend/core"
)

// StoreBuilder 根据事件配置构建列表存储。
// 新的存储后端在 init 中调用 RegisterStore(name, builder) 即可被配置选择。
type StoreBuilder func(cfg EventsConfig) (core.ListStore, error)

var (
	storeBuilders   = make(map[string]StoreBuilder)
	storeBuildersMu sync.RWMutex
)

// RegisterStore 注册一种事件存储后端。
func RegisterStore(name string, builder StoreBuilder) {
	if name == "" || builder == nil {
		return
	}
	storeBuildersMu.Lock()
	defer storeBuildersMu.Unlock()
	storeBuilders[name] = builder
}

// HasStore 判断存储后端是否已注册。
func HasStore(name string) bool {
	storeBuildersMu.RLock()
	defer storeBuildersMu.RUnlock()
	_, ok := storeBuilders[name]
	return ok
}

// SupportedStores 返回已注册的存储后端（排序），用于错误提示。
func SupportedStores() []string {
	storeBuildersMu.RLock()
	defer storeBuildersMu.RUnlock()
	names := make([]string, 0, len(storeBuilders))
	for name := range storeBuilders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewListStore 按 cfg.Backend 构建存储。
func NewListStore(cfg EventsConfig) (core.ListStore, error) {
	storeBuildersMu.RLock()
	builder, ok := storeBuilders[cfg.Backend]
	storeBuildersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported events backend %q (supported: %v)", cfg.Backend, SupportedStores())
	}
	return builder(cfg)
}
