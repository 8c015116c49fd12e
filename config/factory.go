package config

import (
	"fmt"
	"io"

	"github.com/rushteam/recblend/core"
	"github.com/rushteam/recblend/recall"
	"github.com/rushteam/recblend/service"
	"github.com/rushteam/recblend/snapshot"
	"github.com/rushteam/recblend/store"
)

func init() {
	RegisterStore(BackendMemory, func(EventsConfig) (core.ListStore, error) {
		return store.NewMemoryStore(), nil
	})
	RegisterStore(BackendRedis, func(cfg EventsConfig) (core.ListStore, error) {
		s, err := store.NewRedisStore(store.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}

// NewEventLog 构建本地事件日志（memory / redis），供 events 服务读写。
func NewEventLog(cfg EventsConfig) (*recall.StoreEventSource, error) {
	s, err := NewListStore(cfg)
	if err != nil {
		return nil, err
	}
	return recall.NewStoreEventSource(s, cfg.KeyPrefix, cfg.MaxEvents), nil
}

// NewEventSource 构建推荐服务使用的事件源。
// 返回的 io.Closer 用于退出时释放存储连接。
func NewEventSource(cfg *Config) (core.EventSource, io.Closer, error) {
	if cfg.Events.Backend == BackendRemote {
		client := service.NewEventsClient(cfg.Events.RemoteURL, service.WithBreaker(cfg.Breaker))
		return client, closerFunc(func() error { return nil }), nil
	}
	log, err := NewEventLog(cfg.Events)
	if err != nil {
		return nil, nil, err
	}
	return log, log, nil
}

// NewSimilarityIndex 构建相似度索引：local 直接使用已加载的快照，remote 访问 features 服务。
func NewSimilarityIndex(cfg *Config, local *snapshot.SimilarityIndex) (core.SimilarityIndex, error) {
	switch cfg.Similarity.Backend {
	case BackendLocal:
		if local == nil {
			return nil, fmt.Errorf("similarity backend %q requires a loaded snapshot", BackendLocal)
		}
		return local, nil
	case BackendRemote:
		return service.NewSimilarityClient(cfg.Similarity.RemoteURL, service.WithBreaker(cfg.Breaker)), nil
	default:
		return nil, fmt.Errorf("unsupported similarity backend %q", cfg.Similarity.Backend)
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
