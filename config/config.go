// Package config 负责加载服务配置。
//
// 配置分三层，后者覆盖前者：
//  1. Default() 内置默认值
//  2. YAML 配置文件（可选）
//  3. 环境变量，前缀 RECBLEND_，双下划线表示层级：
//     RECBLEND_ONLINE__EVENT_COUNT=3 → online.event_count
package config

import (
	"fmt"
	"time"

	"github.com/rushteam/recblend/core"
	"github.com/rushteam/recblend/pkg/logging"
	"github.com/rushteam/recblend/service"
)

// 服务角色，对应 cmd/recblend 的子命令。
const (
	RoleRecommendations = "recommendations"
	RoleFeatures        = "features"
	RoleEvents          = "events"
)

// 事件源与相似度索引的后端类型
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendRemote = "remote"
	BackendLocal  = "local"
)

// Config 是完整的服务配置。
type Config struct {
	Log        logging.Config        `yaml:"log" koanf:"log"`
	Server     ServerConfig          `yaml:"server" koanf:"server"`
	Snapshot   SnapshotConfig        `yaml:"snapshot" koanf:"snapshot"`
	Offline    OfflineConfig         `yaml:"offline" koanf:"offline"`
	Online     OnlineConfig          `yaml:"online" koanf:"online"`
	Events     EventsConfig          `yaml:"events" koanf:"events"`
	Similarity SimilarityConfig      `yaml:"similarity" koanf:"similarity"`
	Breaker    service.BreakerConfig `yaml:"breaker" koanf:"breaker"`
}

// ServerConfig 是 HTTP 服务配置。
type ServerConfig struct {
	Addr            string        `yaml:"addr" koanf:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout" koanf:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" koanf:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" koanf:"shutdown_timeout"`

	// RateLimit 每个客户端 IP 每秒允许的请求数，0 表示不限流
	RateLimit int `yaml:"rate_limit" koanf:"rate_limit"`

	// MaxK 请求参数 k 的上限
	MaxK int `yaml:"max_k" koanf:"max_k"`
}

// SnapshotConfig 是启动时加载的离线表路径，支持 .parquet / .csv。
type SnapshotConfig struct {
	PersonalPath string `yaml:"personal_path" koanf:"personal_path"`
	PopularPath  string `yaml:"popular_path" koanf:"popular_path"`
	SimilarPath  string `yaml:"similar_path" koanf:"similar_path"`
}

type OfflineConfig struct {
	DefaultK int `yaml:"default_k" koanf:"default_k"`
}

type OnlineConfig struct {
	DefaultK    int           `yaml:"default_k" koanf:"default_k"`
	EventCount  int           `yaml:"event_count" koanf:"event_count"`
	CallTimeout time.Duration `yaml:"call_timeout" koanf:"call_timeout"`

	// MaxConcurrent 相似物品查询的最大并发数，0 表示不限制
	MaxConcurrent int `yaml:"max_concurrent" koanf:"max_concurrent"`
}

// EventsConfig 是事件日志配置。
// Backend 为 memory / redis 时事件保存在本进程可访问的存储中；
// remote 时通过 HTTP 访问独立的事件服务。
type EventsConfig struct {
	Backend   string      `yaml:"backend" koanf:"backend"`
	MaxEvents int         `yaml:"max_events" koanf:"max_events"`
	KeyPrefix string      `yaml:"key_prefix" koanf:"key_prefix"`
	RemoteURL string      `yaml:"remote_url" koanf:"remote_url"`
	Redis     RedisConfig `yaml:"redis" koanf:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" koanf:"addr"`
	DB       int    `yaml:"db" koanf:"db"`
	Password string `yaml:"password" koanf:"password"`
}

// SimilarityConfig 选择相似度索引：local 使用本地快照，remote 访问 features 服务。
type SimilarityConfig struct {
	Backend   string `yaml:"backend" koanf:"backend"`
	RemoteURL string `yaml:"remote_url" koanf:"remote_url"`
}

// Default 返回默认配置。
func Default() *Config {
	return &Config{
		Log: logging.Config{Level: "info", Format: "json"},
		Server: ServerConfig{
			Addr:            ":8000",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxK:            1000,
		},
		Offline: OfflineConfig{DefaultK: core.DefaultOfflineK},
		Online: OnlineConfig{
			DefaultK:    core.DefaultOnlineK,
			EventCount:  core.DefaultEventCount,
			CallTimeout: core.DefaultCallTimeout,
		},
		Events: EventsConfig{
			Backend:   BackendMemory,
			MaxEvents: core.DefaultMaxEvents,
			KeyPrefix: "events",
			Redis:     RedisConfig{Addr: "127.0.0.1:6379"},
		},
		Similarity: SimilarityConfig{Backend: BackendLocal},
		Breaker:    service.DefaultBreakerConfig(),
	}
}

// Validate 检查指定角色需要的配置项。
func (c *Config) Validate(role string) error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.MaxK < 1 {
		return fmt.Errorf("server.max_k must be >= 1, got %d", c.Server.MaxK)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must be >= 0, got %d", c.Server.RateLimit)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}

	switch role {
	case RoleRecommendations:
		return c.validateRecommendations()
	case RoleFeatures:
		if c.Snapshot.SimilarPath == "" {
			return fmt.Errorf("snapshot.similar_path is required for %s", role)
		}
		return nil
	case RoleEvents:
		if c.Events.Backend == BackendRemote {
			return fmt.Errorf("events.backend %q cannot be used by the events service itself", BackendRemote)
		}
		return c.validateEvents()
	default:
		return fmt.Errorf("unknown role %q", role)
	}
}

func (c *Config) validateRecommendations() error {
	if c.Snapshot.PersonalPath == "" || c.Snapshot.PopularPath == "" {
		return fmt.Errorf("snapshot.personal_path and snapshot.popular_path are required")
	}
	if c.Offline.DefaultK < 1 {
		return fmt.Errorf("offline.default_k must be >= 1, got %d", c.Offline.DefaultK)
	}
	if c.Online.DefaultK < 1 {
		return fmt.Errorf("online.default_k must be >= 1, got %d", c.Online.DefaultK)
	}
	if c.Online.EventCount < 1 {
		return fmt.Errorf("online.event_count must be >= 1, got %d", c.Online.EventCount)
	}
	if c.Online.CallTimeout <= 0 {
		return fmt.Errorf("online.call_timeout must be positive")
	}
	if c.Online.MaxConcurrent < 0 {
		return fmt.Errorf("online.max_concurrent must be >= 0, got %d", c.Online.MaxConcurrent)
	}
	if err := c.validateEvents(); err != nil {
		return err
	}

	switch c.Similarity.Backend {
	case BackendLocal:
		if c.Snapshot.SimilarPath == "" {
			return fmt.Errorf("snapshot.similar_path is required when similarity.backend is %q", BackendLocal)
		}
	case BackendRemote:
		if c.Similarity.RemoteURL == "" {
			return fmt.Errorf("similarity.remote_url is required when similarity.backend is %q", BackendRemote)
		}
	default:
		return fmt.Errorf("unsupported similarity.backend %q", c.Similarity.Backend)
	}
	return nil
}

func (c *Config) validateEvents() error {
	if c.Events.Backend == BackendRemote {
		if c.Events.RemoteURL == "" {
			return fmt.Errorf("events.remote_url is required when events.backend is %q", BackendRemote)
		}
		return nil
	}
	if !HasStore(c.Events.Backend) {
		return fmt.Errorf("unsupported events.backend %q (supported: %v)", c.Events.Backend, SupportedStores())
	}
	if c.Events.MaxEvents < 1 {
		return fmt.Errorf("events.max_events must be >= 1, got %d", c.Events.MaxEvents)
	}
	return nil
}
