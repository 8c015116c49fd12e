package service

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/rushteam/recblend/pkg/logging"
)

// BreakerConfig 是远程客户端熔断器的配置。
type BreakerConfig struct {
	// MaxRequests 半开状态下允许通过的请求数
	MaxRequests uint32 `yaml:"max_requests" koanf:"max_requests"`

	// Interval 闭合状态下清零计数的周期，0 表示不清零
	Interval time.Duration `yaml:"interval" koanf:"interval"`

	// Timeout 打开状态持续多久后进入半开
	Timeout time.Duration `yaml:"timeout" koanf:"timeout"`

	// FailureThreshold 连续失败多少次后打开，0 表示不启用熔断
	FailureThreshold uint32 `yaml:"failure_threshold" koanf:"failure_threshold"`
}

// DefaultBreakerConfig 返回默认熔断配置。
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          10 * time.Second,
		FailureThreshold: 5,
	}
}

func newBreaker(name string, cfg BreakerConfig) *gobreaker.CircuitBreaker[[]byte] {
	threshold := cfg.FailureThreshold
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return threshold > 0 && counts.ConsecutiveFailures >= threshold
		},
		// 调用方取消（fan-out 中兄弟请求失败、客户端断开）不反映远程服务状态
		IsExcluded: func(err error) bool {
			return errors.Is(err, context.Canceled)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || clientError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	}
	return gobreaker.NewCircuitBreaker[[]byte](settings)
}
