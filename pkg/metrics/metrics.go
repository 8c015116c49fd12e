// Package metrics 定义服务的 Prometheus 指标，注册在默认 Registry 上，
// 由 server 的 /metrics 路由暴露。
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests 按路由和状态码统计请求数
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recblend_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"route", "code"},
	)

	// HTTPRequestDuration 按路由统计请求耗时
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recblend_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// OfflineResolutions 按来源（personal / default）统计离线推荐次数
	OfflineResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recblend_offline_resolutions_total",
			Help: "Offline recommendation resolutions by source",
		},
		[]string{"source"},
	)

	// CollaboratorCalls 按协作服务和结果（ok / error）统计调用次数
	CollaboratorCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recblend_collaborator_calls_total",
			Help: "Calls to the event source and similarity index by result",
		},
		[]string{"collaborator", "result"},
	)

	// CollaboratorDuration 按协作服务统计调用耗时
	CollaboratorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recblend_collaborator_call_duration_seconds",
			Help:    "Latency of calls to the event source and similarity index",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"collaborator"},
	)
)

// ObserveCollaborator 记录一次协作服务调用。
func ObserveCollaborator(collaborator string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	CollaboratorCalls.WithLabelValues(collaborator, result).Inc()
	CollaboratorDuration.WithLabelValues(collaborator).Observe(time.Since(start).Seconds())
}
