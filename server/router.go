package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options 是各角色共用的 HTTP 选项。
type Options struct {
	// RateLimit 每个客户端 IP 每秒允许的请求数，0 表示不限流
	RateLimit int

	// MaxK 参数 k 的上限，0 表示不限制
	MaxK int
}

// newRouter 创建带公共中间件的路由，并挂载 /healthz 与 /metrics。
// api 中注册的业务路由受限流保护，健康检查与指标不受影响。
func newRouter(role string, opts Options, api func(r chi.Router)) *chi.Mux {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(accessLog(role))
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "role": role})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if opts.RateLimit > 0 {
			r.Use(httprate.LimitByIP(opts.RateLimit, time.Second))
		}
		api(r)
	})
	return r
}
