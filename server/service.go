package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/rushteam/recblend/pkg/logging"
)

// Listener 是 *http.Server 的生命周期方法，便于测试替换。
type Listener interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPService 把 HTTP 服务包装成 suture.Service：
// context 取消时优雅关闭，监听失败时返回错误交给 supervisor 重启。
type HTTPService struct {
	name            string
	server          Listener
	shutdownTimeout time.Duration
}

// NewHTTPService 创建受监管的 HTTP 服务，shutdownTimeout <= 0 时使用 10s。
func NewHTTPService(name string, server Listener, shutdownTimeout time.Duration) *HTTPService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPService{name: name, server: server, shutdownTimeout: shutdownTimeout}
}

// Serve 实现 suture.Service。
func (h *HTTPService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("%s: listen: %w", h.name, err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
		defer cancel()
		if err := h.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: shutdown: %w", h.name, err)
		}
		<-errCh
		logging.Info().Str("service", h.name).Msg("http service stopped")
		return ctx.Err()
	}
}

func (h *HTTPService) String() string { return h.name }

// Supervise 在 suture supervisor 下运行服务，直到 ctx 取消。
func Supervise(ctx context.Context, name string, services ...suture.Service) error {
	sup := suture.New(name, suture.Spec{
		EventHook: func(e suture.Event) {
			logging.Warn().Str("supervisor", name).Fields(e.Map()).Msg(e.String())
		},
		FailureThreshold: 5,
		FailureDecay:     30,
		FailureBackoff:   5 * time.Second,
		Timeout:          15 * time.Second,
	})
	for _, svc := range services {
		sup.Add(svc)
	}

	err := sup.Serve(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
