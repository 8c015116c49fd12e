package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/rushteam/recblend/core"
)

// maxResponseBytes 限制远程响应体大小
const maxResponseBytes = 16 << 20

// ClientOption 远程客户端配置选项
type ClientOption func(*clientOptions)

type clientOptions struct {
	timeout    time.Duration
	httpClient *http.Client
	breaker    BreakerConfig
}

// WithTimeout 设置 HTTP 客户端超时（调用方的 context 超时同样生效）
func WithTimeout(timeout time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithHTTPClient 使用自定义 HTTP 客户端
func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// WithBreaker 设置熔断配置
func WithBreaker(cfg BreakerConfig) ClientOption {
	return func(o *clientOptions) {
		o.breaker = cfg
	}
}

// httpClient 是远程协作服务客户端的公共部分：
// 所有请求都是带 query 参数的 POST，经过熔断器，失败统一为 UNAVAILABLE。
type httpClient struct {
	module   string
	endpoint string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker[[]byte]
}

func newHTTPClient(module, endpoint string, opts ...ClientOption) *httpClient {
	o := &clientOptions{
		timeout: 5 * time.Second,
		breaker: DefaultBreakerConfig(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: o.timeout}
	}
	return &httpClient{
		module:   module,
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   o.httpClient,
		breaker:  newBreaker(module+"@"+endpoint, o.breaker),
	}
}

// post 发送请求并返回 200 响应体。
func (c *httpClient) post(ctx context.Context, path string, params url.Values) ([]byte, error) {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, path, params)
	})
	if err != nil {
		return nil, core.Unavailable(c.module, err, "%s %s", c.module, path)
	}
	return body, nil
}

func (c *httpClient) do(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.endpoint + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, callError(ctx, "rpc call", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, callError(ctx, "read body", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}

// callError 包装传输错误；调用方已取消时保留 context.Canceled，熔断器据此忽略本次请求。
func callError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.Canceled) && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w (%v)", op, ctxErr, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// StatusError 是远程服务返回的非 200 响应。
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("rpc error: status=%d, body=%s", e.Code, e.Body)
}

// clientError 判断是否为 4xx 响应：请求本身有问题，远程服务是健康的。
func clientError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code >= 400 && se.Code < 500 && se.Code != http.StatusTooManyRequests
}
