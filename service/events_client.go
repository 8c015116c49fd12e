package service

import (
	"context"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/rushteam/recblend/core"
)

// EventsClient 是远程事件服务的客户端，实现 core.EventSource。
//
// 协议：
//   - POST /get?user_id={id}&k={k} → {"events": [...]}
//   - POST /put?user_id={id}&item_id={id} → {"result": "ok"}
type EventsClient struct {
	*httpClient
}

// NewEventsClient 创建事件服务客户端，endpoint 例如 "http://127.0.0.1:8020"。
func NewEventsClient(endpoint string, opts ...ClientOption) *EventsClient {
	return &EventsClient{httpClient: newHTTPClient(core.ModuleEvents, endpoint, opts...)}
}

func (c *EventsClient) RecentEvents(ctx context.Context, userID int64, count int) ([]int64, error) {
	params := url.Values{}
	params.Set("user_id", strconv.FormatInt(userID, 10))
	params.Set("k", strconv.Itoa(count))

	body, err := c.post(ctx, "/get", params)
	if err != nil {
		return nil, err
	}

	var resp EventsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, core.Unavailable(core.ModuleEvents, err, "events: decode response for user %d", userID)
	}
	if resp.Events == nil {
		return []int64{}, nil
	}
	return resp.Events, nil
}

// Append 记录一次用户事件。
func (c *EventsClient) Append(ctx context.Context, userID, itemID int64) error {
	params := url.Values{}
	params.Set("user_id", strconv.FormatInt(userID, 10))
	params.Set("item_id", strconv.FormatInt(itemID, 10))

	_, err := c.post(ctx, "/put", params)
	return err
}

var _ core.EventSource = (*EventsClient)(nil)
