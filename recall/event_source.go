package recall

import (
	"context"
	"strconv"

	"github.com/rushteam/recblend/core"
)

// StoreEventSource 是基于 core.ListStore 的事件日志，实现 core.EventSource。
// 每个用户一个列表，key 为 {KeyPrefix}:{userID}，表头为最近一次事件。
type StoreEventSource struct {
	store core.ListStore

	// KeyPrefix 是存储 key 的前缀，默认 "events"
	KeyPrefix string

	// MaxEvents 每个用户保留的最大事件数，默认 core.DefaultMaxEvents
	MaxEvents int
}

// NewStoreEventSource 创建一个基于 core.ListStore 的事件日志。
func NewStoreEventSource(s core.ListStore, keyPrefix string, maxEvents int) *StoreEventSource {
	if keyPrefix == "" {
		keyPrefix = "events"
	}
	if maxEvents <= 0 {
		maxEvents = core.DefaultMaxEvents
	}
	return &StoreEventSource{
		store:     s,
		KeyPrefix: keyPrefix,
		MaxEvents: maxEvents,
	}
}

func (s *StoreEventSource) Name() string { return "events." + s.store.Name() }

func (s *StoreEventSource) key(userID int64) string {
	return s.KeyPrefix + ":" + strconv.FormatInt(userID, 10)
}

// Append 记录一次用户事件，并只保留最近 MaxEvents 条。
func (s *StoreEventSource) Append(ctx context.Context, userID, itemID int64) error {
	key := s.key(userID)
	if err := s.store.LPush(ctx, key, strconv.FormatInt(itemID, 10)); err != nil {
		return core.Unavailable(core.ModuleEvents, err, "events: append for user %d", userID)
	}
	if err := s.store.LTrim(ctx, key, 0, int64(s.MaxEvents-1)); err != nil {
		return core.Unavailable(core.ModuleEvents, err, "events: trim for user %d", userID)
	}
	return nil
}

// RecentEvents 返回最近 count 条事件（最近优先），未知用户返回空列表。
func (s *StoreEventSource) RecentEvents(ctx context.Context, userID int64, count int) ([]int64, error) {
	if count <= 0 {
		return []int64{}, nil
	}
	vals, err := s.store.LRange(ctx, s.key(userID), 0, int64(count-1))
	if err != nil {
		return nil, core.Unavailable(core.ModuleEvents, err, "events: read for user %d", userID)
	}

	events := make([]int64, 0, len(vals))
	for _, v := range vals {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			// 非法记录跳过，不影响其余事件
			continue
		}
		events = append(events, id)
	}
	return events, nil
}

var _ core.EventSource = (*StoreEventSource)(nil)

// Close 释放底层存储。
func (s *StoreEventSource) Close() error { return s.store.Close() }
