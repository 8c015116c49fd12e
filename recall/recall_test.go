package recall

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rushteam/recblend/core"
)

type fakeTable struct {
	personal map[int64][]int64
	fallback []int64
}

func (f *fakeTable) Lookup(userID int64) ([]int64, bool) {
	items, ok := f.personal[userID]
	return items, ok
}

func (f *fakeTable) Default() []int64 { return f.fallback }

type fakeEvents struct {
	events map[int64][]int64
	err    error
	delay  time.Duration
}

func (f *fakeEvents) RecentEvents(ctx context.Context, userID int64, count int) ([]int64, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return core.Head(f.events[userID], count), nil
}

type fakeIndex struct {
	mu      sync.Mutex
	entries map[int64][]core.SimilarityEntry
	failOn  map[int64]error
	delay   map[int64]time.Duration
	calls   []int64
}

func (f *fakeIndex) Similar(ctx context.Context, itemID int64, k int) ([]core.SimilarityEntry, error) {
	f.mu.Lock()
	f.calls = append(f.calls, itemID)
	f.mu.Unlock()

	if d := f.delay[itemID]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := f.failOn[itemID]; err != nil {
		return nil, err
	}
	list := f.entries[itemID]
	if k < len(list) {
		list = list[:k]
	}
	out := make([]core.SimilarityEntry, len(list))
	copy(out, list)
	return out, nil
}

var errDown = errors.New("connection refused")
