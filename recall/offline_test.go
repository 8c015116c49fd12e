package recall

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rushteam/recblend/pkg/logging"
)

func TestOfflineResolver_Resolve(t *testing.T) {
	table := &fakeTable{
		personal: map[int64][]int64{
			1: {10, 20, 30, 40},
			2: {},
		},
		fallback: []int64{100, 200, 300},
	}

	tests := []struct {
		name   string
		userID int64
		k      int
		want   []int64
	}{
		{name: "personal truncated", userID: 1, k: 2, want: []int64{10, 20}},
		{name: "personal k larger than list", userID: 1, k: 100, want: []int64{10, 20, 30, 40}},
		{name: "personal empty list", userID: 2, k: 5, want: []int64{}},
		{name: "cold start uses default", userID: 3, k: 2, want: []int64{100, 200}},
		{name: "cold start k larger than default", userID: 3, k: 10, want: []int64{100, 200, 300}},
		{name: "zero k", userID: 1, k: 0, want: []int64{}},
		{name: "negative k", userID: 3, k: -1, want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewOfflineResolver(table, nil)
			assert.Equal(t, tt.want, r.Resolve(tt.userID, tt.k))
		})
	}
}

func TestOfflineResolver_Stats(t *testing.T) {
	table := &fakeTable{
		personal: map[int64][]int64{1: {10}},
		fallback: []int64{100},
	}
	stats := &UsageStats{}
	r := NewOfflineResolver(table, stats)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%4 == 0 {
				r.Resolve(1, 10)
			} else {
				r.Resolve(int64(1000+i), 10)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, UsageSnapshot{PersonalHits: 25, DefaultHits: 75}, stats.Snapshot())
}

func TestOfflineResolver_DoesNotAliasTable(t *testing.T) {
	table := &fakeTable{personal: map[int64][]int64{1: {10, 20}}}
	r := NewOfflineResolver(table, nil)

	got := r.Resolve(1, 2)
	got[0] = 99
	assert.Equal(t, int64(10), table.personal[1][0])
}

func TestOfflineResolver_LogsFallbackWithSource(t *testing.T) {
	var buf bytes.Buffer
	logging.Init(logging.Config{Level: "debug", Output: &buf})
	defer logging.Init(logging.DefaultConfig())

	r := NewOfflineResolver(&fakeTable{fallback: []int64{1, 2}}, nil)
	assert.Equal(t, []int64{1}, r.Resolve(42, 1))

	assert.Contains(t, buf.String(), `"source":"recall.offline"`)
	assert.Contains(t, buf.String(), `"user_id":42`)
}
