package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupIDs(t *testing.T) {
	assert.Equal(t, []int64{5, 10, 20, 40, 30}, DedupIDs([]int64{5, 10, 10, 20, 40, 30}))
	assert.Equal(t, []int64{}, DedupIDs(nil))
	assert.Equal(t, []int64{3, 1, 2}, DedupIDs([]int64{3, 3, 1, 3, 2, 1}))
}

func TestHead(t *testing.T) {
	ids := []int64{1, 2, 3, 4}

	assert.Equal(t, []int64{1, 2}, Head(ids, 2))
	assert.Equal(t, []int64{1, 2, 3, 4}, Head(ids, 10))
	assert.Equal(t, []int64{}, Head(ids, 0))
	assert.Equal(t, []int64{}, Head(ids, -3))
	assert.Equal(t, []int64{}, Head(nil, 5))

	head := Head(ids, 2)
	head[0] = 99
	assert.Equal(t, int64(1), ids[0], "Head must not alias the source slice")
}
