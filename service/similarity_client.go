package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/rushteam/recblend/core"
)

// SimilarityClient 是远程 features 服务的客户端，实现 core.SimilarityIndex。
//
// 协议：
//   - 请求：POST /similar_items?item_id={id}&k={k}
//   - 响应：{"item_id_2": [...], "score": [...]}
type SimilarityClient struct {
	*httpClient
}

// NewSimilarityClient 创建 features 服务客户端，endpoint 例如 "http://127.0.0.1:8010"。
func NewSimilarityClient(endpoint string, opts ...ClientOption) *SimilarityClient {
	return &SimilarityClient{httpClient: newHTTPClient(core.ModuleSimilarity, endpoint, opts...)}
}

func (c *SimilarityClient) Similar(ctx context.Context, itemID int64, k int) ([]core.SimilarityEntry, error) {
	params := url.Values{}
	params.Set("item_id", strconv.FormatInt(itemID, 10))
	params.Set("k", strconv.Itoa(k))

	body, err := c.post(ctx, "/similar_items", params)
	if err != nil {
		return nil, err
	}

	var resp SimilarItemsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, core.Unavailable(core.ModuleSimilarity, err, "similarity: decode response for item %d", itemID)
	}
	if len(resp.ItemIDs) != len(resp.Scores) {
		return nil, core.Unavailable(core.ModuleSimilarity,
			fmt.Errorf("item_id_2 has %d entries, score has %d", len(resp.ItemIDs), len(resp.Scores)),
			"similarity: malformed response for item %d", itemID)
	}

	entries := make([]core.SimilarityEntry, len(resp.ItemIDs))
	for i, id := range resp.ItemIDs {
		entries[i] = core.SimilarityEntry{ItemID: id, Score: resp.Scores[i]}
	}
	return entries, nil
}

var _ core.SimilarityIndex = (*SimilarityClient)(nil)
