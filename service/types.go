package service

// 远程服务的线上协议，server 包的处理函数使用同样的结构。

// SimilarItemsResponse 是 POST /similar_items 的响应，两个数组按下标一一对应。
type SimilarItemsResponse struct {
	ItemIDs []int64   `json:"item_id_2"`
	Scores  []float64 `json:"score"`
}

// EventsResponse 是 POST /get 的响应，最近事件在前。
type EventsResponse struct {
	Events []int64 `json:"events"`
}

// PutEventResponse 是 POST /put 的响应。
type PutEventResponse struct {
	Result string `json:"result"`
}

// RecsResponse 是推荐接口的响应。
type RecsResponse struct {
	Recs []int64 `json:"recs"`
}

// ErrorResponse 是所有接口的错误响应。
type ErrorResponse struct {
	Error string `json:"error"`
}
