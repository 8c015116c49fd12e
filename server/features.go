package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rushteam/recblend/core"
	"github.com/rushteam/recblend/service"
)

// NewFeaturesHandler 返回 features 角色的路由：
//
//	POST /similar_items?item_id=&k=
//
// 未知物品返回空数组。
func NewFeaturesHandler(index core.SimilarityIndex, defaultK int, opts Options) http.Handler {
	return newRouter("features", opts, func(r chi.Router) {
		r.Post("/similar_items", func(w http.ResponseWriter, r *http.Request) {
			itemID, err := queryID(r, "item_id")
			if err != nil {
				writeError(w, r, err)
				return
			}
			k, err := queryK(r, defaultK, opts.MaxK)
			if err != nil {
				writeError(w, r, err)
				return
			}
			entries, err := index.Similar(r.Context(), itemID, k)
			if err != nil {
				writeError(w, r, err)
				return
			}

			resp := service.SimilarItemsResponse{
				ItemIDs: make([]int64, len(entries)),
				Scores:  make([]float64, len(entries)),
			}
			for i, e := range entries {
				resp.ItemIDs[i] = e.ItemID
				resp.Scores[i] = e.Score
			}
			writeJSON(w, http.StatusOK, resp)
		})
	})
}
