package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rushteam/recblend/recall"
	"github.com/rushteam/recblend/rerank"
	"github.com/rushteam/recblend/service"
)

// Blender 是融合推荐，rerank.Blender 实现此接口。
type Blender interface {
	Blend(ctx context.Context, userID int64, k int) ([]int64, error)
}

// Recommendations 是 recommendations 角色依赖的推荐组件。
type Recommendations struct {
	Offline rerank.OfflineSource
	Online  rerank.OnlineSource
	Blender Blender
	Stats   *recall.UsageStats

	// OfflineK 是离线与融合接口的默认 k
	OfflineK int
	// OnlineK 是在线接口的默认 k
	OnlineK int
}

// NewRecommendationsHandler 返回 recommendations 角色的路由：
//
//	POST /recommendations_offline?user_id=&k=
//	POST /recommendations_online?user_id=&k=
//	POST /recommendations?user_id=&k=
//	GET  /stats
func NewRecommendationsHandler(recs *Recommendations, opts Options) http.Handler {
	return newRouter("recommendations", opts, func(r chi.Router) {
		r.Post("/recommendations_offline", recs.offline(opts))
		r.Post("/recommendations_online", recs.online(opts))
		r.Post("/recommendations", recs.blend(opts))
		r.Get("/stats", recs.stats)
	})
}

func (h *Recommendations) offline(opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := queryID(r, "user_id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		k, err := queryK(r, h.OfflineK, opts.MaxK)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, service.RecsResponse{Recs: h.Offline.Resolve(userID, k)})
	}
}

func (h *Recommendations) online(opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := queryID(r, "user_id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		k, err := queryK(r, h.OnlineK, opts.MaxK)
		if err != nil {
			writeError(w, r, err)
			return
		}
		recs, err := h.Online.Aggregate(r.Context(), userID, k)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, service.RecsResponse{Recs: recs})
	}
}

func (h *Recommendations) blend(opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := queryID(r, "user_id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		k, err := queryK(r, h.OfflineK, opts.MaxK)
		if err != nil {
			writeError(w, r, err)
			return
		}
		recs, err := h.Blender.Blend(r.Context(), userID, k)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, service.RecsResponse{Recs: recs})
	}
}

func (h *Recommendations) stats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.Stats.Snapshot())
}
