package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rushteam/recblend/core"
	"github.com/rushteam/recblend/service"
)

// EventLog 是可写的事件源，recall.StoreEventSource 实现此接口。
type EventLog interface {
	core.EventSource
	Append(ctx context.Context, userID, itemID int64) error
}

// NewEventsHandler 返回 events 角色的路由：
//
//	POST /put?user_id=&item_id=
//	POST /get?user_id=&k=
func NewEventsHandler(log EventLog, defaultK int, opts Options) http.Handler {
	return newRouter("events", opts, func(r chi.Router) {
		r.Post("/put", func(w http.ResponseWriter, r *http.Request) {
			userID, err := queryID(r, "user_id")
			if err != nil {
				writeError(w, r, err)
				return
			}
			itemID, err := queryID(r, "item_id")
			if err != nil {
				writeError(w, r, err)
				return
			}
			if err := log.Append(r.Context(), userID, itemID); err != nil {
				writeError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, service.PutEventResponse{Result: "ok"})
		})

		r.Post("/get", func(w http.ResponseWriter, r *http.Request) {
			userID, err := queryID(r, "user_id")
			if err != nil {
				writeError(w, r, err)
				return
			}
			k, err := queryK(r, defaultK, opts.MaxK)
			if err != nil {
				writeError(w, r, err)
				return
			}
			events, err := log.RecentEvents(r.Context(), userID, k)
			if err != nil {
				writeError(w, r, err)
				return
			}
			if events == nil {
				events = []int64{}
			}
			writeJSON(w, http.StatusOK, service.EventsResponse{Events: events})
		})
	})
}
