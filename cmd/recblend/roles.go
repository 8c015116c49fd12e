package main

import (
	"context"
	"net/http"

	"github.com/rushteam/recblend/config"
	"github.com/rushteam/recblend/pkg/logging"
	"github.com/rushteam/recblend/recall"
	"github.com/rushteam/recblend/rerank"
	"github.com/rushteam/recblend/server"
	"github.com/rushteam/recblend/snapshot"
)

func serverOptions(cfg *config.Config) server.Options {
	return server.Options{RateLimit: cfg.Server.RateLimit, MaxK: cfg.Server.MaxK}
}

// runRecommendations 加载离线表并组装推荐链路。快照损坏直接返回错误，进程退出。
func runRecommendations(ctx context.Context, cfg *config.Config) (http.Handler, func(), error) {
	loader, err := snapshot.NewLoader()
	if err != nil {
		return nil, nil, err
	}
	defer loader.Close()

	table, err := loader.LoadRecommendations(ctx, cfg.Snapshot.PersonalPath, cfg.Snapshot.PopularPath)
	if err != nil {
		return nil, nil, err
	}

	var local *snapshot.SimilarityIndex
	if cfg.Similarity.Backend == config.BackendLocal {
		if local, err = loader.LoadSimilarity(ctx, cfg.Snapshot.SimilarPath); err != nil {
			return nil, nil, err
		}
	}

	similarity, err := config.NewSimilarityIndex(cfg, local)
	if err != nil {
		return nil, nil, err
	}
	events, closer, err := config.NewEventSource(cfg)
	if err != nil {
		return nil, nil, err
	}

	stats := &recall.UsageStats{}
	offline := recall.NewOfflineResolver(table, stats)
	online := &recall.OnlineAggregator{
		Events:        events,
		Similarity:    similarity,
		EventCount:    cfg.Online.EventCount,
		Timeout:       cfg.Online.CallTimeout,
		MaxConcurrent: cfg.Online.MaxConcurrent,
	}
	recs := &server.Recommendations{
		Offline:  offline,
		Online:   online,
		Blender:  &rerank.Blender{Offline: offline, Online: online},
		Stats:    stats,
		OfflineK: cfg.Offline.DefaultK,
		OnlineK:  cfg.Online.DefaultK,
	}

	cleanup := func() {
		s := stats.Snapshot()
		logging.Info().
			Int64("request_personal_count", s.PersonalHits).
			Int64("request_default_count", s.DefaultHits).
			Msg("usage stats")
		if err := closer.Close(); err != nil {
			logging.Warn().Err(err).Msg("close event source")
		}
	}
	return server.NewRecommendationsHandler(recs, serverOptions(cfg)), cleanup, nil
}

func runFeatures(ctx context.Context, cfg *config.Config) (http.Handler, func(), error) {
	loader, err := snapshot.NewLoader()
	if err != nil {
		return nil, nil, err
	}
	defer loader.Close()

	index, err := loader.LoadSimilarity(ctx, cfg.Snapshot.SimilarPath)
	if err != nil {
		return nil, nil, err
	}
	return server.NewFeaturesHandler(index, cfg.Online.DefaultK, serverOptions(cfg)), func() {}, nil
}

func runEvents(_ context.Context, cfg *config.Config) (http.Handler, func(), error) {
	log, err := config.NewEventLog(cfg.Events)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := log.Close(); err != nil {
			logging.Warn().Err(err).Msg("close event store")
		}
	}
	return server.NewEventsHandler(log, cfg.Events.MaxEvents, serverOptions(cfg)), cleanup, nil
}
