package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"trendwatch/internal/collector"
	"trendwatch/internal/config"
	"trendwatch/internal/history"
	"trendwatch/internal/logger"
	"trendwatch/internal/metrics"
	"trendwatch/internal/notify"
	"trendwatch/internal/pipeline"
	"trendwatch/internal/ratelimit"
)

func main() {
	_ = godotenv.Load()
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		go startMonitoringServer()
	}

	sources, err := collector.LoadSources(cfg.SourcesConfigPath)
	if err != nil {
		logger.Error("failed to load sources", "error", err)
		os.Exit(1)
	}

	store, cleanup, err := buildStore(cfg)
	if err != nil {
		logger.Error("failed to open history store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	limiter := ratelimit.New(cfg.PolitenessDelay, cfg.MaxRequestsPerRun)
	collectors := collector.Build(sources, limiter, cfg)
	tracker := history.NewTracker(store, cfg.HistoryWindowDays)
	p := pipeline.New(cfg, collectors, tracker)

	result, err := p.Run(context.Background())
	if err != nil {
		if errors.Is(err, pipeline.ErrInsufficientItems) {
			logger.Error("aborting: too little content to publish", "error", err)
		} else {
			logger.Error("run failed", "error", err)
		}
		os.Exit(1)
	}

	for _, kt := range p.TrendingKeywords(10) {
		logger.Info("trending keyword",
			"keyword", kt.Keyword,
			"trend", string(kt.Trend),
			"current", kt.CurrentCount,
			"previous", kt.PreviousCount,
			"change_percent", kt.ChangePercent)
	}

	if cfg.TelegramToken != "" {
		if err := notify.SendDigest(cfg.TelegramToken, cfg.TelegramChatID, result, 10); err != nil {
			logger.Error("digest delivery failed", "error", err)
		}
	}
}

// buildStore picks Postgres when DATABASE_URL is set, the JSON file
// otherwise.
func buildStore(cfg *config.Config) (history.Store, func(), error) {
	if cfg.DatabaseURL != "" {
		pg, err := history.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("keyword history backed by postgres")
		return pg, func() { pg.Close() }, nil
	}
	logger.Info("keyword history backed by file", "path", cfg.HistoryFilePath)
	return history.NewFileStore(cfg.HistoryFilePath), func() {}, nil
}

func startMonitoringServer() {
	port := os.Getenv("MONITORING_PORT")
	if port == "" {
		port = "8080"
	}

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	logger.Info("monitoring server listening", "port", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		logger.Error("monitoring server stopped", "error", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response := map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics.Global.GetStats())
}
