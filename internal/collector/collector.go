// Package collector pulls candidate trends from the configured sources.
// Each collector handles its own I/O failures and returns whatever it could
// fetch; the pipeline never retries a collector as a whole.
package collector

import (
	"context"
	"time"

	"trendwatch/internal/cache"
	"trendwatch/internal/config"
	"trendwatch/internal/ratelimit"
	"trendwatch/internal/retry"
	"trendwatch/internal/trend"
)

// Collector yields zero or more raw items from one source.
type Collector interface {
	Name() string
	Collect(ctx context.Context) ([]trend.RawItem, error)
}

// Build assembles collectors for every configured source, sharing one
// politeness limiter and one page cache across all of them.
func Build(sources *SourcesConfig, limiter *ratelimit.Limiter, cfg *config.Config) []Collector {
	pages := cache.New()
	retryCfg := retry.Config{
		MaxAttempts: cfg.RetryAttempts,
		Delay:       cfg.RetryDelay,
		Backoff:     true,
	}

	collectors := make([]Collector, 0, len(sources.RSS)+len(sources.HTML))
	for _, src := range sources.RSS {
		collectors = append(collectors, NewRSSCollector(src, limiter, retryCfg, cfg.RequestTimeout))
	}
	for _, src := range sources.HTML {
		collectors = append(collectors, NewHTMLCollector(src, limiter, pages, retryCfg, cfg.RequestTimeout))
	}
	return collectors
}

// pageCacheTTL keeps a fetched listing page around for the rest of the run.
const pageCacheTTL = 1 * time.Hour
