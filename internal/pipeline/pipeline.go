// Package pipeline orchestrates one aggregation run: collect, dedupe, score,
// gate, publish the artifact and fold today's keywords into the history.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"trendwatch/internal/collector"
	"trendwatch/internal/config"
	"trendwatch/internal/history"
	"trendwatch/internal/logger"
	"trendwatch/internal/metrics"
	"trendwatch/internal/trend"
)

// ErrInsufficientItems aborts the run when too few items survive dedup.
// Publishing a near-empty page is worse than publishing nothing.
var ErrInsufficientItems = errors.New("not enough items after deduplication")

// Result is the per-run output artifact consumed downstream (rendering,
// image selection, feeds).
type Result struct {
	GeneratedAt    time.Time           `json:"generated_at"`
	Trends         []trend.ScoredTrend `json:"trends"`
	GlobalKeywords []string            `json:"global_keywords"`
	FreshnessRatio float64             `json:"freshness_ratio"`
}

type Pipeline struct {
	cfg        *config.Config
	collectors []collector.Collector
	tracker    *history.Tracker

	now func() time.Time
}

func New(cfg *config.Config, collectors []collector.Collector, tracker *history.Tracker) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		collectors: collectors,
		tracker:    tracker,
		now:        time.Now,
	}
}

// Run executes one full pass. Each stage takes the previous stage's slice
// and returns a new one; nothing mutates shared state between stages.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	defer func() {
		metrics.Global.RecordProcessingTime(time.Since(start))
	}()

	collected := p.collect(ctx)
	items := deriveKeywords(dropMalformed(collected))

	deduped := trend.Dedupe(items)
	dropped := len(items) - len(deduped)
	metrics.Global.AddDuplicatesFiltered(dropped)
	logger.Info("deduplicated", "in", len(items), "out", len(deduped), "dropped", dropped)

	if len(deduped) < p.cfg.MinItems {
		err := fmt.Errorf("%w: have %d, need %d", ErrInsufficientItems, len(deduped), p.cfg.MinItems)
		metrics.Global.SetError(err.Error())
		return nil, err
	}

	ranked := trend.Score(deduped)
	ratio := trend.FreshnessRatio(ranked, p.now())
	metrics.Global.SetFreshnessRatio(ratio)
	if ratio < p.cfg.MinFreshnessRatio {
		logger.Warn("freshness ratio below minimum, publishing anyway",
			"ratio", ratio, "min", p.cfg.MinFreshnessRatio)
	}

	final := ranked
	if p.cfg.MaxTrends > 0 && len(final) > p.cfg.MaxTrends {
		final = final[:p.cfg.MaxTrends]
	}

	result := &Result{
		GeneratedAt:    p.now(),
		Trends:         final,
		GlobalKeywords: trend.GlobalKeywords(final),
		FreshnessRatio: ratio,
	}

	if err := p.writeArtifact(result); err != nil {
		metrics.Global.SetError(err.Error())
		return nil, err
	}

	p.recordHistory(final)

	metrics.Global.SetTrendsPublished(len(final))
	metrics.Global.SetLastRun()
	logger.Info("run complete",
		"trends", len(final),
		"global_keywords", len(result.GlobalKeywords),
		"freshness_ratio", ratio)
	return result, nil
}

// TrendingKeywords exposes the history classifier to downstream consumers.
func (p *Pipeline) TrendingKeywords(limit int) []history.KeywordTrend {
	return p.tracker.TrendingKeywords(limit)
}

// PersistentKeywords lists keywords present on at least minDays distinct
// days in the retained window.
func (p *Pipeline) PersistentKeywords(minDays, limit int) []string {
	return p.tracker.PersistentKeywords(minDays, limit)
}

// collect runs every collector in order. A failing collector contributes
// zero items and the run proceeds with partial input.
func (p *Pipeline) collect(ctx context.Context) []trend.RawItem {
	var items []trend.RawItem
	for _, c := range p.collectors {
		got, err := c.Collect(ctx)
		if err != nil {
			logger.Error("collector failed", "collector", c.Name(), "error", err)
			metrics.Global.IncrementCollectorErrors()
			continue
		}
		logger.Info("collected", "collector", c.Name(), "items", len(got))
		items = append(items, got...)
	}
	metrics.Global.AddItemsCollected(len(items))
	return items
}

// dropMalformed silently removes items without a usable title.
func dropMalformed(items []trend.RawItem) []trend.RawItem {
	kept := make([]trend.RawItem, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Title) == "" {
			continue
		}
		kept = append(kept, item)
	}
	metrics.Global.AddMalformedDropped(len(items) - len(kept))
	return kept
}

// deriveKeywords fills in each item's keywords from its title. This is the
// one derivation step items get; they are immutable afterwards.
func deriveKeywords(items []trend.RawItem) []trend.RawItem {
	out := make([]trend.RawItem, len(items))
	for i, item := range items {
		item.Keywords = trend.ExtractKeywords(item.Title)
		out[i] = item
	}
	return out
}

func (p *Pipeline) writeArtifact(result *Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode run artifact: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p.cfg.OutputPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(p.cfg.OutputPath, data, 0o644); err != nil {
		return fmt.Errorf("write run artifact: %w", err)
	}
	return nil
}

// recordHistory folds the published trends' keywords into the rolling store.
// A persistence failure must not fail the run; the in-memory history still
// covers today's classification.
func (p *Pipeline) recordHistory(final []trend.ScoredTrend) {
	var keywords []string
	for _, t := range final {
		keywords = append(keywords, t.Keywords...)
	}
	if err := p.tracker.RecordKeywords(keywords, p.now()); err != nil {
		logger.Warn("keyword history not persisted, next run will miss today", "error", err)
	}
}
