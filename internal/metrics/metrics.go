// Package metrics keeps run counters for the monitoring endpoints.
package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	ItemsCollected     int64
	MalformedDropped   int64
	DuplicatesFiltered int64
	CollectorErrors    int64
	TrendsPublished    int64

	// Gauges
	FreshnessRatio float64

	// Timings
	LastProcessingTime    time.Duration
	AverageProcessingTime time.Duration
	TotalProcessingTime   time.Duration
	ProcessingCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddItemsCollected(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsCollected += int64(n)
}

func (m *Metrics) AddMalformedDropped(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MalformedDropped += int64(n)
}

func (m *Metrics) AddDuplicatesFiltered(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered += int64(n)
}

func (m *Metrics) IncrementCollectorErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CollectorErrors++
}

func (m *Metrics) SetTrendsPublished(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TrendsPublished = int64(n)
}

func (m *Metrics) SetFreshnessRatio(ratio float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FreshnessRatio = ratio
}

func (m *Metrics) RecordProcessingTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastProcessingTime = duration
	m.TotalProcessingTime += duration
	m.ProcessingCount++

	if m.ProcessingCount > 0 {
		m.AverageProcessingTime = m.TotalProcessingTime / time.Duration(m.ProcessingCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"items_collected":            m.ItemsCollected,
		"malformed_dropped":          m.MalformedDropped,
		"duplicates_filtered":        m.DuplicatesFiltered,
		"collector_errors":           m.CollectorErrors,
		"trends_published":           m.TrendsPublished,
		"freshness_ratio":            m.FreshnessRatio,
		"last_processing_time_ms":    m.LastProcessingTime.Milliseconds(),
		"average_processing_time_ms": m.AverageProcessingTime.Milliseconds(),
		"last_run_time":              m.LastRunTime.Format(time.RFC3339),
		"last_error_time":            m.LastErrorTime.Format(time.RFC3339),
		"last_error":                 m.LastError,
		"is_healthy":                 m.IsHealthy,
	}
}
