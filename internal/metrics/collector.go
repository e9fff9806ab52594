// Package metrics aggregates trigger outcomes and dispatch latencies.
package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Collector records per-dispatch metrics in a thread-safe manner.
type Collector struct {
	mu           sync.Mutex
	hist         *hdrhistogram.Histogram
	successes    int64
	failures     int64
	cancelled    int64
	suppressed   int64
	minLatency   time.Duration
	maxLatency   time.Duration
	sumLatency   time.Duration
	errorsByType map[string]int64
}

// Stats represents aggregated metrics over one daemon run.
type Stats struct {
	Total      int64
	Successes  int64
	Failures   int64
	Cancelled  int64
	Suppressed int64

	MinLatencyMs  float64
	MaxLatencyMs  float64
	MeanLatencyMs float64
	P50LatencyMs  float64
	P99LatencyMs  float64

	Errors map[string]int
}

func NewCollector() *Collector {
	// Track latencies from 1µs up to 60s with 3 significant figures.
	return &Collector{
		hist:         hdrhistogram.New(1, 60_000_000, 3),
		errorsByType: make(map[string]int64),
	}
}

// RecordSuccess records a dispatch that delivered a displayable response.
func (c *Collector) RecordSuccess(latency time.Duration) {
	c.record(latency)
	c.mu.Lock()
	c.successes++
	c.mu.Unlock()
}

// RecordFailure records a dispatch whose transport failed; the error type is
// tallied for the shutdown summary.
func (c *Collector) RecordFailure(latency time.Duration, err error) {
	c.record(latency)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures++
	if err != nil {
		errorType := fmt.Sprintf("%T", err)
		if len(errorType) > 30 {
			errorType = errorType[len(errorType)-30:]
		}
		c.errorsByType[errorType]++
	}
}

// RecordCancelled records a dispatch aborted before a terminal response.
func (c *Collector) RecordCancelled(latency time.Duration) {
	c.record(latency)
	c.mu.Lock()
	c.cancelled++
	c.mu.Unlock()
}

// RecordSuppressed records a trigger dropped by the cooldown limiter.
func (c *Collector) RecordSuppressed() {
	c.mu.Lock()
	c.suppressed++
	c.mu.Unlock()
}

func (c *Collector) record(latency time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if latency > 0 {
		us := latency.Microseconds()
		if us < c.hist.LowestTrackableValue() {
			us = c.hist.LowestTrackableValue()
		}
		if us > c.hist.HighestTrackableValue() {
			us = c.hist.HighestTrackableValue()
		}
		_ = c.hist.RecordValue(us)
	}
	c.sumLatency += latency

	if c.minLatency == 0 || latency < c.minLatency {
		c.minLatency = latency
	}
	if latency > c.maxLatency {
		c.maxLatency = latency
	}
}

// Stats computes and returns current aggregated statistics.
func (c *Collector) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.successes + c.failures + c.cancelled
	stats := Stats{
		Total:      total,
		Successes:  c.successes,
		Failures:   c.failures,
		Cancelled:  c.cancelled,
		Suppressed: c.suppressed,
	}

	if total > 0 {
		mean := time.Duration(int64(c.sumLatency) / total)
		stats.MeanLatencyMs = float64(mean) / float64(time.Millisecond)
	}
	stats.MinLatencyMs = float64(c.minLatency) / float64(time.Millisecond)
	stats.MaxLatencyMs = float64(c.maxLatency) / float64(time.Millisecond)

	if c.hist.TotalCount() > 0 {
		stats.P50LatencyMs = float64(c.hist.ValueAtQuantile(50)) / 1000
		stats.P99LatencyMs = float64(c.hist.ValueAtQuantile(99)) / 1000
	}

	if len(c.errorsByType) > 0 {
		stats.Errors = make(map[string]int, len(c.errorsByType))
		for k, v := range c.errorsByType {
			stats.Errors[k] = int(v)
		}
	}

	return stats
}
