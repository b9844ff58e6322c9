// Package stats tracks cumulative usage of the analysis pipeline: how many
// documents have been analyzed and how much CPU time they consumed. Recording
// happens at the caller boundary, never inside the extraction pipeline.
package stats

import (
	"context"
	"time"
)

// Usage is the cumulative usage snapshot.
type Usage struct {
	TotalAnalysisCount int64     `json:"total_analysis_count"`
	CPUTimeSeconds     float64   `json:"cpu_time_seconds"`
	LastUpdated        time.Time `json:"last_updated"`
}

// Recorder persists usage counters across process restarts.
type Recorder interface {
	// Record adds one completed analysis taking elapsed time.
	Record(ctx context.Context, elapsed time.Duration) error
	// Snapshot returns the current cumulative usage.
	Snapshot(ctx context.Context) (Usage, error)
}
