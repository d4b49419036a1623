package metrics

import (
	"log/slog"
	"sync"
	"time"

	"github.com/dariasmyr/stopwatch/duration"
	"github.com/dariasmyr/stopwatch/internal/lib/logger/sl"
)

type Metrics struct {
	mu                 sync.Mutex
	totalJobs          int
	successfulJobs     int
	failedJobs         int
	totalExecutionTime time.Duration
	minExecutionTime   time.Duration
	maxExecutionTime   time.Duration
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	TotalJobs      int
	SuccessfulJobs int
	FailedJobs     int
	Total          duration.Std
	Min            duration.Std
	Max            duration.Std
	Avg            duration.Std
}

func (m *Metrics) RecordSuccess(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.successfulJobs++
	m.record(d)
}

func (m *Metrics) RecordFailure(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failedJobs++
	m.record(d)
}

func (m *Metrics) record(d time.Duration) {
	if m.totalJobs == 0 || d < m.minExecutionTime {
		m.minExecutionTime = d
	}
	if d > m.maxExecutionTime {
		m.maxExecutionTime = d
	}
	m.totalJobs++
	m.totalExecutionTime += d
}

func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	avgExecTime := time.Duration(0)
	if m.totalJobs > 0 {
		avgExecTime = m.totalExecutionTime / time.Duration(m.totalJobs)
	}

	return Snapshot{
		TotalJobs:      m.totalJobs,
		SuccessfulJobs: m.successfulJobs,
		FailedJobs:     m.failedJobs,
		Total:          duration.Std(m.totalExecutionTime),
		Min:            duration.Std(m.minExecutionTime),
		Max:            duration.Std(m.maxExecutionTime),
		Avg:            duration.Std(avgExecTime),
	}
}

func (m *Metrics) PrintMetrics(log *slog.Logger) {
	s := m.Snapshot()

	log.Info("Metrics",
		slog.Int("total_jobs", s.TotalJobs),
		slog.Int("successful_jobs", s.SuccessfulJobs),
		slog.Int("failed_jobs", s.FailedJobs),
		sl.Elapsed("min", s.Min),
		sl.Elapsed("max", s.Max),
		sl.Elapsed("avg", s.Avg),
	)
}
