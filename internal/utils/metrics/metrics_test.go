package metrics

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Snapshot(t *testing.T) {
	var m Metrics

	m.RecordSuccess(2 * time.Millisecond)
	m.RecordSuccess(4 * time.Millisecond)
	m.RecordFailure(12 * time.Microsecond)

	s := m.Snapshot()
	assert.Equal(t, 3, s.TotalJobs)
	assert.Equal(t, 2, s.SuccessfulJobs)
	assert.Equal(t, 1, s.FailedJobs)
	assert.Equal(t, "12.000µs", s.Min.String())
	assert.Equal(t, "4.000ms", s.Max.String())
	assert.Equal(t, "6.012ms", s.Total.String())
	assert.Equal(t, "2.004ms", s.Avg.String())
}

func TestMetrics_Empty(t *testing.T) {
	var m Metrics

	s := m.Snapshot()
	assert.Zero(t, s.TotalJobs)
	assert.Equal(t, "0.000µs", s.Avg.String())
}

func TestMetrics_Concurrent(t *testing.T) {
	var m Metrics
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordSuccess(time.Millisecond)
		}()
	}
	wg.Wait()

	s := m.Snapshot()
	assert.Equal(t, 50, s.TotalJobs)
	assert.Equal(t, "1.000ms", s.Avg.String())
}

func TestMetrics_PrintMetrics(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	var m Metrics
	m.RecordSuccess(1500 * time.Millisecond)
	m.PrintMetrics(log)

	out := buf.String()
	assert.Contains(t, out, "total_jobs=1")
	assert.Contains(t, out, "avg=1.500s")
}
