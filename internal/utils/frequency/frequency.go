package frequency

import (
	"log/slog"
	"time"

	"github.com/dariasmyr/stopwatch/duration"
	"github.com/dariasmyr/stopwatch/internal/lib/logger/sl"
)

// Frequency logs the completion rate at most once per Interval.
type Frequency struct {
	Interval time.Duration
	count    int
	total    int
	Start    time.Time
	LastTime time.Time
}

func New(interval time.Duration) *Frequency {
	now := time.Now()
	return &Frequency{Interval: interval, Start: now, LastTime: now}
}

func (f *Frequency) Add(count int) {
	f.count += count
	f.total += count
}

// Check logs and resets the window count when Interval has passed. It
// reports whether a line was logged.
func (f *Frequency) Check(log *slog.Logger) bool {
	now := time.Now()
	elapsed := now.Sub(f.LastTime)
	if elapsed < f.Interval {
		return false
	}

	average := float64(f.total) / now.Sub(f.Start).Seconds()
	log.Info("Event Rate",
		slog.Int("count", f.count),
		slog.Int("total", f.total),
		slog.Float64("average", average),
		sl.Elapsed("window", duration.Std(elapsed)),
	)
	f.count = 0
	f.LastTime = now
	return true
}

func (f *Frequency) Total() int {
	return f.total
}
