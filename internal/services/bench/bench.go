package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/dariasmyr/stopwatch/duration"
	"github.com/dariasmyr/stopwatch/internal/domain/models"
	"github.com/dariasmyr/stopwatch/internal/lib/logger/sl"
	"github.com/dariasmyr/stopwatch/internal/services/workload"
	"github.com/dariasmyr/stopwatch/internal/utils/frequency"
	"github.com/dariasmyr/stopwatch/internal/utils/metrics"
	"github.com/dariasmyr/stopwatch/internal/workers"
)

var ErrAllRunsFailed = errors.New("all runs failed")

const progressInterval = 5 * time.Second

type SampleSaver interface {
	SaveSample(ctx context.Context, label string, c duration.Components) (uint64, error)
	DeleteLabel(ctx context.Context, label string) error
}

type SampleProvider interface {
	Samples(ctx context.Context, label string) ([]models.Sample, error)
	Labels(ctx context.Context) ([]string, error)
}

type WorkloadProvider interface {
	Lookup(name string) (workload.Func, error)
}

type Bench struct {
	log            *slog.Logger
	workers        int
	runs           int
	workloads      WorkloadProvider
	sampleSaver    SampleSaver
	sampleProvider SampleProvider
}

// Report summarises the timings of one label.
type Report struct {
	Label    string
	Runs     int
	Failures int
	Min      duration.Elapsed
	Max      duration.Elapsed
	Mean     duration.Elapsed
	Total    duration.Elapsed
}

func New(
	log *slog.Logger,
	numWorkers int,
	runs int,
	workloads WorkloadProvider,
	sampleSaver SampleSaver,
	sampleProvider SampleProvider,
) *Bench {
	return &Bench{
		log:            log,
		workers:        numWorkers,
		runs:           runs,
		workloads:      workloads,
		sampleSaver:    sampleSaver,
		sampleProvider: sampleProvider,
	}
}

// Run times the named workload b.runs times on the worker pool, stores every
// successful measurement and returns their summary.
func (b *Bench) Run(ctx context.Context, name string) (Report, error) {
	const op = "bench.Run"

	log := b.log.With(slog.String("op", op), slog.String("workload", name))

	fn, err := b.workloads.Lookup(name)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := workers.New(b.log, b.workers)
	go pool.Run(ctx)

	go func() {
		defer pool.Close()
		for i := 0; i < b.runs; i++ {
			job := workers.Job{
				Description: workers.JobDescriptor{
					ID:      workers.JobID(name + "#" + strconv.Itoa(i+1)),
					JobType: name,
				},
				ExecFn: workers.ExecutionFn(fn),
			}
			if err := pool.AddJob(ctx, job); err != nil {
				return
			}
		}
	}()

	var (
		m       metrics.Metrics
		timings []duration.Components
		saveErr error
	)
	progress := frequency.New(progressInterval)
	for res := range pool.Results() {
		progress.Add(1)
		progress.Check(log)

		if res.Err != nil {
			m.RecordFailure(time.Duration(res.Elapsed))
			continue
		}
		m.RecordSuccess(time.Duration(res.Elapsed))
		timings = append(timings, res.Elapsed)

		if _, err := b.sampleSaver.SaveSample(ctx, name, res.Elapsed); err != nil && saveErr == nil {
			saveErr = err
			cancel()
		}
	}
	<-pool.Done

	if saveErr != nil {
		return Report{}, fmt.Errorf("%s: %w", op, saveErr)
	}
	if err := ctx.Err(); err != nil {
		return Report{}, fmt.Errorf("%s: %w", op, err)
	}

	m.PrintMetrics(log)

	snapshot := m.Snapshot()
	if len(timings) == 0 {
		return Report{Label: name, Failures: snapshot.FailedJobs}, fmt.Errorf("%s: %s: %w", op, name, ErrAllRunsFailed)
	}

	report := Summarize(name, timings)
	report.Failures = snapshot.FailedJobs

	log.Debug("workload finished",
		slog.Int("runs", report.Runs),
		slog.Int("failures", report.Failures),
		sl.Elapsed("mean", report.Mean),
	)

	return report, nil
}

// History summarises the stored samples of label.
func (b *Bench) History(ctx context.Context, label string) (Report, []models.Sample, error) {
	const op = "bench.History"

	samples, err := b.sampleProvider.Samples(ctx, label)
	if err != nil {
		return Report{}, nil, fmt.Errorf("%s: %w", op, err)
	}

	timings := make([]duration.Components, len(samples))
	for i, s := range samples {
		timings[i] = s
	}

	return Summarize(label, timings), samples, nil
}

// Labels lists every label with stored samples.
func (b *Bench) Labels(ctx context.Context) ([]string, error) {
	const op = "bench.Labels"

	labels, err := b.sampleProvider.Labels(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return labels, nil
}

// Clear removes the stored samples of label.
func (b *Bench) Clear(ctx context.Context, label string) error {
	const op = "bench.Clear"

	if err := b.sampleSaver.DeleteLabel(ctx, label); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	b.log.Info("samples cleared", slog.String("label", label))
	return nil
}
