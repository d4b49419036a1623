package bench

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dariasmyr/stopwatch/duration"
	"github.com/dariasmyr/stopwatch/internal/services/workload"
	"github.com/dariasmyr/stopwatch/internal/storage/leveldb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWorkloads map[string]workload.Func

func (f fakeWorkloads) Lookup(name string) (workload.Func, error) {
	fn, ok := f[name]
	if !ok {
		return nil, workload.ErrUnknownWorkload
	}
	return fn, nil
}

func newTestBench(t *testing.T, runs int, wl fakeWorkloads) (*Bench, *leveldb.Storage) {
	t.Helper()

	storage, err := leveldb.New(filepath.Join(t.TempDir(), "bench.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(log, 3, runs, wl, storage, storage), storage
}

func TestBench_Run(t *testing.T) {
	var calls atomic.Int32
	b, storage := newTestBench(t, 6, fakeWorkloads{
		"sleep": func(ctx context.Context) (string, error) {
			calls.Add(1)
			time.Sleep(time.Millisecond)
			return "ok", nil
		},
	})
	ctx := context.Background()

	report, err := b.Run(ctx, "sleep")
	require.NoError(t, err)

	assert.Equal(t, int32(6), calls.Load())
	assert.Equal(t, "sleep", report.Label)
	assert.Equal(t, 6, report.Runs)
	assert.Zero(t, report.Failures)
	assert.GreaterOrEqual(t, report.Min.FractionalMillis(), 1.0)
	assert.LessOrEqual(t, report.Min.FractionalMicros(), report.Mean.FractionalMicros())
	assert.LessOrEqual(t, report.Mean.FractionalMicros(), report.Max.FractionalMicros())

	samples, err := storage.Samples(ctx, "sleep")
	require.NoError(t, err)
	assert.Len(t, samples, 6)

	history, stored, err := b.History(ctx, "sleep")
	require.NoError(t, err)
	assert.Len(t, stored, 6)
	assert.Equal(t, report.Total, history.Total)
	assert.Equal(t, report.Min, history.Min)
	assert.Equal(t, report.Max, history.Max)
}

func TestBench_RunWithFailures(t *testing.T) {
	var calls atomic.Int32
	b, storage := newTestBench(t, 4, fakeWorkloads{
		"flaky": func(ctx context.Context) (string, error) {
			if calls.Add(1)%2 == 0 {
				return "", errors.New("flake")
			}
			return "ok", nil
		},
	})
	ctx := context.Background()

	report, err := b.Run(ctx, "flaky")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Runs)
	assert.Equal(t, 2, report.Failures)

	samples, err := storage.Samples(ctx, "flaky")
	require.NoError(t, err)
	assert.Len(t, samples, 2)
}

func TestBench_RunAllFail(t *testing.T) {
	b, _ := newTestBench(t, 3, fakeWorkloads{
		"broken": func(ctx context.Context) (string, error) {
			return "", errors.New("nope")
		},
	})

	report, err := b.Run(context.Background(), "broken")
	assert.ErrorIs(t, err, ErrAllRunsFailed)
	assert.Equal(t, 3, report.Failures)
}

func TestBench_RunUnknownWorkload(t *testing.T) {
	b, _ := newTestBench(t, 1, fakeWorkloads{})

	_, err := b.Run(context.Background(), "missing")
	assert.ErrorIs(t, err, workload.ErrUnknownWorkload)
}

func TestBench_RunCancelled(t *testing.T) {
	b, _ := newTestBench(t, 100, fakeWorkloads{
		"slow": func(ctx context.Context) (string, error) {
			time.Sleep(time.Millisecond)
			return "ok", nil
		},
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Run(ctx, "slow")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBench_LabelsAndClear(t *testing.T) {
	b, storage := newTestBench(t, 1, fakeWorkloads{})
	ctx := context.Background()

	_, err := storage.SaveSample(ctx, "stem", duration.New(0, 1_000))
	require.NoError(t, err)

	labels, err := b.Labels(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"stem"}, labels)

	require.NoError(t, b.Clear(ctx, "stem"))

	_, _, err = b.History(ctx, "stem")
	assert.ErrorIs(t, err, leveldb.ErrLabelNotFound)
	assert.ErrorIs(t, b.Clear(ctx, "stem"), leveldb.ErrLabelNotFound)
}
