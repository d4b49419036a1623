package workers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWorkerPool_RunsAllJobs(t *testing.T) {
	ctx := context.Background()
	pool := New(discardLogger(), 3)
	go pool.Run(ctx)

	errBoom := errors.New("boom")
	go func() {
		defer pool.Close()
		for i := 0; i < 10; i++ {
			i := i
			job := Job{
				Description: JobDescriptor{ID: JobID(fmt.Sprint(i)), JobType: "test"},
				ExecFn: func(ctx context.Context) (string, error) {
					time.Sleep(time.Millisecond)
					if i%5 == 0 {
						return "", errBoom
					}
					return fmt.Sprint(i * i), nil
				},
			}
			assert.NoError(t, pool.AddJob(ctx, job))
		}
	}()

	var ok, failed int
	for res := range pool.Results() {
		assert.GreaterOrEqual(t, res.Elapsed.FractionalMillis(), 1.0)
		if res.Err != nil {
			assert.ErrorIs(t, res.Err, errBoom)
			failed++
			continue
		}
		assert.NotEmpty(t, res.Value)
		ok++
	}

	assert.Equal(t, 8, ok)
	assert.Equal(t, 2, failed)

	<-pool.Done
	assert.Equal(t, int32(0), pool.ActiveWorkersCount())
}

func TestWorkerPool_Cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := New(discardLogger(), 2)
	go pool.Run(ctx)

	cancel()

	select {
	case <-pool.Done:
	case <-time.After(time.Second):
		t.Fatal("workers did not stop after cancel")
	}

	err := pool.AddJob(ctx, Job{ExecFn: func(context.Context) (string, error) { return "", nil }})
	assert.ErrorIs(t, err, context.Canceled)

	pool.Close()
	pool.Close()
}

func TestJob_Execute(t *testing.T) {
	job := Job{
		Description: JobDescriptor{ID: "1"},
		ExecFn: func(context.Context) (string, error) {
			time.Sleep(2 * time.Millisecond)
			return "done", nil
		},
	}

	res := job.execute(context.Background())
	require.NoError(t, res.Err)
	assert.Equal(t, "done", res.Value)
	assert.Equal(t, JobID("1"), res.Description.ID)
	assert.GreaterOrEqual(t, res.Elapsed.FractionalMillis(), 2.0)
}
