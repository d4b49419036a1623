package workers

import (
	"context"
	"time"

	"github.com/dariasmyr/stopwatch/duration"
)

type Job struct {
	Description JobDescriptor
	ExecFn      ExecutionFn
}

type ExecutionFn func(ctx context.Context) (string, error)

type JobID string

type JobDescriptor struct {
	ID       JobID
	JobType  string
	Metadata map[string]string
}

// Result is the outcome of one job. Elapsed covers only the ExecFn call.
type Result struct {
	Value       string
	Err         error
	Elapsed     duration.Std
	Description JobDescriptor
}

func (j Job) execute(ctx context.Context) Result {
	start := time.Now()
	value, err := j.ExecFn(ctx)
	elapsed := duration.Since(start)

	if err != nil {
		return Result{
			Err:         err,
			Elapsed:     elapsed,
			Description: j.Description,
		}
	}

	return Result{
		Value:       value,
		Elapsed:     elapsed,
		Description: j.Description,
	}
}
